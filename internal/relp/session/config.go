package session

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/davrul/relpc/internal/relp/frame"
)

// Config defines session identity and transport deadlines.
type Config struct {
	// Software is the relp_software value sent in the open offer.
	Software string
	// Commands is the comma-separated command offer (open negotiation).
	Commands string

	// DialTimeout bounds Dial's TCP connect.
	DialTimeout time.Duration
	// ReadTimeout and WriteTimeout bound each response read and command
	// write. Zero disables the deadline.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Limits constrains outbound frame data size. Zero value means
	// frame.DefaultLimits.
	Limits frame.Limits

	// Logger, when set, replaces the global logger for session events.
	Logger *zerolog.Logger
}

// DefaultConfig returns defaults aligned with rsyslog peers.
func DefaultConfig() Config {
	return Config{
		Software:     "relpc",
		Commands:     "syslog",
		DialTimeout:  5 * time.Second,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		Limits:       frame.DefaultLimits(),
	}
}
