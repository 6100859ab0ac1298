package session

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/davrul/relpc/internal/observability"
	"github.com/davrul/relpc/internal/relp"
	"github.com/davrul/relpc/internal/relp/frame"
)

// relpVersion is the protocol version sent in the open offer.
const relpVersion = 0

const (
	cmdOpen   = "open"
	cmdSyslog = "syslog"
	cmdClose  = "close"
	cmdResp   = "rsp"
)

// Status is a Session's present lifecycle state.
type Status int

const (
	// StatusUnopened is the initial state: connected, open not yet sent.
	StatusUnopened Status = iota
	// StatusOpened is set once the peer acknowledged the open offer.
	StatusOpened
	// StatusClosed indicates the session closed normally. Terminal.
	StatusClosed
	// StatusFailed indicates a transport or protocol error. Terminal;
	// entering it closes the transport.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnopened:
		return "unopened"
	case StatusOpened:
		return "opened"
	case StatusClosed:
		return "closed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Conn is the transport channel owned by a Session. *net.TCPConn satisfies
// it; the deadline methods let the session bound each blocking read and
// write, surfacing expiry as an ordinary transport error.
type Conn interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// Session drives one RELP conversation over one transport channel. It owns
// the channel exclusively for its lifetime: stamping each command with the
// next transaction number, encoding and writing it, then blocking on the
// matching response before the next command is accepted.
type Session struct {
	cfg    Config
	conn   Conn
	seq    *Sequencer
	rd     *Reader
	status Status
	logger zerolog.Logger
}

// New wraps an established transport channel in an unopened Session.
func New(conn Conn, cfg Config) *Session {
	if cfg.Limits == (frame.Limits{}) {
		cfg.Limits = frame.DefaultLimits()
	}
	logger := log.With().Str("component", "relp-session").Logger()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Session{
		cfg:    cfg,
		conn:   conn,
		seq:    NewSequencer(),
		rd:     NewReader(conn),
		logger: logger,
	}
}

// Dial connects to a RELP peer over TCP and returns an unopened Session.
func Dial(addr string, cfg Config) (*Session, error) {
	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return New(conn, cfg), nil
}

// Status returns the session's current lifecycle state.
func (s *Session) Status() Status { return s.status }

// Open performs the RELP open handshake: it offers the protocol version,
// software name and command set from Config as the first transaction, and
// establishes the session once the peer's response correlates.
func (s *Session) Open() (relp.Response, error) {
	switch s.status {
	case StatusOpened:
		return relp.Response{}, relp.ErrSessionOpen
	case StatusClosed, StatusFailed:
		return relp.Response{}, relp.ErrSessionClosed
	}
	offer := fmt.Sprintf("relp_version=%d\nrelp_software=%s\ncommands=%s",
		relpVersion, s.cfg.Software, s.cfg.Commands)
	resp, err := s.exchange(cmdOpen, []byte(offer))
	if err != nil {
		return relp.Response{}, err
	}
	s.status = StatusOpened
	s.logger.Debug().Uint64("txn", resp.Txn).Int("code", resp.Code).Msg("session opened")
	return resp, nil
}

// Send transmits one event payload and blocks for the peer's
// acknowledgement. A non-200 response is returned as data with the
// session still open: a server-side nack is an application outcome for
// the caller to act on, not a transport fault.
func (s *Session) Send(data []byte) (relp.Response, error) {
	if s.status != StatusOpened {
		return relp.Response{}, s.statusErr()
	}
	return s.exchange(cmdSyslog, data)
}

// Close ends the session with the peer and releases the transport. No
// further operations may be issued afterwards.
func (s *Session) Close() (relp.Response, error) {
	if s.status != StatusOpened {
		return relp.Response{}, s.statusErr()
	}
	resp, err := s.exchange(cmdClose, nil)
	if err != nil {
		return relp.Response{}, err
	}
	s.status = StatusClosed
	s.logger.Debug().Uint64("txn", resp.Txn).Msg("session closed")
	if cerr := s.conn.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
		return resp, cerr
	}
	return resp, nil
}

// exchange stamps, encodes and writes one command, then reads and
// correlates its response. Any failure past the data-size check is
// terminal for the session.
func (s *Session) exchange(command string, data []byte) (relp.Response, error) {
	// Oversized data is a caller bug: reject it before a transaction
	// number is consumed so the txn sequence stays gapless.
	if err := s.cfg.Limits.Check(data); err != nil {
		return relp.Response{}, err
	}

	txn, err := s.seq.Next()
	if err != nil {
		return relp.Response{}, s.fail(command, err)
	}
	out, err := frame.Encode(txn, command, data, s.cfg.Limits)
	if err != nil {
		return relp.Response{}, s.fail(command, err)
	}

	if s.cfg.WriteTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	if _, err := s.conn.Write(out); err != nil {
		return relp.Response{}, s.fail(command, err)
	}

	if s.cfg.ReadTimeout > 0 {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}
	raw, err := s.rd.ReadFrame()
	if err != nil {
		return relp.Response{}, s.fail(command, err)
	}
	// The reader frames responses at the first LF, so a multi-line rsp
	// (the open response's offer echo) arrives with its data cut short
	// of the declared datalen. Decode leniently rather than rejecting it.
	f, err := frame.DecodeTruncated(raw)
	if err != nil {
		return relp.Response{}, s.fail(command, err)
	}
	if f.Command != cmdResp {
		return relp.Response{}, s.fail(command,
			fmt.Errorf("%w: unexpected response command %q", relp.ErrProtocol, f.Command))
	}
	if f.Txn != txn {
		return relp.Response{}, s.fail(command,
			fmt.Errorf("%w: response txn %d, expected %d", relp.ErrProtocol, f.Txn, txn))
	}
	resp, err := relp.ParseResponse(f.Txn, f.Data)
	if err != nil {
		return relp.Response{}, s.fail(command, err)
	}

	observability.RecordCommand(command, resp.Code)
	s.logger.Debug().
		Str("command", command).
		Uint64("txn", txn).
		Int("code", resp.Code).
		Msg("command acknowledged")
	return resp, nil
}

// fail moves the session to its terminal failed state and closes the
// transport.
func (s *Session) fail(command string, err error) error {
	s.status = StatusFailed
	_ = s.conn.Close()
	observability.RecordSessionFailure(failureReason(err))
	s.logger.Error().Err(err).Str("command", command).Msg("session failed")
	return err
}

func (s *Session) statusErr() error {
	switch s.status {
	case StatusUnopened:
		return relp.ErrSessionNotOpen
	default:
		return relp.ErrSessionClosed
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, relp.ErrProtocol):
		return "protocol"
	case errors.Is(err, relp.ErrConnectionClosed):
		return "connection_closed"
	case errors.Is(err, frame.ErrMalformed), errors.Is(err, relp.ErrInvalidResponse):
		return "malformed"
	case errors.Is(err, relp.ErrSequenceExhausted):
		return "sequence_exhausted"
	default:
		return "transport"
	}
}
