// relpsend transmits syslog-shaped test messages to a RELP peer and
// reports each acknowledgement.
//
// Usage:
//
//	relpsend [-addr host:port] [-count n] [-config path] [-software name]
//	         [-timeout d] [-v]
//
// Defaults to localhost:2514 and 5 messages.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/davrul/relpc/internal/logging"
	"github.com/davrul/relpc/internal/relp"
	"github.com/davrul/relpc/internal/relp/session"
)

func main() {
	addr := flag.String("addr", "", "RELP peer address (host:port)")
	count := flag.Int("count", -1, "number of messages to send")
	configPath := flag.String("config", "", "optional TOML config path")
	software := flag.String("software", "", "relp_software offer value")
	timeout := flag.Duration("timeout", 0, "read/write deadline per exchange")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		os.Setenv(logging.EnvLogLevel, "debug")
	}
	logging.ConfigureRuntime()

	cfg := defaultSenderConfig()
	if *configPath != "" {
		loaded, err := loadSenderConfig(*configPath)
		if err != nil {
			pterm.Error.Printfln("%v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *count >= 0 {
		cfg.Count = *count
	}
	if *software != "" {
		cfg.Session.Software = *software
	}
	if *timeout > 0 {
		cfg.Session.ReadTimeout = *timeout
		cfg.Session.WriteTimeout = *timeout
	}

	if err := run(cfg); err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(1)
	}
}

// run drives one full session: open, cfg.Count syslog transfers, close.
// The first peer nack is remembered and reported as the overall outcome,
// without aborting the session.
func run(cfg senderConfig) error {
	pterm.Info.Printfln("connecting to %s", cfg.Addr)
	sess, err := session.Dial(cfg.Addr, cfg.Session)
	if err != nil {
		return fmt.Errorf("connect %s: %w", cfg.Addr, err)
	}

	resp, err := sess.Open()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	report("open", resp)

	var nack *relp.Response
	for i := 0; i < cfg.Count; i++ {
		resp, err := sess.Send([]byte(testMessage(i)))
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		report(fmt.Sprintf("msg %d", i), resp)
		if nack == nil && !resp.OK() {
			r := resp
			nack = &r
		}
	}

	resp, err = sess.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	report("close", resp)

	if nack != nil {
		return fmt.Errorf("peer refused txn %d: %d %s", nack.Txn, nack.Code, nack.Detail)
	}
	pterm.Success.Printfln("done, %d messages acknowledged", cfg.Count)
	return nil
}

// testMessage builds a syslog-shaped line; the session engine treats it as
// opaque bytes.
func testMessage(i int) string {
	return fmt.Sprintf("<14>%s testhost relpsend[%d]: RELP test message %d",
		time.Now().Format("Jan 02 15:04:05"), os.Getpid(), i)
}

func report(label string, resp relp.Response) {
	printer := pterm.Info
	if !resp.OK() {
		printer = pterm.Warning
	}
	printer.Printfln("%s -> txn=%d %d %s", label, resp.Txn, resp.Code, resp.Detail)
}
