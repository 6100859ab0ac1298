// Package session implements the client side of one RELP conversation:
// transaction sequencing, response frame reassembly, and the
// open -> (syslog)* -> close lifecycle over a caller-supplied transport.
//
// A Session is strictly synchronous and half-duplex. Each operation writes
// one command and blocks until the matching response frame has been read
// and correlated, so exactly one request is outstanding at any time.
// A Session is not safe for concurrent use; callers needing concurrency
// run independent Sessions over independent connections, which share no
// state.
package session
