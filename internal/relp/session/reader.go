package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/davrul/relpc/internal/relp"
)

const (
	readChunkSize = 4096

	// maxResponseBytes bounds buffering against a peer that never
	// terminates a frame.
	maxResponseBytes = 128 * 1024

	// maxConsecutiveEmptyReads mirrors bufio: a transport returning
	// (0, nil) this many times in a row is broken.
	maxConsecutiveEmptyReads = 100
)

// Reader reassembles response frames from a transport that may deliver
// bytes in arbitrary-sized chunks, down to one byte per read. Surplus
// bytes after a frame terminator are retained for the next call, so
// back-to-back responses arriving in a single read are handled.
type Reader struct {
	src io.Reader
	buf []byte
}

// NewReader returns a Reader consuming src.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// ReadFrame returns one raw frame up to and including its LF terminator.
// End-of-stream before a terminator fails with relp.ErrConnectionClosed.
//
// Responses are framed by the first LF. rsyslog peers emit single-line rsp
// data, so this holds in practice; handling response detail with embedded
// newlines would require reading the declared datalen instead.
func (r *Reader) ReadFrame() ([]byte, error) {
	empty := 0
	for {
		if i := bytes.IndexByte(r.buf, '\n'); i >= 0 {
			raw := r.buf[:i+1]
			r.buf = append([]byte(nil), r.buf[i+1:]...)
			return raw, nil
		}
		if len(r.buf) > maxResponseBytes {
			return nil, fmt.Errorf("%w: no frame terminator within %d bytes", relp.ErrProtocol, maxResponseBytes)
		}
		chunk := make([]byte, readChunkSize)
		n, err := r.src.Read(chunk)
		if n > 0 {
			empty = 0
			r.buf = append(r.buf, chunk[:n]...)
			continue
		}
		if err == nil {
			if empty++; empty >= maxConsecutiveEmptyReads {
				return nil, io.ErrNoProgress
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: stream ended before frame terminator", relp.ErrConnectionClosed)
		}
		return nil, err
	}
}
