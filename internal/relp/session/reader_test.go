package session

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/davrul/relpc/internal/relp"
)

func TestReadFrameBuffersPipelinedRemainder(t *testing.T) {
	// Two responses arrive in one read, the second of them truncated.
	src := &chunkedReader{chunks: []string{
		"2 rsp 6 200 OK\n3 rsp",
		" 6 200 OK\n",
	}}
	rd := NewReader(src)

	raw, err := rd.ReadFrame()
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if string(raw) != "2 rsp 6 200 OK\n" {
		t.Fatalf("unexpected first frame: %q", raw)
	}

	raw, err = rd.ReadFrame()
	if err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if string(raw) != "3 rsp 6 200 OK\n" {
		t.Fatalf("unexpected second frame: %q", raw)
	}
}

func TestReadFrameByteAtATimeDelivery(t *testing.T) {
	rd := NewReader(iotest.OneByteReader(strings.NewReader("1 rsp 6 200 OK\n")))
	raw, err := rd.ReadFrame()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if string(raw) != "1 rsp 6 200 OK\n" {
		t.Fatalf("unexpected frame: %q", raw)
	}
}

func TestReadFrameEOFMidFrame(t *testing.T) {
	rd := NewReader(strings.NewReader("2 rsp 6 200"))
	if _, err := rd.ReadFrame(); !errors.Is(err, relp.ErrConnectionClosed) {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
}

func TestReadFrameEOFBeforeAnyBytes(t *testing.T) {
	rd := NewReader(strings.NewReader(""))
	if _, err := rd.ReadFrame(); !errors.Is(err, relp.ErrConnectionClosed) {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
}

func TestReadFrameUnterminatedOverflow(t *testing.T) {
	rd := NewReader(strings.NewReader(strings.Repeat("a", maxResponseBytes+2)))
	if _, err := rd.ReadFrame(); !errors.Is(err, relp.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestReadFrameZeroProgressTransport(t *testing.T) {
	rd := NewReader(zeroProgressReader{})
	if _, err := rd.ReadFrame(); !errors.Is(err, io.ErrNoProgress) {
		t.Fatalf("expected io.ErrNoProgress, got %v", err)
	}
}

// zeroProgressReader models a broken transport that returns (0, nil)
// forever.
type zeroProgressReader struct{}

func (zeroProgressReader) Read([]byte) (int, error) { return 0, nil }

// chunkedReader returns one scripted chunk per Read call, then EOF.
type chunkedReader struct {
	chunks []string
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, errors.New("unexpected read past script")
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	if len(c.chunks[0]) == 0 {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}
