package frame

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// defaultMaxDataBytes mirrors librelp's default maximum frame data size.
const defaultMaxDataBytes = 128 * 1024

var (
	ErrMalformed    = errors.New("frame: malformed frame")
	ErrDataTooLarge = errors.New("frame: data too large")
)

// Frame is one RELP wire unit: "<txn> <command> <len> <data>\n".
type Frame struct {
	Txn     uint64
	Command string
	Data    []byte
}

// Limits constrains frame encode memory use.
type Limits struct {
	MaxDataBytes int
}

func DefaultLimits() Limits {
	return Limits{MaxDataBytes: defaultMaxDataBytes}
}

// Check reports whether data fits within the limits. A zero MaxDataBytes
// disables the cap.
func (l Limits) Check(data []byte) error {
	if l.MaxDataBytes > 0 && len(data) > l.MaxDataBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrDataTooLarge, len(data), l.MaxDataBytes)
	}
	return nil
}

// Encode serializes one frame. The length field carries the exact byte
// count of data, and a single space always separates it from the (possibly
// empty) data before the LF trailer. Command and data must not contain a
// raw LF; the caller owns that guarantee, no escaping is performed.
func Encode(txn uint64, command string, data []byte, limits Limits) ([]byte, error) {
	if err := limits.Check(data); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, len(command)+len(data)+24)
	buf = strconv.AppendUint(buf, txn, 10)
	buf = append(buf, ' ')
	buf = append(buf, command...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(len(data)), 10)
	buf = append(buf, ' ')
	buf = append(buf, data...)
	buf = append(buf, '\n')
	return buf, nil
}

// Decode parses a raw frame, with or without its trailing LF. The declared
// length must match the data bytes actually present. A zero length
// tolerates an absent trailing space, since RELP makes the data part of a
// frame optional on the wire.
func Decode(raw []byte) (Frame, error) {
	return decode(raw, false)
}

// DecodeTruncated parses a frame captured with first-LF framing, where
// multi-line data is cut at the first LF. The open rsp from rsyslog peers
// carries "200 OK\nrelp_version=..." and so arrives with fewer data bytes
// than the datalen declares; such short data is accepted as truncated
// detail. Data beyond the declared length is still malformed.
func DecodeTruncated(raw []byte) (Frame, error) {
	return decode(raw, true)
}

func decode(raw []byte, truncated bool) (Frame, error) {
	raw = bytes.TrimSuffix(raw, []byte{'\n'})

	txnTok, rest, ok := bytes.Cut(raw, []byte{' '})
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing command", ErrMalformed)
	}
	cmdTok, rest, ok := bytes.Cut(rest, []byte{' '})
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing datalen", ErrMalformed)
	}
	lenTok, data, _ := bytes.Cut(rest, []byte{' '})

	txn, err := strconv.ParseUint(string(txnTok), 10, 64)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: txnr %q", ErrMalformed, txnTok)
	}
	if len(cmdTok) == 0 {
		return Frame{}, fmt.Errorf("%w: empty command", ErrMalformed)
	}
	dataLen, err := strconv.Atoi(string(lenTok))
	if err != nil || dataLen < 0 {
		return Frame{}, fmt.Errorf("%w: datalen %q", ErrMalformed, lenTok)
	}
	if truncated {
		if len(data) > dataLen {
			return Frame{}, fmt.Errorf("%w: datalen %d but %d data bytes", ErrMalformed, dataLen, len(data))
		}
	} else if len(data) != dataLen {
		return Frame{}, fmt.Errorf("%w: datalen %d but %d data bytes", ErrMalformed, dataLen, len(data))
	}
	return Frame{Txn: txn, Command: string(cmdTok), Data: data}, nil
}
