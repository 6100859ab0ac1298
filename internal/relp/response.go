package relp

import (
	"bytes"
	"fmt"
	"strconv"
)

// StatusOK is the peer's positive acknowledgement code.
const StatusOK = 200

// Response is one decoded rsp frame, correlated to the command that
// solicited it.
type Response struct {
	Txn    uint64
	Code   int
	Detail string
}

// OK reports whether the peer acknowledged the command positively.
func (r Response) OK() bool { return r.Code == StatusOK }

// ParseResponse decodes a rsp frame payload: a 3-digit status code,
// optionally followed by a space and human-readable detail.
func ParseResponse(txn uint64, data []byte) (Response, error) {
	code := data
	var detail []byte
	if i := bytes.IndexByte(data, ' '); i >= 0 {
		code, detail = data[:i], data[i+1:]
	}
	if len(code) != 3 {
		return Response{}, fmt.Errorf("%w: status code %q", ErrInvalidResponse, code)
	}
	n, err := strconv.Atoi(string(code))
	if err != nil {
		return Response{}, fmt.Errorf("%w: status code %q", ErrInvalidResponse, code)
	}
	return Response{Txn: txn, Code: n, Detail: string(detail)}, nil
}
