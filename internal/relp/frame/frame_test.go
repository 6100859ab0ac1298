package frame

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := []byte("<14>Jan 02 15:04:05 testhost app[7]: hello")
	raw, err := Encode(42, "syslog", data, DefaultLimits())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	f, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Txn != 42 || f.Command != "syslog" || !bytes.Equal(f.Data, data) {
		t.Fatalf("round trip mismatch: %+v", f)
	}
}

func TestEncodeWireExact(t *testing.T) {
	raw, err := Encode(2, "syslog", []byte("abc"), DefaultLimits())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := string(raw); got != "2 syslog 3 abc\n" {
		t.Fatalf("unexpected wire bytes: %q", got)
	}
}

func TestEncodeEmptyDataKeepsSeparator(t *testing.T) {
	raw, err := Encode(3, "close", nil, DefaultLimits())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := string(raw); got != "3 close 0 \n" {
		t.Fatalf("unexpected wire bytes: %q", got)
	}
	f, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Txn != 3 || f.Command != "close" || len(f.Data) != 0 {
		t.Fatalf("round trip mismatch: %+v", f)
	}
}

func TestEncodeDataOverLimit(t *testing.T) {
	limits := Limits{MaxDataBytes: 8}
	_, err := Encode(1, "syslog", []byte("123456789"), limits)
	if !errors.Is(err, ErrDataTooLarge) {
		t.Fatalf("expected ErrDataTooLarge, got %v", err)
	}
}

func TestDecodeResponseFrame(t *testing.T) {
	f, err := Decode([]byte("2 rsp 6 200 OK\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Txn != 2 || f.Command != "rsp" || string(f.Data) != "200 OK" {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestDecodeZeroDatalenWithoutSeparator(t *testing.T) {
	// RELP peers may omit the data part entirely when datalen is 0.
	f, err := Decode([]byte("4 serverclose 0\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Txn != 4 || f.Command != "serverclose" || len(f.Data) != 0 {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestDecodeTooFewHeaderTokens(t *testing.T) {
	for _, raw := range []string{"", "7", "7 syslog"} {
		if _, err := Decode([]byte(raw)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("raw %q: expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestDecodeTruncatedAcceptsShortData(t *testing.T) {
	// An open rsp with multi-line data, cut at the first LF: 13 bytes
	// declared, only "200 OK" present.
	f, err := DecodeTruncated([]byte("1 rsp 13 200 OK\n"))
	if err != nil {
		t.Fatalf("decode truncated: %v", err)
	}
	if f.Txn != 1 || f.Command != "rsp" || string(f.Data) != "200 OK" {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestDecodeTruncatedStillRejectsExcessData(t *testing.T) {
	// Short data is explained by LF truncation; surplus data is not.
	_, err := DecodeTruncated([]byte("1 rsp 2 200 OK\n"))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDecodeDatalenMismatch(t *testing.T) {
	// Strict decoding demands an exact datalen match in both directions.
	for _, raw := range []string{"7 syslog 5 abc\n", "1 rsp 13 200 OK\n"} {
		if _, err := Decode([]byte(raw)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("raw %q: expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestDecodeBadIntegerFields(t *testing.T) {
	for _, raw := range []string{"x open 0 ", "-1 open 0 ", "1 open x ", "1 open -3 abc"} {
		if _, err := Decode([]byte(raw)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("raw %q: expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestDecodeDataMayContainSpaces(t *testing.T) {
	f, err := Decode([]byte("1 rsp 14 200 OK, queued\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(f.Data) != "200 OK, queued" {
		t.Fatalf("unexpected data: %q", f.Data)
	}
}

func TestLimitsCheckZeroIsUnbounded(t *testing.T) {
	var l Limits
	if err := l.Check([]byte(strings.Repeat("a", defaultMaxDataBytes+1))); err != nil {
		t.Fatalf("unexpected limit error: %v", err)
	}
}
