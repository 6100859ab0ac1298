package session

import (
	"errors"
	"testing"

	"github.com/davrul/relpc/internal/relp"
)

func TestSequencerStartsAtOneAndIsContiguous(t *testing.T) {
	seq := NewSequencer()
	for want := uint64(1); want <= 10; want++ {
		got, err := seq.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got != want {
			t.Fatalf("unexpected txn: got=%d want=%d", got, want)
		}
	}
}

func TestSequencerFailsClosedAtCeiling(t *testing.T) {
	seq := &Sequencer{next: maxTxnr}
	got, err := seq.Next()
	if err != nil {
		t.Fatalf("next at ceiling: %v", err)
	}
	if got != maxTxnr {
		t.Fatalf("unexpected txn: got=%d want=%d", got, maxTxnr)
	}
	if _, err := seq.Next(); !errors.Is(err, relp.ErrSequenceExhausted) {
		t.Fatalf("expected ErrSequenceExhausted, got %v", err)
	}
}
