package session

import "github.com/davrul/relpc/internal/relp"

// maxTxnr is RELP's transaction-number ceiling. Numbers past it would wrap
// on the wire and corrupt response correlation, so Next fails closed
// instead.
const maxTxnr uint64 = 999999999

// Sequencer hands out the transaction numbers for one Session: starting at
// 1, increasing by exactly one per command, no reuse and no gaps. It is a
// plain counter because a Session is single-threaded by contract.
type Sequencer struct {
	next uint64
}

// NewSequencer returns a Sequencer whose first Next call yields 1.
func NewSequencer() *Sequencer {
	return &Sequencer{next: 1}
}

// Next returns the current transaction number and advances the counter.
func (s *Sequencer) Next() (uint64, error) {
	if s.next > maxTxnr {
		return 0, relp.ErrSequenceExhausted
	}
	n := s.next
	s.next++
	return n, nil
}
