package relp

import "errors"

var (
	ErrProtocol          = errors.New("relp: protocol violation")
	ErrConnectionClosed  = errors.New("relp: connection closed mid-frame")
	ErrSessionClosed     = errors.New("relp: session closed")
	ErrSessionNotOpen    = errors.New("relp: session not open")
	ErrSessionOpen       = errors.New("relp: session already open")
	ErrSequenceExhausted = errors.New("relp: transaction numbers exhausted")
	ErrInvalidResponse   = errors.New("relp: invalid response payload")
)
