package domain

import "errors"

var (
	// ErrRecordNotFound covers both absent records and records owned by
	// another user. The two cases are deliberately indistinguishable so a
	// response never reveals that a foreign record exists.
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")
)
