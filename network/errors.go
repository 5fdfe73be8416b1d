package network

import "errors"

var (
	// ErrDuplicateEntity indicates two entities sharing a uid.
	ErrDuplicateEntity = errors.New("network: duplicate entity uid")

	// ErrDanglingReference indicates a uid that names no entity of the
	// expected kind.
	ErrDanglingReference = errors.New("network: dangling reference")
)
