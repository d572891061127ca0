// Package wire implements the DNS wire format: query encoding and response
// decoding per RFC 1035, including name compression pointers.
//
// The package is a pure codec. It performs no I/O, keeps no state between
// calls, and never logs; every decode call owns its own cursor and returns
// either a fully materialized Message or an error. Callers may invoke the
// encode and decode entry points concurrently without coordination.
//
// Error Handling:
//
// Failures are reported through a small set of sentinel errors, each wrapped
// with positional context using fmt.Errorf("%w: ..."). Match them with
// errors.Is.
package wire

import "errors"

var (
	// ErrUnderrun means the buffer ended before a required read completed.
	// It signals a truncated or corrupt message.
	ErrUnderrun = errors.New("dns wire: buffer underrun")

	// ErrInvalidLabel means a name label is empty, exceeds 63 bytes, or
	// uses a reserved label type.
	ErrInvalidLabel = errors.New("dns wire: invalid label")

	// ErrRDataOverrun means a type-specific parser consumed more bytes than
	// the record declared. The message is malformed or the declared type
	// does not match the payload.
	ErrRDataOverrun = errors.New("dns wire: rdata overrun")

	// ErrCompressionLoop means a name's compression pointers form a cycle
	// or chain beyond any plausible depth.
	ErrCompressionLoop = errors.New("dns wire: compression pointer loop")

	// ErrBadEncoding means bytes that must be UTF-8 text are not.
	ErrBadEncoding = errors.New("dns wire: invalid text encoding")
)
