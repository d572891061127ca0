package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dnsq/dnsq/internal/wire"
)

var (
	// ErrInvalidResponse means the response is not a response message or
	// does not echo the question that was asked.
	ErrInvalidResponse = errors.New("invalid DNS response")

	// ErrNoName means the server answered NXDOMAIN. The message suffix
	// matches the Go standard library resolver.
	ErrNoName = errors.New("no such host")

	// ErrServerFailure means the server answered SERVFAIL.
	ErrServerFailure = errors.New("server misbehaving")

	// ErrNoData means the response carries no answer records.
	ErrNoData = errors.New("no answer from DNS server")
)

// validateResponse checks that a decoded message answers the query we sent:
// QR set, matching transaction ID, and a single question echoing our name,
// type, and class. Spoofed or mismatched responses are rejected rather
// than surfaced.
func validateResponse(id uint16, name string, qtype wire.RecordType, m wire.Message) error {
	if !m.Header.IsResponse() {
		return fmt.Errorf("%w: QR flag not set", ErrInvalidResponse)
	}
	if m.Header.ID != id {
		return fmt.Errorf("%w: transaction ID %d, expected %d", ErrInvalidResponse, m.Header.ID, id)
	}
	if len(m.Questions) != 1 {
		return fmt.Errorf("%w: %d questions echoed", ErrInvalidResponse, len(m.Questions))
	}
	q := m.Questions[0]
	if !equalNames(q.Name, name) {
		return fmt.Errorf("%w: question name %q, expected %q", ErrInvalidResponse, q.Name, name)
	}
	if q.Type != qtype {
		return fmt.Errorf("%w: question type %s, expected %s", ErrInvalidResponse, q.Type, qtype)
	}
	if q.Class != wire.ClassIN {
		return fmt.Errorf("%w: question class %d", ErrInvalidResponse, q.Class)
	}
	return nil
}

// ResponseError maps the RCODE of a validated response to an error, using
// suffixes compatible with net.Resolver error strings. A clean NOERROR
// response with answers maps to nil; NOERROR without answers maps to
// ErrNoData.
func ResponseError(m wire.Message) error {
	switch m.Header.RCode() {
	case wire.RCodeNoError:
		if len(m.Answers) == 0 {
			return ErrNoData
		}
		return nil
	case wire.RCodeNXDomain:
		return ErrNoName
	case wire.RCodeServFail:
		return ErrServerFailure
	default:
		return fmt.Errorf("%w: %s", ErrServerFailure, m.Header.RCode())
	}
}

// equalNames compares DNS names case-insensitively, ignoring a trailing dot.
func equalNames(a, b string) bool {
	return strings.EqualFold(strings.TrimSuffix(a, "."), strings.TrimSuffix(b, "."))
}
