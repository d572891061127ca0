package wire

import "fmt"

// HeaderSize is the fixed size of a DNS message header in bytes.
const HeaderSize = 12

// Header is a DNS message header (RFC 1035 Section 4.1.1). The four counts
// declare how many entries follow in each section; after a successful
// decode they always match the decoded section lengths.
type Header struct {
	ID      uint16 // transaction ID
	Flags   uint16 // see enums.go for masks
	QDCount uint16 // question count
	ANCount uint16 // answer count
	NSCount uint16 // authority count
	ARCount uint16 // additional count
}

func parseHeader(c *Cursor) (Header, error) {
	var h Header
	for _, field := range []*uint16{&h.ID, &h.Flags, &h.QDCount, &h.ANCount, &h.NSCount, &h.ARCount} {
		v, err := c.Uint16()
		if err != nil {
			return Header{}, fmt.Errorf("header: %w", err)
		}
		*field = v
	}
	return h, nil
}

// IsResponse reports whether the QR flag is set.
func (h Header) IsResponse() bool { return h.Flags&FlagQR != 0 }

// Authoritative reports whether the AA flag is set.
func (h Header) Authoritative() bool { return h.Flags&FlagAA != 0 }

// Truncated reports whether the TC flag is set.
func (h Header) Truncated() bool { return h.Flags&FlagTC != 0 }

// RecursionDesired reports whether the RD flag is set.
func (h Header) RecursionDesired() bool { return h.Flags&FlagRD != 0 }

// RecursionAvailable reports whether the RA flag is set.
func (h Header) RecursionAvailable() bool { return h.Flags&FlagRA != 0 }

// RCode extracts the response code from the low 4 bits of the flags.
func (h Header) RCode() RCode { return RCode(h.Flags & RCodeMask) }

// Opcode extracts the 4-bit operation code from bits 14-11 of the flags.
func (h Header) Opcode() uint16 { return (h.Flags & OpcodeMask) >> 11 }
