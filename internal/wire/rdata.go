package wire

import (
	"fmt"
	"net"
	"strings"
	"unicode/utf8"
)

// RData is the typed payload of a resource record. The concrete type is
// determined solely by the record's Type; consumers switch exhaustively
// over the five variants below. The interface is sealed: only this package
// can add variants.
type RData interface {
	rdata()
}

// Address is the payload of an A (4 bytes) or AAAA (16 bytes) record.
type Address struct {
	IP net.IP
}

// DomainName is the payload of an NS or CNAME record.
type DomainName struct {
	Target string
}

// MailExchange is the payload of an MX record.
type MailExchange struct {
	Preference uint16
	Host       string
}

// Text is the payload of a TXT record: the record's character strings in
// wire order.
type Text struct {
	Strings []string
}

// Joined returns the strings concatenated with single spaces, the form
// used for display.
func (t Text) Joined() string { return strings.Join(t.Strings, " ") }

// Opaque is the uninterpreted payload of any record type this client does
// not decode.
type Opaque struct {
	Bytes []byte
}

func (Address) rdata()      {}
func (DomainName) rdata()   {}
func (MailExchange) rdata() {}
func (Text) rdata()         {}
func (Opaque) rdata()       {}

// parseRData decodes the type-specific payload. The caller accounts for
// consumed bytes against the declared rdata length afterwards; parsers here
// read what their type requires and nothing more.
func parseRData(c *Cursor, rt RecordType, rdlen int) (RData, error) {
	switch rt {
	case TypeA:
		b, err := c.Bytes(4)
		if err != nil {
			return nil, err
		}
		return Address{IP: net.IP(b)}, nil
	case TypeAAAA:
		b, err := c.Bytes(16)
		if err != nil {
			return nil, err
		}
		return Address{IP: net.IP(b)}, nil
	case TypeNS, TypeCNAME:
		target, err := c.Name()
		if err != nil {
			return nil, err
		}
		return DomainName{Target: target}, nil
	case TypeMX:
		pref, err := c.Uint16()
		if err != nil {
			return nil, err
		}
		host, err := c.Name()
		if err != nil {
			return nil, err
		}
		return MailExchange{Preference: pref, Host: host}, nil
	case TypeTXT:
		return parseText(c, rdlen)
	default:
		b, err := c.Bytes(rdlen)
		if err != nil {
			return nil, err
		}
		return Opaque{Bytes: b}, nil
	}
}

// parseText reads length-prefixed character strings until the declared
// rdata length is exhausted. A string running past the declared length is
// caught by the caller's length accounting.
func parseText(c *Cursor, rdlen int) (RData, error) {
	start := c.Pos()
	var out []string
	for c.Pos()-start < rdlen {
		n, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		b, err := c.Bytes(int(n))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("%w: TXT string is not valid UTF-8", ErrBadEncoding)
		}
		out = append(out, string(b))
	}
	return Text{Strings: out}, nil
}
