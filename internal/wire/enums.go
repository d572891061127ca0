package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// DNS header flags and masks (RFC 1035 Section 4.1.1).
//
// Layout of the 16-bit flags field, MSB first:
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA|    Z   |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
const (
	FlagQR     uint16 = 0x8000 // query (0) / response (1)
	OpcodeMask uint16 = 0x7800 // bits 14-11, shift right by 11 to extract
	FlagAA     uint16 = 0x0400 // authoritative answer
	FlagTC     uint16 = 0x0200 // truncated
	FlagRD     uint16 = 0x0100 // recursion desired
	FlagRA     uint16 = 0x0080 // recursion available
	RCodeMask  uint16 = 0x000F // bits 3-0
)

// RecordType is a DNS resource record type code.
type RecordType uint16

const (
	TypeA     RecordType = 1  // IPv4 address
	TypeNS    RecordType = 2  // authoritative name server
	TypeCNAME RecordType = 5  // canonical name (alias)
	TypeSOA   RecordType = 6  // start of authority
	TypePTR   RecordType = 12 // domain name pointer
	TypeMX    RecordType = 15 // mail exchange
	TypeTXT   RecordType = 16 // text strings
	TypeAAAA  RecordType = 28 // IPv6 address (RFC 3596)
)

var typeNames = map[RecordType]string{
	TypeA:     "A",
	TypeNS:    "NS",
	TypeCNAME: "CNAME",
	TypeSOA:   "SOA",
	TypePTR:   "PTR",
	TypeMX:    "MX",
	TypeTXT:   "TXT",
	TypeAAAA:  "AAAA",
}

// String returns the type mnemonic, or the RFC 3597 "TYPEnnn" form for
// codes without one.
func (t RecordType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// ParseRecordType accepts a mnemonic ("a", "MX"), the "TYPEnnn" form, or a
// bare numeric code.
func ParseRecordType(s string) (RecordType, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == up {
			return t, nil
		}
	}
	num := strings.TrimPrefix(up, "TYPE")
	n, err := strconv.ParseUint(num, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("unknown record type %q", s)
	}
	return RecordType(n), nil
}

// ClassIN is the Internet class, the only one this client emits.
const ClassIN uint16 = 1

// RCode is a DNS response code (RFC 1035).
type RCode uint16

const (
	RCodeNoError  RCode = 0
	RCodeFormErr  RCode = 1
	RCodeServFail RCode = 2
	RCodeNXDomain RCode = 3
	RCodeNotImp   RCode = 4
	RCodeRefused  RCode = 5
)

var rcodeNames = map[RCode]string{
	RCodeNoError:  "NOERROR",
	RCodeFormErr:  "FORMERR",
	RCodeServFail: "SERVFAIL",
	RCodeNXDomain: "NXDOMAIN",
	RCodeNotImp:   "NOTIMP",
	RCodeRefused:  "REFUSED",
}

func (r RCode) String() string {
	if s, ok := rcodeNames[r]; ok {
		return s
	}
	return fmt.Sprintf("RCODE%d", uint16(r))
}
