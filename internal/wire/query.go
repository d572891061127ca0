package wire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const maxLabelLength = 63

// BuildQuery serializes a single-question DNS query: the given transaction
// ID, flags with at most the RD bit set, QDCount=1, the name as
// length-prefixed labels, the given type code, and class IN. Names are
// never compressed on the encode side.
func BuildQuery(id uint16, name string, qtype RecordType, recursionDesired bool) ([]byte, error) {
	nameWire, err := EncodeName(name)
	if err != nil {
		return nil, err
	}

	var flags uint16
	if recursionDesired {
		flags |= FlagRD
	}

	out := make([]byte, HeaderSize, HeaderSize+len(nameWire)+4)
	binary.BigEndian.PutUint16(out[0:2], id)
	binary.BigEndian.PutUint16(out[2:4], flags)
	binary.BigEndian.PutUint16(out[4:6], 1) // QDCount; remaining counts stay zero
	out = append(out, nameWire...)

	var tail [4]byte
	binary.BigEndian.PutUint16(tail[0:2], uint16(qtype))
	binary.BigEndian.PutUint16(tail[2:4], ClassIN)
	return append(out, tail[:]...), nil
}

// EncodeName encodes a domain name as a sequence of length-prefixed labels
// terminated by a zero octet (RFC 1035 Section 3.1). One trailing dot is
// accepted and dropped; "" and "." both encode the root name. Labels over
// 63 bytes, and empty interior labels, fail with ErrInvalidLabel.
func EncodeName(name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return []byte{0}, nil
	}

	out := make([]byte, 0, len(name)+2)
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return nil, fmt.Errorf("%w: empty label in %q", ErrInvalidLabel, name)
		}
		if len(label) > maxLabelLength {
			return nil, fmt.Errorf("%w: label %q is %d bytes (max %d)",
				ErrInvalidLabel, label, len(label), maxLabelLength)
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0), nil
}
