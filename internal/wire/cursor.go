package wire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Cursor is a bounds-checked, position-tracked reader over a fixed byte
// buffer. All decoding goes through a Cursor; nothing above it touches raw
// bytes. The zero position is the start of the buffer, and offsets in
// compression pointers are absolute into the whole buffer, so one Cursor
// is created per message and shared for the full decode pass.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf. The cursor
// never writes to buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current absolute offset.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

func (c *Cursor) need(n int) error {
	if c.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, %d remain", ErrUnderrun, n, c.pos, c.Remaining())
	}
	return nil
}

// Uint8 reads one byte and advances.
func (c *Cursor) Uint8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// Uint16 reads two bytes big-endian and advances.
func (c *Cursor) Uint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

// Uint32 reads four bytes big-endian and advances.
func (c *Cursor) Uint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// Bytes reads the next n bytes and advances. The returned slice is a copy;
// decoded messages hold no references into the input buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// Skip advances past n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// maxPointerHops bounds compression pointer indirections per name. RFC 1035
// puts no explicit limit on chains, but a conforming message cannot need
// more hops than it has labels, and a 255-byte name holds at most 127.
const maxPointerHops = 127

// Name decodes a domain name starting at the current position, following
// compression pointers (RFC 1035 Section 4.1.4).
//
// A length octet of 0 ends the name. An octet with the top two bits set is
// a pointer: its low 6 bits and the following octet form a 14-bit absolute
// offset to continue reading from. The cursor resumes immediately after the
// first pointer's two bytes once the name is complete; pointers encountered
// while already relocated do not move the resume position. Any other octet
// is a label length of 1-63.
//
// Labels are joined with "."; an empty label sequence (root) decodes to "".
// Pointer cycles fail with ErrCompressionLoop rather than looping.
func (c *Cursor) Name() (string, error) {
	var (
		labels  []string
		resume  = -1
		visited map[int]struct{}
		hops    int
	)
	for {
		b, err := c.Uint8()
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		if b&0xC0 == 0xC0 {
			lo, err := c.Uint8()
			if err != nil {
				return "", err
			}
			if resume < 0 {
				resume = c.pos
			}
			target := int(b&0x3F)<<8 | int(lo)
			if target >= len(c.buf) {
				return "", fmt.Errorf("%w: compression pointer to offset %d beyond %d-byte message",
					ErrUnderrun, target, len(c.buf))
			}
			if visited == nil {
				visited = make(map[int]struct{})
			}
			if _, seen := visited[target]; seen {
				return "", fmt.Errorf("%w: offset %d revisited", ErrCompressionLoop, target)
			}
			visited[target] = struct{}{}
			hops++
			if hops > maxPointerHops {
				return "", fmt.Errorf("%w: more than %d indirections", ErrCompressionLoop, maxPointerHops)
			}
			c.pos = target
			continue
		}
		if b&0xC0 != 0 {
			// 01 and 10 prefixes are reserved label types.
			return "", fmt.Errorf("%w: reserved label type 0x%02x", ErrInvalidLabel, b)
		}
		raw, err := c.Bytes(int(b))
		if err != nil {
			return "", err
		}
		labels = append(labels, string(raw))
	}
	if resume >= 0 {
		c.pos = resume
	}
	return strings.Join(labels, "."), nil
}
