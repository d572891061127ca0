package wire

import "fmt"

// maxSectionHint caps the initial allocation for a section so a header
// declaring huge counts over a tiny buffer cannot force a large allocation
// before the decode fails.
const maxSectionHint = 64

// Message is a fully decoded DNS message. It owns all of its data: no slice
// or string references the buffer it was decoded from, and it is never
// mutated after ParseMessage returns.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []Record
	Authorities []Record
	Additionals []Record
}

// ParseMessage decodes a complete DNS message. Exactly the counts declared
// in the header are read from each section; a buffer that ends first fails
// with ErrUnderrun, and no partially populated Message is ever returned.
func ParseMessage(buf []byte) (Message, error) {
	c := NewCursor(buf)

	h, err := parseHeader(c)
	if err != nil {
		return Message{}, err
	}
	m := Message{Header: h}

	m.Questions = make([]Question, 0, min(int(h.QDCount), maxSectionHint))
	for i := range int(h.QDCount) {
		q, err := parseQuestion(c)
		if err != nil {
			return Message{}, fmt.Errorf("question %d/%d: %w", i+1, h.QDCount, err)
		}
		m.Questions = append(m.Questions, q)
	}

	if m.Answers, err = parseSection(c, "answer", h.ANCount); err != nil {
		return Message{}, err
	}
	if m.Authorities, err = parseSection(c, "authority", h.NSCount); err != nil {
		return Message{}, err
	}
	if m.Additionals, err = parseSection(c, "additional", h.ARCount); err != nil {
		return Message{}, err
	}
	return m, nil
}

func parseSection(c *Cursor, section string, count uint16) ([]Record, error) {
	out := make([]Record, 0, min(int(count), maxSectionHint))
	for i := range int(count) {
		r, err := parseRecord(c)
		if err != nil {
			return nil, fmt.Errorf("%s %d/%d: %w", section, i+1, count, err)
		}
		out = append(out, r)
	}
	return out, nil
}
