package wire

import "fmt"

// Question is a DNS question section entry (RFC 1035 Section 4.1.2).
type Question struct {
	Name  string
	Type  RecordType
	Class uint16
}

func parseQuestion(c *Cursor) (Question, error) {
	name, err := c.Name()
	if err != nil {
		return Question{}, fmt.Errorf("question: %w", err)
	}
	qtype, err := c.Uint16()
	if err != nil {
		return Question{}, fmt.Errorf("question %q: %w", name, err)
	}
	class, err := c.Uint16()
	if err != nil {
		return Question{}, fmt.Errorf("question %q: %w", name, err)
	}
	return Question{Name: name, Type: RecordType(qtype), Class: class}, nil
}
