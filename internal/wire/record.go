package wire

import "fmt"

// Record is a decoded DNS resource record. Data holds the typed payload
// for the record's Type.
type Record struct {
	Name  string
	Type  RecordType
	Class uint16
	TTL   uint32
	Data  RData
}

// parseRecord decodes one resource record and leaves the cursor exactly at
// the start of the next one.
//
// The type-specific payload parse is checked against the declared rdata
// length. Short consumption is legal (a compressed name can end before the
// declared length) and the remainder is skipped; over-consumption means a
// malformed record and fails with ErrRDataOverrun.
func parseRecord(c *Cursor) (Record, error) {
	name, err := c.Name()
	if err != nil {
		return Record{}, fmt.Errorf("record: %w", err)
	}
	rtype, err := c.Uint16()
	if err != nil {
		return Record{}, fmt.Errorf("record %q: %w", name, err)
	}
	class, err := c.Uint16()
	if err != nil {
		return Record{}, fmt.Errorf("record %q: %w", name, err)
	}
	ttl, err := c.Uint32()
	if err != nil {
		return Record{}, fmt.Errorf("record %q: %w", name, err)
	}
	rdlen, err := c.Uint16()
	if err != nil {
		return Record{}, fmt.Errorf("record %q: %w", name, err)
	}

	rt := RecordType(rtype)
	start := c.Pos()
	data, err := parseRData(c, rt, int(rdlen))
	if err != nil {
		return Record{}, fmt.Errorf("record %q: %w", name, err)
	}
	consumed := c.Pos() - start
	switch {
	case consumed > int(rdlen):
		return Record{}, fmt.Errorf("%w: %s record %q consumed %d of %d declared bytes",
			ErrRDataOverrun, rt, name, consumed, rdlen)
	case consumed < int(rdlen):
		if err := c.Skip(int(rdlen) - consumed); err != nil {
			return Record{}, fmt.Errorf("record %q: %w", name, err)
		}
	}

	return Record{Name: name, Type: rt, Class: class, TTL: ttl, Data: data}, nil
}
