// Package format renders decoded DNS messages as text for terminal output.
package format

import (
	"fmt"
	"strings"

	"github.com/dnsq/dnsq/internal/wire"
)

// Message renders a decoded message in a dig-like multi-section layout.
func Message(m wire.Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, ";; ->>HEADER<<- opcode: %d, status: %s, id: %d\n",
		m.Header.Opcode(), m.Header.RCode(), m.Header.ID)
	fmt.Fprintf(&b, ";; flags: %s; QUERY: %d, ANSWER: %d, AUTHORITY: %d, ADDITIONAL: %d\n",
		flagString(m.Header), m.Header.QDCount, m.Header.ANCount, m.Header.NSCount, m.Header.ARCount)

	if len(m.Questions) > 0 {
		b.WriteString("\n;; QUESTION SECTION:\n")
		for _, q := range m.Questions {
			fmt.Fprintf(&b, ";%s\t%s\t%s\n", dotted(q.Name), classString(q.Class), q.Type)
		}
	}
	writeSection(&b, "ANSWER", m.Answers)
	writeSection(&b, "AUTHORITY", m.Authorities)
	writeSection(&b, "ADDITIONAL", m.Additionals)

	return b.String()
}

// Short renders only the answer payloads, one per line, like dig +short.
func Short(m wire.Message) string {
	var b strings.Builder
	for _, r := range m.Answers {
		b.WriteString(RData(r.Data))
		b.WriteByte('\n')
	}
	return b.String()
}

// RecordLine renders one record in zone-file order.
func RecordLine(r wire.Record) string {
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s",
		dotted(r.Name), r.TTL, classString(r.Class), r.Type, RData(r.Data))
}

// RData renders a record payload. The switch is exhaustive over the wire
// package's closed variant.
func RData(d wire.RData) string {
	switch d := d.(type) {
	case wire.Address:
		return d.IP.String()
	case wire.DomainName:
		return dotted(d.Target)
	case wire.MailExchange:
		return fmt.Sprintf("%d %s", d.Preference, dotted(d.Host))
	case wire.Text:
		quoted := make([]string, 0, len(d.Strings))
		for _, s := range d.Strings {
			quoted = append(quoted, fmt.Sprintf("%q", s))
		}
		return strings.Join(quoted, " ")
	case wire.Opaque:
		return fmt.Sprintf("\\# %d %x", len(d.Bytes), d.Bytes)
	default:
		return fmt.Sprintf("<unknown rdata %T>", d)
	}
}

func writeSection(b *strings.Builder, name string, records []wire.Record) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(b, "\n;; %s SECTION:\n", name)
	for _, r := range records {
		b.WriteString(RecordLine(r))
		b.WriteByte('\n')
	}
}

func flagString(h wire.Header) string {
	var flags []string
	if h.IsResponse() {
		flags = append(flags, "qr")
	}
	if h.Authoritative() {
		flags = append(flags, "aa")
	}
	if h.Truncated() {
		flags = append(flags, "tc")
	}
	if h.RecursionDesired() {
		flags = append(flags, "rd")
	}
	if h.RecursionAvailable() {
		flags = append(flags, "ra")
	}
	return strings.Join(flags, " ")
}

func classString(class uint16) string {
	if class == wire.ClassIN {
		return "IN"
	}
	return fmt.Sprintf("CLASS%d", class)
}

// dotted renders a name in zone-file form with a trailing dot; the root
// name renders as ".".
func dotted(name string) string {
	if name == "" {
		return "."
	}
	return name + "."
}
