package genome

import "strings"

// Manifest accumulates the names of successfully exported genomes in
// processing order. It is threaded through the run as an explicit value and
// written once at the end.
type Manifest struct {
	entries []string
}

// Append records one successfully processed genome.
func (m *Manifest) Append(name string) {
	m.entries = append(m.entries, name)
}

// Entries returns the recorded names in processing order.
func (m *Manifest) Entries() []string {
	return m.entries
}

// Len reports the number of recorded genomes.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Render serializes the manifest, one name per line.
func (m Manifest) Render() []byte {
	if len(m.entries) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(m.entries, "\n") + "\n")
}
