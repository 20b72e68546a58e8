package catalogue

import (
	"fmt"
	"sort"
	"strings"
)

// Catalogue is the immutable table mapping gate keys to correction
// patterns. It is constructed once and passed by reference into the
// synthesis loop - there is no global registry.
type Catalogue struct {
	patterns []Pattern
	byID     map[string]int
}

// New builds a Catalogue from patterns.
//
// Construction validates every pattern (unique IDs, priority inside the
// strategy's band, payload shape, compilable expressions) and fixes the
// insertion order used as the same-priority tie-break. A Catalogue that
// constructs successfully can never fail a lookup.
func New(patterns []Pattern) (*Catalogue, error) {
	c := &Catalogue{
		patterns: make([]Pattern, len(patterns)),
		byID:     make(map[string]int, len(patterns)),
	}
	copy(c.patterns, patterns)

	for i := range c.patterns {
		p := &c.patterns[i]
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate pattern id: %s", p.ID)
		}
		c.byID[p.ID] = i
		p.ord = i
	}
	return c, nil
}

// Lookup returns the patterns applicable to a reported gate key.
//
// A pattern matches on exact key equality or bidirectional substring: a
// pattern registered for "accompaniment" resolves a reported key of
// "employment.accompaniment_restrictions", and a pattern registered for
// the long form resolves the short report. Results are sorted by
// (priority, insertion order) - two lookups for the same key always
// return the same slice in the same order.
func (c *Catalogue) Lookup(gateKey string) []Pattern {
	var out []Pattern
	for _, p := range c.patterns {
		if keyMatches(p.GateKey, gateKey) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ord < out[j].ord
	})
	return out
}

// Get returns the pattern with the given ID.
func (c *Catalogue) Get(id string) (Pattern, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Pattern{}, false
	}
	return c.patterns[i], true
}

// Patterns returns all patterns in insertion order. The slice is a copy.
func (c *Catalogue) Patterns() []Pattern {
	out := make([]Pattern, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// Len returns the number of patterns.
func (c *Catalogue) Len() int {
	return len(c.patterns)
}

// keyMatches implements the exact-or-bidirectional-substring rule. Gates
// may be reported under a sub-name of the registered key or vice versa.
func keyMatches(registered, reported string) bool {
	if registered == reported {
		return true
	}
	return strings.Contains(reported, registered) || strings.Contains(registered, reported)
}
