// Package therapist associates free-text therapist labels on booking rows with
// the therapist roster. Bookings carry no therapist foreign key, so the join is
// fuzzy: a roster entry matches when its first name appears as a word in the
// label. Honorifics such as "Dr." are not first names. When several entries
// match, the first in roster order wins.
package therapist

import (
	"strings"
	"unicode"
)

var titles = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "miss": true, "mx": true, "prof": true,
}

// Matcher resolves booking labels against a fixed roster.
type Matcher struct {
	roster []entry
}

type entry struct {
	name      string
	firstName string
}

// NewMatcher builds a matcher over roster display names. Blank names are skipped.
func NewMatcher(names []string) *Matcher {
	m := &Matcher{}
	for _, name := range names {
		fields := strings.Fields(name)
		if len(fields) == 0 {
			continue
		}
		m.roster = append(m.roster, entry{
			name:      strings.Join(fields, " "),
			firstName: firstName(fields),
		})
	}
	return m
}

// Match returns the roster name whose first name occurs as a word in label, or "".
func (m *Matcher) Match(label string) string {
	seen := make(map[string]bool)
	for _, w := range words(label) {
		seen[w] = true
	}
	if len(seen) == 0 {
		return ""
	}
	for _, e := range m.roster {
		if seen[e.firstName] {
			return e.name
		}
	}
	return ""
}

// firstName picks the first word of a roster name that is not a title. A name
// made only of titles keys on its first word.
func firstName(fields []string) string {
	for _, f := range fields {
		if w := words(f); len(w) > 0 && !titles[w[0]] {
			return w[0]
		}
	}
	if w := words(fields[0]); len(w) > 0 {
		return w[0]
	}
	return strings.ToLower(fields[0])
}

// words lowercases s and splits it on anything that is not a letter or digit.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
