package model

import "sort"

// FontSet is a case-sensitive set of font family names.
type FontSet map[string]struct{}

// NewFontSet returns a set holding names.
func NewFontSet(names ...string) FontSet {
	s := make(FontSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name into the set.
func (s FontSet) Add(name string) {
	s[name] = struct{}{}
}

// AddAll inserts every member of other.
func (s FontSet) AddAll(other FontSet) {
	for n := range other {
		s[n] = struct{}{}
	}
}

// Has reports whether name is a member.
func (s FontSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Remove deletes every given name from the set.
func (s FontSet) Remove(names ...string) {
	for _, n := range names {
		delete(s, n)
	}
}

// Sorted returns the members in ascending order. The result is never nil
// so that JSON output shows [] rather than null.
func (s FontSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
