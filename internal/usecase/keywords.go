// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usecase

import (
	"sort"
	"unicode"
)

// KeywordSet is a set of search keywords that remembers first-seen order.
// The zero value is an empty set ready to use.
type KeywordSet struct {
	order []string
	seen  map[string]struct{}
}

// Add inserts kw if it is not already present. It reports whether kw was added.
func (s *KeywordSet) Add(kw string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[kw]; ok {
		return false
	}
	s.seen[kw] = struct{}{}
	s.order = append(s.order, kw)
	return true
}

// Contains reports whether kw is in the set.
func (s KeywordSet) Contains(kw string) bool {
	_, ok := s.seen[kw]
	return ok
}

// Len returns the number of keywords.
func (s KeywordSet) Len() int {
	return len(s.order)
}

// Keywords returns the keywords in first-seen order as a new slice.
func (s KeywordSet) Keywords() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns the keywords in lexical order as a new slice.
func (s KeywordSet) Sorted() []string {
	out := s.Keywords()
	sort.Strings(out)
	return out
}

// Derive takes the first word of each use case and collects them into a set.
// Use cases with no word characters contribute nothing.
func Derive(cases []string) KeywordSet {
	var set KeywordSet
	for _, c := range cases {
		if w, ok := FirstWord(c); ok {
			set.Add(w)
		}
	}
	return set
}

// FirstWord returns the first run of letters, numbers or underscores in s.
// Combining marks end a word.
func FirstWord(s string) (string, bool) {
	start := -1
	for i, r := range s {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i], true
		}
	}
	if start >= 0 {
		return s[start:], true
	}
	return "", false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
