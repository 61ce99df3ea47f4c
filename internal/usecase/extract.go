// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package usecase turns generated text into a bounded list of use cases and
// derives search keywords from them. All functions are pure and safe for
// concurrent use.
package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxUseCases is the default number of use cases kept from a generation.
const MaxUseCases = 3

// Options controls Extract behavior beyond the defaults.
type Options struct {
	// Limit caps the number of use cases returned. Values <= 0 or above
	// MaxUseCases mean MaxUseCases.
	Limit int

	// SkipBlank drops numbered lines whose content is empty so they do not
	// occupy a slot. The default keeps them as "".
	SkipBlank bool
}

// Extract returns up to MaxUseCases use cases from raw, in order of
// appearance. Numbered lines with no content yield "" and still count
// toward the limit. The result is never nil.
func Extract(raw string) []string {
	return ExtractWith(raw, Options{})
}

// ExtractWith is Extract with explicit options.
func ExtractWith(raw string, opts Options) []string {
	limit := opts.Limit
	if limit <= 0 || limit > MaxUseCases {
		limit = MaxUseCases
	}

	cases := make([]string, 0, limit)
	if raw == "" {
		return cases
	}

	for _, line := range strings.Split(raw, "\n") {
		if len(cases) == limit {
			break
		}
		text, ok := parseNumberedLine(line)
		if !ok {
			continue
		}
		if text == "" && opts.SkipBlank {
			continue
		}
		cases = append(cases, text)
	}
	return cases
}

// parseNumberedLine finds the leftmost digit run followed by '.' in line and
// returns the trimmed remainder after the period. The second result is false
// when the line carries no numeric marker.
func parseNumberedLine(line string) (string, bool) {
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if !unicode.IsDigit(r) {
			i += size
			continue
		}

		// Consume the whole digit run, then require a period.
		j := i + size
		for j < len(line) {
			r, size = utf8.DecodeRuneInString(line[j:])
			if !unicode.IsDigit(r) {
				break
			}
			j += size
		}
		if j < len(line) && line[j] == '.' {
			return strings.TrimSpace(line[j+1:]), true
		}
		i = j
	}
	return "", false
}

// StartsNumbered reports whether the first line of text opens with a numeric
// marker such as "1." or "12.", ignoring leading blanks.
func StartsNumbered(text string) bool {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimLeft(line, " \t")
	r, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsDigit(r) {
		return false
	}
	_, ok := parseNumberedLine(line)
	return ok
}
