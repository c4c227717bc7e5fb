// Package hint assigns letter hints to windows and matches keyboard
// input against them.
//
// Hints are Vimium-style repeated letters: the first firefox window gets
// "f", the second "ff", the third "fff".
package hint

import (
	"strings"
	"unicode"
)

// Expansion cap for the letter+digit shorthand ("f10" => ten f's).
// Bounds memory used for normalization of hostile input.
const maxRepeat = 26

// Sequence is a repeated-letter hint such as "g", "gg" or "ggg".
// Immutable value type: a lowercase ASCII base letter and a repetition
// count of at least one.
type Sequence struct {
	base  byte
	count int
}

// NewSequence creates a sequence from a base letter and count. The base
// is lowercased and the count clamped to a minimum of one.
func NewSequence(base byte, count int) Sequence {
	if base >= 'A' && base <= 'Z' {
		base += 'a' - 'A'
	}
	if count < 1 {
		count = 1
	}
	return Sequence{base: base, count: count}
}

// FromRepeated parses a non-empty run of a single ASCII letter,
// case-insensitively. Returns false for anything else.
func FromRepeated(s string) (Sequence, bool) {
	s = strings.ToLower(s)
	if s == "" {
		return Sequence{}, false
	}
	base := s[0]
	if base < 'a' || base > 'z' {
		return Sequence{}, false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != base {
			return Sequence{}, false
		}
	}
	return NewSequence(base, len(s)), true
}

// Base returns the base letter.
func (s Sequence) Base() byte { return s.base }

// Count returns the repetition count.
func (s Sequence) Count() int { return s.count }

// String returns the canonical form: the base repeated count times.
func (s Sequence) String() string {
	return strings.Repeat(string(s.base), s.count)
}

// MatchesInput reports whether this sequence is a prefix of the
// normalized input.
func (s Sequence) MatchesInput(input string) bool {
	return strings.HasPrefix(s.String(), NormalizeInput(input))
}

// EqualsInput reports whether this sequence exactly equals the
// normalized input.
func (s Sequence) EqualsInput(input string) bool {
	return s.String() == NormalizeInput(input)
}

// NormalizeInput converts input to canonical hint form. Two patterns are
// accepted: repeated letters ("g", "gg") pass through, and a trailing
// digit run on a single-letter run expands ("g2" => "gg", "f10" => ten
// f's). Comparison is case-insensitive; digit magnitude is capped to
// bound expansion.
func NormalizeInput(input string) string {
	input = strings.ToLower(input)
	if len(input) < 2 {
		return input
	}

	runes := []rune(input)
	if !unicode.IsDigit(runes[len(runes)-1]) {
		return input
	}

	// Locate the start of the trailing digit run
	letterEnd := len(runes) - 1
	for letterEnd > 0 && unicode.IsDigit(runes[letterEnd-1]) {
		letterEnd--
	}
	if letterEnd == 0 {
		return input
	}

	letters := runes[:letterEnd]
	num := 0
	for _, r := range runes[letterEnd:] {
		num = num*10 + int(r-'0')
		if num > maxRepeat {
			return input
		}
	}
	if num == 0 {
		return input
	}

	base := letters[0]
	for _, r := range letters {
		if r != base {
			return input
		}
	}

	return strings.Repeat(string(base), num)
}
