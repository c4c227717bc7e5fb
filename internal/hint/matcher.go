package hint

// MatchKind discriminates MatchResult variants.
type MatchKind int

const (
	// MatchNone means no hint matches the input.
	MatchNone MatchKind = iota
	// MatchPartial means multiple hints could match; more input needed.
	MatchPartial
	// MatchExact means exactly one hint matches.
	MatchExact
)

// MatchResult is the outcome of matching input against hints.
type MatchResult struct {
	Kind MatchKind
	// Indices of candidate hints for MatchPartial
	Indices []int
	// Index and WindowID of the matched hint for MatchExact
	Index    int
	WindowID string
}

// IsExact reports whether this is an exact match.
func (r MatchResult) IsExact() bool { return r.Kind == MatchExact }

// IsNone reports whether nothing matched.
func (r MatchResult) IsNone() bool { return r.Kind == MatchNone }

// Matcher resolves user input against assigned hints.
type Matcher struct {
	hints []WindowHint
}

// NewMatcher creates a matcher over the given hints.
func NewMatcher(hints []WindowHint) Matcher {
	return Matcher{hints: hints}
}

// MatchInput matches input against the hints.
//
// Empty input is a partial match over every hint. Otherwise all hints
// whose canonical string has the normalized input as a prefix are
// collected: zero is no match, one is exact, and among several an exact
// string equality wins immediately. The equality rule is what lets "g"
// select the "g" window even though "gg" also matches as a prefix.
func (m Matcher) MatchInput(input string) MatchResult {
	if input == "" {
		indices := make([]int, len(m.hints))
		for i, h := range m.hints {
			indices[i] = h.Index
		}
		return MatchResult{Kind: MatchPartial, Indices: indices}
	}

	var matches []WindowHint
	for _, h := range m.hints {
		if h.Hint.MatchesInput(input) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return MatchResult{Kind: MatchNone}
	case 1:
		return MatchResult{Kind: MatchExact, Index: matches[0].Index, WindowID: matches[0].WindowID}
	default:
		for _, h := range matches {
			if h.Hint.EqualsInput(input) {
				return MatchResult{Kind: MatchExact, Index: h.Index, WindowID: h.WindowID}
			}
		}
		indices := make([]int, len(matches))
		for i, h := range matches {
			indices[i] = h.Index
		}
		return MatchResult{Kind: MatchPartial, Indices: indices}
	}
}

// FilterHints returns the hints visible for the given input, for display
// only.
func (m Matcher) FilterHints(input string) []WindowHint {
	if input == "" {
		return m.hints
	}
	var filtered []WindowHint
	for _, h := range m.hints {
		if h.Hint.MatchesInput(input) {
			filtered = append(filtered, h)
		}
	}
	return filtered
}
