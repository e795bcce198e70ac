// pkg/cleaner/normalize.go
package cleaner

import (
	"regexp"
	"strings"
)

// TokenKind classifies the result of normalizing a cell
type TokenKind int

const (
	// KindNotACandidate means the cell can never be suspicious
	// (non-text, or empty after trimming)
	KindNotACandidate TokenKind = iota
	// KindPunctOnly means the cell consists entirely of placeholder
	// punctuation and whitespace
	KindPunctOnly
	// KindToken means the cell normalized to a real core string,
	// carried in Candidate.Text
	KindToken
)

// Candidate is the normalized form of a cell, ready for whole-string
// vocabulary matching
type Candidate struct {
	Kind TokenKind
	Text string
}

var (
	punctOnlyRE  = regexp.MustCompile(`^[?!.*\-_~#\s]+$`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// normalizeCandidate reduces a cell value to its matching form.
//
// Placeholder punctuation is stripped from the ends only, never from
// the interior, so wrapped placeholders like "??missing" or "lost??"
// recover their keyword while genuine text such as
// "customer_missing_reason" keeps its interior intact and cannot match
// the vocabulary.
func normalizeCandidate(value interface{}) Candidate {
	text, ok := value.(string)
	if !ok {
		return Candidate{Kind: KindNotACandidate}
	}

	stripped := strings.TrimSpace(text)
	if stripped == "" {
		// True empties are the loader's concern, not a candidate here
		return Candidate{Kind: KindNotACandidate}
	}

	lowered := strings.ToLower(stripped)
	if punctOnlyRE.MatchString(lowered) {
		return Candidate{Kind: KindPunctOnly}
	}

	core := strings.Trim(lowered, placeholderChars+" ")
	if core == "" {
		// Placeholder characters separated by interior whitespace
		return Candidate{Kind: KindPunctOnly}
	}

	return Candidate{
		Kind: KindToken,
		Text: whitespaceRE.ReplaceAllString(core, " "),
	}
}

// isSuspicious reports whether a normalized cell should be coerced to
// the missing marker: punctuation-only, or an exact vocabulary match
func isSuspicious(c Candidate) bool {
	switch c.Kind {
	case KindPunctOnly:
		return true
	case KindToken:
		_, found := suspiciousKeywords[c.Text]
		return found
	default:
		return false
	}
}
