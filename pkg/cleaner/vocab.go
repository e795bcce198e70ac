// pkg/cleaner/vocab.go
package cleaner

// placeholderChars are punctuation characters treated as decorative
// noise around or instead of a real value ("??", "---", "***")
const placeholderChars = "?!.*-_~#"

// suspiciousKeywords is the fixed vocabulary of lowercase phrases that
// denote "missing" when they make up the entire (normalized) cell.
// Matching is whole-string only; substring matches are deliberately not
// treated as suspicious.
var suspiciousKeywords = map[string]struct{}{
	"missing":        {},
	"lost":           {},
	"unknown":        {},
	"unavailable":    {},
	"undefined":      {},
	"not available":  {},
	"not applicable": {},
	"blank":          {},
	"empty":          {},
	"nil":            {},
	"none":           {},
	"null":           {},
	"n/a":            {},
	"na":             {},
	"n.a.":           {},
	"n.a":            {},
	"no data":        {},
	"no value":       {},
	"tbd":            {},
	"tba":            {},
}
