// pkg/loader/navalues.go
package loader

// extraNAValues is the fixed parse-time vocabulary of cell values
// treated as missing while reading a file, before any type inference.
// It is broader than the cleaner's suspicious-keyword vocabulary: bare
// punctuation runs are consumed here, while creatively wrapped
// placeholders ("??missing") are left for the cleaner.
var extraNAValues = []string{
	"?",
	"??",
	"???",
	"????",
	"?????",
	"-",
	"--",
	"---",
	".",
	"..",
	"...",
	"*",
	"**",
	"***",
	"missing",
	"lost",
	"unknown",
	"unavailable",
	"not available",
	"not applicable",
	"undefined",
	"blank",
	"empty",
	"nil",
	"none",
	"n/a",
	"n.a.",
	"na",
	"n.a",
	"no data",
	"no value",
	"tbd",
	"tba",
	// Conventional spellings recognized by most CSV tooling
	"NA",
	"N/A",
	"NaN",
	"nan",
	"NULL",
	"Null",
	"null",
}

func naValueSet() map[string]struct{} {
	set := make(map[string]struct{}, len(extraNAValues))
	for _, v := range extraNAValues {
		set[v] = struct{}{}
	}
	return set
}
