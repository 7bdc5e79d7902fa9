// Package naming derives the output file stem for a proposal from the
// client request text.
package naming

import (
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// Fallback is the stem used when the request mentions no keyword.
	Fallback = "proposal"

	// MaxKeywords is the number of matches joined into the stem.
	MaxKeywords = 5

	// Extension is appended to the stem.
	Extension = ".pdf"
)

// Keywords is the closed set of domain words recognised in a request.
var Keywords = []string{
	"construire",
	"consultanta",
	"CRM",
	"facturare",
	"gestiune",
	"site",
	"ticket",
	"programari",
	"problema",
	"solicita",
}

// DeriveName returns the first MaxKeywords keyword occurrences in text,
// lower-cased and joined with "_". A keyword matches a whole word in any
// letter case; repeated occurrences count again. Returns Fallback when
// nothing matches.
func DeriveName(text string) string {
	var matches []string
	for _, word := range strings.FieldsFunc(text, isSeparator) {
		if !isKeyword(word) {
			continue
		}
		matches = append(matches, strings.ToLower(word))
		if len(matches) == MaxKeywords {
			break
		}
	}
	if len(matches) == 0 {
		return Fallback
	}
	return strings.Join(matches, "_")
}

// OutputPath returns the PDF path in dir for the given request text.
func OutputPath(dir, text string) string {
	return filepath.Join(dir, DeriveName(text)+Extension)
}

func isKeyword(word string) bool {
	for _, kw := range Keywords {
		if strings.EqualFold(word, kw) {
			return true
		}
	}
	return false
}

// isSeparator reports runes that end a word: anything other than a
// letter, digit, combining mark or underscore.
func isSeparator(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_')
}
