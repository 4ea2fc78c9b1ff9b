// Package nlp provides the deterministic text normalization shared by
// indexing and querying. Vectorizers are fit on normalized text, so queries
// must pass through the exact same pipeline at lookup time.
package nlp

import (
	"regexp"
	"strings"
)

var nonLetters = regexp.MustCompile(`[^\p{L}\s]+`)

// Normalize lowercases the text, strips non-alphabetic characters, tokenizes
// on whitespace, removes the stop-word set for the given language tag and
// rejoins the remaining tokens with single spaces. It is a pure function:
// the same input always normalizes identically. Empty input normalizes to
// the empty string.
func Normalize(text, language string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = nonLetters.ReplaceAllString(text, "")

	stop := stopWords(language)
	tokens := strings.Fields(text)
	kept := tokens[:0]
	for _, token := range tokens {
		if _, skip := stop[token]; skip {
			continue
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}

// Tokenize normalizes the text and splits it into tokens.
func Tokenize(text, language string) []string {
	normalized := Normalize(text, language)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
