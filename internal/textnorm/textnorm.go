// Package textnorm holds the pure text transforms shared by every filtering
// stage: time-marker stripping, identity-name folding and fingerprint folding.
//
// Character classes are Unicode-aware. A "word" rune is a letter, mark,
// decimal digit or connector punctuation; whitespace includes the Unicode
// space separators (U+3000 and friends), not only ASCII.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	wordClass  = `\p{L}\p{M}\p{Nd}\p{Pc}`
	spaceClass = `\s\p{Z}\x{85}`
)

var (
	// [00:12.34], [01:02], [1:02:03.5]
	reTimeMarker = regexp.MustCompile(`\[[\p{Nd}:.]+\]`)

	// Plain and full-width parentheses only; innermost group, no nesting.
	reParen   = regexp.MustCompile(`[(（][^()（）]*[)）]`)
	reNonWord = regexp.MustCompile(`[^` + wordClass + `]`)

	reBracket = regexp.MustCompile(`[` + spaceClass + `]*[(（\[【].+?[)）\]】]`)
	reFeat    = regexp.MustCompile(`(?i)[` + spaceClass + `]*(?:feat|ft|with)\.?[` + spaceClass + `]+.*$`)
	reSymbol  = regexp.MustCompile(`[^` + wordClass + spaceClass + `]`)
)

// StripTimeMarkers removes every inline [mm:ss.xx] style marker.
func StripTimeMarkers(text string) string {
	return reTimeMarker.ReplaceAllString(text, "")
}

// NormalizeIdentityName folds an artist or track name for metadata identity
// comparison: "Song (Live) feat. Someone!" becomes "song".
func NormalizeIdentityName(name string) string {
	n := lower(name)
	// brackets go before symbols so their contents are still delimited
	n = reBracket.ReplaceAllString(n, "")
	n = reFeat.ReplaceAllString(n, "")
	n = reSymbol.ReplaceAllString(n, "")
	return strings.Join(strings.Fields(n), " ")
}

// NormalizeForFingerprint reduces lyric text to its lowercase word runes with
// parenthetical asides removed. The result may be empty.
func NormalizeForFingerprint(text string) string {
	t := reParen.ReplaceAllString(text, "")
	t = reNonWord.ReplaceAllString(t, "")
	return lower(t)
}

// LineCount counts newline separated segments. An empty string has one line.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

func lower(s string) string {
	// Casers carry state and cannot be shared between goroutines.
	return cases.Lower(language.Und).String(s)
}
