package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	ansiRegex       = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// SingleLine collapses every whitespace run, newlines included, into one space
// and trims the result.
func SingleLine(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// RemoveControlSequences strips ANSI escapes, NUL bytes and other control
// characters except tab, CR and LF.
func RemoveControlSequences(s string) string {
	s = ansiRegex.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// StripHTML removes tags and unescapes entities.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// LimitLength truncates s to at most n runes.
func LimitLength(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Limit returns LimitLength bound to n, for use in pipelines.
func Limit(n int) func(string) string {
	return func(s string) string { return LimitLength(s, n) }
}

// ToTitle title-cases words: "grand cherokee" becomes "Grand Cherokee".
// All-caps words of up to three letters stay as typed, so "BMW" and "RAM"
// keep their casing.
func ToTitle(s string) string {
	words := strings.Fields(s)
	caser := cases.Title(language.English)
	for i, w := range words {
		if len([]rune(w)) <= 3 && w == strings.ToUpper(w) {
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
