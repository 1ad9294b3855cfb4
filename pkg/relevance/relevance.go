package relevance

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTitleField is the record field FilterRecords reads when none is given.
const DefaultTitleField = "title"

// Record is a loosely typed catalog row.
type Record = map[string]any

// Match is a scored item together with its position in the input.
type Match[T any] struct {
	Item  T
	Score int
	Index int
}

// Keywords splits query into unique lowercase keywords longer than one character.
// Order of first appearance is kept.
func Keywords(query string) []string {
	fields := strings.FieldsFunc(lower(query), isSeparator)
	if len(fields) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 1 || slices.Contains(keywords, f) {
			continue
		}
		keywords = append(keywords, f)
	}
	if len(keywords) == 0 {
		return nil
	}
	return keywords
}

// Score counts how many keywords occur in title, ignoring case.
// Keywords are expected in the lowercase form Keywords returns.
func Score(title string, keywords []string) int {
	if title == "" || len(keywords) == 0 {
		return 0
	}
	title = lower(title)
	score := 0
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			score++
		}
	}
	return score
}

// Rank scores items against query and returns only the matches with a
// positive score, best first. Equal scores keep input order.
// It returns nil when the query has no keywords or nothing matches.
func Rank[T any](items []T, query string, title func(T) string) []Match[T] {
	keywords := Keywords(query)
	if len(keywords) == 0 {
		return nil
	}
	return rank(items, keywords, title)
}

// Filter returns the items that match query, best first.
//
// The input slice itself is returned when the query is blank, yields no
// keywords, or matches no item. Otherwise a new slice is returned and items
// are never modified.
func Filter[T any](items []T, query string, title func(T) string) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}
	keywords := Keywords(query)
	if len(keywords) == 0 {
		return items
	}

	matches := rank(items, keywords, title)
	if len(matches) == 0 {
		return items
	}

	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.Item
	}
	return out
}

// FilterRecords filters map records by the string value of titleField.
// An empty titleField means DefaultTitleField. Records without a string
// title never match.
func FilterRecords(items []Record, query, titleField string) []Record {
	if titleField == "" {
		titleField = DefaultTitleField
	}
	return Filter(items, query, func(r Record) string {
		s, _ := r[titleField].(string)
		return s
	})
}

func rank[T any](items []T, keywords []string, title func(T) string) []Match[T] {
	var matches []Match[T]
	for i, item := range items {
		if score := Score(title(item), keywords); score > 0 {
			matches = append(matches, Match[T]{Item: item, Score: score, Index: i})
		}
	}
	slices.SortStableFunc(matches, func(a, b Match[T]) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return matches
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == ';'
}

// lower builds a fresh Caser per call; Casers are stateful and not safe to share.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
