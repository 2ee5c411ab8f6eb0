// Package textutil holds text normalization, collation and the Brazilian
// display formats used across Controle Plus.
package textutil

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Locale is the display language of the application.
var Locale = language.BrazilianPortuguese

// searchPunctuation is replaced by spaces before comparing search terms.
const searchPunctuation = ".,/#!$%^&*;:{}=-_`~()|[]"

var (
	collatorMu sync.Mutex
	collator   = collate.New(Locale)
)

// Normalize lowercases s, strips diacritics, turns punctuation into spaces
// and collapses whitespace. Two strings match in search when one's
// normalized form contains the other's.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		stripped = strings.ToLower(s)
	}
	stripped = strings.Map(func(r rune) rune {
		if strings.ContainsRune(searchPunctuation, r) {
			return ' '
		}
		return r
	}, stripped)
	return strings.Join(strings.Fields(stripped), " ")
}

// Contains reports whether the normalized term occurs in the normalized s.
// An empty term matches everything.
func Contains(s, term string) bool {
	needle := Normalize(term)
	if needle == "" {
		return true
	}
	return strings.Contains(Normalize(s), needle)
}

// Compare orders two strings with Brazilian Portuguese collation.
func Compare(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// smallWords stay lowercase in titles unless they open the title.
var smallWords = map[string]bool{
	"a": true, "e": true, "o": true,
	"da": true, "de": true, "do": true, "das": true, "dos": true,
	"em": true, "um": true, "uma": true,
}

// TitleCase capitalizes every word except Portuguese articles and
// prepositions, which stay lowercase after the first word.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	lower := cases.Lower(Locale).String(s)
	words := strings.Split(lower, " ")
	for i, w := range words {
		if i > 0 && smallWords[w] {
			continue
		}
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

// CapitalizeFirst trims s and uppercases its first letter.
func CapitalizeFirst(s string) string {
	return upperFirst(strings.TrimSpace(s))
}

func upperFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
