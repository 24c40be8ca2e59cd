package gptoss

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// lexicalTranslations maps common Japanese query terms to English
// equivalents. Applied in order; empty replacements drop filler particles.
var lexicalTranslations = []struct{ jp, en string }{
	{"最新", "latest"},
	{"現在", "current"},
	{"今日", "today"},
	{"について", ""},
	{"に関して", ""},
	{"とは", "what is"},
	{"どのように", "how to"},
	{"なぜ", "why"},
}

// siteModifiers restricts a query to domains appropriate for the search type.
var siteModifiers = map[SearchType]string{
	SearchTypeNews:      "site:news.google.com OR site:nhk.or.jp OR site:asahi.com",
	SearchTypeAcademic:  "site:scholar.google.com OR site:researchgate.net",
	SearchTypeOfficial:  "site:go.jp OR site:gov OR site:edu",
	SearchTypeTechnical: "site:github.com OR site:stackoverflow.com",
}

// recencyTerms mark a query as asking about current information.
var recencyTerms = []string{"最新", "現在", "latest", "current"}

// cleanRe matches everything except ASCII word characters, whitespace,
// hiragana, katakana and the CJK unified ideograph range.
var cleanRe = regexp.MustCompile(`[^\w\s\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}]`)

var collapseRe = regexp.MustCompile(`\s+`)

// CleanQuery strips punctuation from a query and collapses whitespace.
func CleanQuery(query string) string {
	cleaned := cleanRe.ReplaceAllString(query, " ")
	return strings.TrimSpace(collapseRe.ReplaceAllString(cleaned, " "))
}

// OptimizeQuery expands a raw query into a set of query variants: the cleaned
// base query, a naive lexical translation, an optional site restriction for
// the search type, an optional recency filter, and a negative filter
// excluding advertisement terms. Duplicates are removed; first occurrence
// order is preserved.
func OptimizeQuery(query string, typ SearchType) []string {
	base := CleanQuery(query)

	variants := []string{base}

	if translated := translateQuery(base); translated != base {
		variants = append(variants, translated)
	}

	if modifier, ok := siteModifiers[typ]; ok {
		variants = append(variants, base+" "+modifier)
	}

	lower := strings.ToLower(query)
	for _, term := range recencyTerms {
		if strings.Contains(lower, term) {
			variants = append(variants, fmt.Sprintf("%s after:%d", base, time.Now().Year()-1))
			break
		}
	}

	variants = append(variants, base+" -advertisement -spam")

	return dedupStrings(variants)
}

// translateQuery substitutes known Japanese terms with English equivalents.
func translateQuery(query string) string {
	translated := query
	for _, t := range lexicalTranslations {
		translated = strings.ReplaceAll(translated, t.jp, t.en)
	}
	return strings.TrimSpace(translated)
}

func dedupStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
