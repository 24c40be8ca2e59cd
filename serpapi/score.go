package serpapi

import (
	"strconv"
	"strings"

	"github.com/Kurehiro/gpt-oss"
)

const (
	// defaultPosition is assumed when the provider omits a rank.
	defaultPosition = 10

	// newsBonus is added to news results after the organic score clamp.
	newsBonus = 0.1
)

// reliableDomains earn a flat trust bonus when present in a result URL.
var reliableDomains = []string{"wikipedia.org", "gov.jp", "go.jp", "edu", "ac.jp"}

// Relevance computes the heuristic relevance score of a result for a query:
// query-word overlap with the title (0.3 per word) and content (0.2 per
// word), a 0.2 trust bonus for reliable domains, and a positional bonus of
// 0.05 per rank above 10. The total is clamped to 1.0.
func Relevance(result gptoss.SearchResult, query string) float64 {
	score := 0.0
	queryWords := wordSet(query)

	score += 0.3 * float64(intersection(queryWords, wordSet(result.Title)))
	score += 0.2 * float64(intersection(queryWords, wordSet(result.Content)))

	lowerURL := strings.ToLower(result.URL)
	for _, domain := range reliableDomains {
		if strings.Contains(lowerURL, domain) {
			score += 0.2
			break
		}
	}

	position := defaultPosition
	if p, err := strconv.Atoi(result.Meta["position"]); err == nil {
		position = p
	}
	if bonus := float64(10-position) * 0.05; bonus > 0 {
		score += bonus
	}

	return min(score, 1.0)
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func intersection(a, b map[string]struct{}) int {
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}
