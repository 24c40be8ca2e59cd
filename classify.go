package gptoss

import "strings"

// searchTriggers mark a prompt as needing fresh web information. The list is
// multilingual: a locally hosted model is often prompted in Japanese.
var searchTriggers = []string{
	"最新", "現在", "今", "今日", "今年", "2024年", "2025年",
	"latest", "current", "recent", "today", "now", "update",
	"ニュース", "news", "動向", "trend", "状況", "situation",
}

// classifyRules map keywords to a search type. Rules are evaluated in order;
// the first rule with a matching keyword wins.
var classifyRules = []struct {
	typ      SearchType
	keywords []string
}{
	{SearchTypeNews, []string{"ニュース", "news", "事件", "事故"}},
	{SearchTypeAcademic, []string{"研究", "study", "論文", "学術"}},
	{SearchTypeOfficial, []string{"政府", "公式", "official", "法律"}},
	{SearchTypeTechnical, []string{"技術", "プログラム", "tech", "code"}},
}

// ShouldSearch reports whether a prompt calls for web search and, if so,
// which search type fits it best. The type defaults to general when no
// classification rule matches.
func ShouldSearch(prompt string) (needsSearch bool, typ SearchType) {
	lower := strings.ToLower(prompt)

	for _, trigger := range searchTriggers {
		if strings.Contains(lower, trigger) {
			needsSearch = true
			break
		}
	}

	typ = SearchTypeGeneral
	for _, rule := range classifyRules {
		if containsAny(lower, rule.keywords) {
			typ = rule.typ
			break
		}
	}

	return needsSearch, typ
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
