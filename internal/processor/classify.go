package processor

import (
	"regexp"
	"strings"
)

// DefaultCategory 没有命中任何规则时的分类
const DefaultCategory = "General"

type categoryRule struct {
	Category string
	Keywords []string
}

// categoryRules 分类规则表，按序匹配、先命中先得。
// 调整分类只需要改这张表，匹配算法不用动。
var categoryRules = []categoryRule{
	{"SEO", []string{"seo", "search engine"}},
	{"Social Media", []string{"social media", "facebook", "instagram", "twitter"}},
	{"Content Marketing", []string{"content marketing", "blog"}},
	{"Email Marketing", []string{"email marketing", "newsletter"}},
	{"Analytics", []string{"analytics", "data"}},
	{"AI", []string{"ai", "artificial intelligence", "machine learning"}},
}

// Categorize 对标题+描述做小写子串匹配，返回第一个命中的分类
func Categorize(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}
	return DefaultCategory
}

var positiveWords = []string{"success", "growth", "improve", "win", "best", "great", "amazing", "innovative"}
var negativeWords = []string{"fail", "problem", "issue", "challenge", "bad", "worst", "decline"}

var (
	positiveRE []*regexp.Regexp
	negativeRE []*regexp.Regexp
)

func init() {
	for _, w := range positiveWords {
		positiveRE = append(positiveRE, regexp.MustCompile(`\b`+w+`\b`))
	}
	for _, w := range negativeWords {
		negativeRE = append(negativeRE, regexp.MustCompile(`\b`+w+`\b`))
	}
}

// AnalyzeSentiment 统计正负词的全词出现次数，多者为胜，持平（含全零）记中性
func AnalyzeSentiment(title, description string) string {
	text := strings.ToLower(title + " " + description)

	var positive, negative int
	for _, re := range positiveRE {
		positive += len(re.FindAllString(text, -1))
	}
	for _, re := range negativeRE {
		negative += len(re.FindAllString(text, -1))
	}

	switch {
	case positive > negative:
		return "positive"
	case negative > positive:
		return "negative"
	default:
		return "neutral"
	}
}
