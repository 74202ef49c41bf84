package summarize

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// 短于这个长度的文本不值得摘要，外部模型也不会被调用
	minSummarizeLen = 50
	// 兜底截断的字符预算
	truncateLimit = 200
	noSummaryText = "No summary available for this article."
)

// SummarizeWithFallback 进程内抽取式摘要：关键词词频给句子打分，取前三句。
// 纯函数，相同输入永远得到相同输出；外部模型不可用时整条链路都靠它。
func SummarizeWithFallback(text string) string {
	if len(text) < minSummarizeLen {
		return noSummaryText
	}

	keywords := ExtractKeywords(text)
	sentences := splitSentences(text)

	// 只有一两句话时原样返回，抽取没有意义
	if len(sentences) <= 2 {
		return text
	}

	type scored struct {
		sentence string
		score    int
	}
	scoredSentences := make([]scored, 0, len(sentences))
	for _, s := range sentences {
		score := 0
		lower := strings.ToLower(s)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score += 2
			}
		}
		n := len([]rune(s))
		if n > 30 && n < 100 {
			score++
		}
		if n < 20 {
			score--
		}
		scoredSentences = append(scoredSentences, scored{sentence: s, score: score})
	}

	// 稳定排序：同分句子保持打分时的先后顺序
	sort.SliceStable(scoredSentences, func(i, j int) bool {
		return scoredSentences[i].score > scoredSentences[j].score
	})

	top := scoredSentences
	if len(top) > 3 {
		top = top[:3]
	}

	parts := make([]string, 0, len(top))
	for _, s := range top {
		parts = append(parts, s.sentence)
	}
	result := strings.TrimSpace(strings.Join(parts, " "))
	if result == "" {
		return hardTruncate(text)
	}
	return result + "..."
}

// ExtractKeywords 取词频最高的 5 个关键词：长度 >3、不含数字、非停用词。
// 同频词按首次出现顺序取，保证结果确定
func ExtractKeywords(text string) []string {
	tokens := tokenize(strings.ToLower(text))

	frequency := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		if len(tok) <= 3 || stopwords[tok] || containsDigit(tok) {
			continue
		}
		if _, seen := frequency[tok]; !seen {
			order = append(order, tok)
		}
		frequency[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return frequency[order[i]] > frequency[order[j]]
	})

	if len(order) > 5 {
		order = order[:5]
	}
	return order
}

// splitSentences 按句末标点切句，标点保留在句子里
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// 标点后是空白或文本结束才算句子边界，避免切碎小数或缩写后的连续标点
			if i == len(runes)-1 || unicode.IsSpace(runes[i+1]) {
				if s := strings.TrimSpace(b.String()); s != "" {
					sentences = append(sentences, s)
				}
				b.Reset()
			}
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hardTruncate(text string) string {
	runes := []rune(text)
	if len(runes) <= truncateLimit {
		return text
	}
	return string(runes[:truncateLimit]) + "..."
}

// stopwords 英文停用词表，关键词抽取时跳过
var stopwords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "all": true,
	"also": true, "and": true, "another": true, "any": true, "are": true,
	"because": true, "been": true, "before": true, "being": true, "below": true,
	"between": true, "both": true, "but": true, "came": true, "can": true,
	"cannot": true, "come": true, "could": true, "did": true, "does": true,
	"doing": true, "during": true, "each": true, "few": true, "for": true,
	"from": true, "further": true, "get": true, "got": true, "had": true,
	"has": true, "have": true, "her": true, "here": true, "him": true,
	"himself": true, "his": true, "how": true, "into": true, "its": true,
	"itself": true, "like": true, "make": true, "many": true, "might": true,
	"more": true, "most": true, "much": true, "must": true, "myself": true,
	"never": true, "now": true, "only": true, "other": true, "our": true,
	"ours": true, "ourselves": true, "out": true, "over": true, "own": true,
	"said": true, "same": true, "see": true, "should": true, "since": true,
	"some": true, "still": true, "such": true, "take": true, "than": true,
	"that": true, "the": true, "their": true, "theirs": true, "them": true,
	"themselves": true, "then": true, "there": true, "these": true, "they": true,
	"this": true, "those": true, "through": true, "too": true, "under": true,
	"until": true, "very": true, "was": true, "way": true, "well": true,
	"were": true, "what": true, "when": true, "where": true, "which": true,
	"while": true, "who": true, "whom": true, "with": true, "would": true,
	"you": true, "your": true, "yours": true, "yourself": true,
}
