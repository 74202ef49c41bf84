package summarize

import (
	"strings"
	"testing"
)

const longText = "Digital marketing teams keep changing their content strategy every quarter. " +
	"Search visibility depends on consistent publishing and careful keyword research. " +
	"Some agencies prefer paid channels over organic growth for faster results. " +
	"Short posts rarely work. " +
	"A balanced marketing strategy combines organic content with paid distribution channels."

func TestSummarizeShortTextReturnsNotice(t *testing.T) {
	got := SummarizeWithFallback("too short")
	if got != noSummaryText {
		t.Fatalf("short text should yield the fixed notice, got %q", got)
	}
}

func TestSummarizeTwoSentencesUnchanged(t *testing.T) {
	text := "This is the first sentence of the article body. This is the second one, also long enough."
	if got := SummarizeWithFallback(text); got != text {
		t.Fatalf("<=2 sentences should be returned unchanged, got %q", got)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	a := SummarizeWithFallback(longText)
	b := SummarizeWithFallback(longText)
	if a != b {
		t.Fatalf("fallback summarizer should be deterministic:\n%q\n%q", a, b)
	}
	if !strings.HasSuffix(a, "...") {
		t.Fatalf("extractive summary should end with ellipsis: %q", a)
	}
}

func TestSummarizeSelectsTopThreeSentences(t *testing.T) {
	got := SummarizeWithFallback(longText)

	// 五句话里取三句，"Short posts rarely work." 因过短被扣分出局
	if strings.Contains(got, "Short posts rarely work") {
		t.Fatalf("low-scoring short sentence should be dropped: %q", got)
	}
	count := 0
	for _, s := range splitSentences(strings.TrimSuffix(got, "...")) {
		if s != "" {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("summary should contain 3 sentences, got %d: %q", count, got)
	}
}

func TestExtractKeywordsFilters(t *testing.T) {
	text := "marketing marketing marketing strategy strategy abc123 abc123 the the the and channels content growth"
	keywords := ExtractKeywords(text)

	if len(keywords) > 5 {
		t.Fatalf("at most 5 keywords, got %d", len(keywords))
	}
	if keywords[0] != "marketing" {
		t.Fatalf("most frequent keyword first, got %v", keywords)
	}
	for _, kw := range keywords {
		if kw == "abc123" {
			t.Fatalf("tokens with digits should be filtered: %v", keywords)
		}
		if kw == "the" || kw == "and" {
			t.Fatalf("stopwords and short tokens should be filtered: %v", keywords)
		}
	}
}

func TestExtractKeywordsTiesKeepFirstAppearance(t *testing.T) {
	// 同频词按首次出现顺序排列
	keywords := ExtractKeywords("zebra apple zebra apple orange banana grape melon")
	if len(keywords) < 2 || keywords[0] != "zebra" || keywords[1] != "apple" {
		t.Fatalf("ties should keep first-appearance order, got %v", keywords)
	}
}

func TestSplitSentencesKeepsPunctuation(t *testing.T) {
	got := splitSentences("First one. Second one! Third one? Trailing without period")
	if len(got) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "First one." || got[2] != "Third one?" {
		t.Fatalf("punctuation should stay with the sentence: %v", got)
	}
	// 小数点不算句子边界
	got = splitSentences("Growth was 3.5 percent this year. Nice.")
	if len(got) != 2 {
		t.Fatalf("decimal point should not split, got %v", got)
	}
}

func TestHardTruncate(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := hardTruncate(long)
	if len([]rune(got)) != truncateLimit+3 {
		t.Fatalf("truncated length = %d, want %d plus ellipsis", len([]rune(got)), truncateLimit)
	}
	if hardTruncate("short") != "short" {
		t.Fatalf("under-limit text should pass through")
	}
}
