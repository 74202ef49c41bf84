package processor

import (
	"testing"
	"time"

	"github.com/LJTian/NewsCurate/internal/source"
)

func TestNormalizeFallbackChains(t *testing.T) {
	n := NewNormalizer()
	fixed := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	a := n.Normalize(source.RawItem{
		Content:    "content as description",
		URLToImage: "https://img.example.com/a.png",
	})

	if a.Title != "No title" {
		t.Fatalf("Title = %q, want fallback", a.Title)
	}
	if a.Description != "content as description" {
		t.Fatalf("Description should fall back to content: %q", a.Description)
	}
	if a.URL != "#" {
		t.Fatalf("URL = %q, want %q", a.URL, "#")
	}
	if a.ImageURL != "https://img.example.com/a.png" {
		t.Fatalf("ImageURL should fall back to urlToImage: %q", a.ImageURL)
	}
	if !a.PublishedAt.Equal(fixed) {
		t.Fatalf("PublishedAt should default to normalization time: %s", a.PublishedAt)
	}
	if a.Source != "Unknown" {
		t.Fatalf("Source = %q, want Unknown", a.Source)
	}
	if a.ID == "" {
		t.Fatalf("ID should be assigned at normalization")
	}
}

func TestNormalizeImageFieldPriority(t *testing.T) {
	n := NewNormalizer()

	a := n.Normalize(source.RawItem{
		Title:      "t",
		ImageURL:   "first",
		URLToImage: "second",
		Image:      "third",
	})
	if a.ImageURL != "first" {
		t.Fatalf("ImageURL = %q, want first field in the chain", a.ImageURL)
	}

	a = n.Normalize(source.RawItem{Title: "t", Image: "third"})
	if a.ImageURL != "third" {
		t.Fatalf("ImageURL = %q, want last-chance field", a.ImageURL)
	}
}

func TestNormalizeAssignsUniqueIDs(t *testing.T) {
	n := NewNormalizer()
	a := n.Normalize(source.RawItem{Title: "same"})
	b := n.Normalize(source.RawItem{Title: "same"})
	if a.ID == b.ID {
		t.Fatalf("IDs should be unique per article: %q", a.ID)
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	cases := []struct {
		title, desc, want string
	}{
		{"Top SEO tricks", "", "SEO"},
		{"Instagram growth", "", "Social Media"},
		{"Why your blog matters", "", "Content Marketing"},
		{"Newsletter tips", "", "Email Marketing"},
		{"Big data insights", "", "Analytics"},
		{"Machine learning news", "", "AI"},
		{"Nothing relevant here", "", "General"},
		// "search engine" 在 "data" 之前命中：规则按序匹配
		{"Search engine data report", "", "SEO"},
	}

	for _, c := range cases {
		if got := Categorize(c.title, c.desc); got != c.want {
			t.Fatalf("Categorize(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	if got := AnalyzeSentiment("Great success and growth", ""); got != "positive" {
		t.Fatalf("sentiment = %q, want positive", got)
	}
	if got := AnalyzeSentiment("A bad problem and worst decline", ""); got != "negative" {
		t.Fatalf("sentiment = %q, want negative", got)
	}
	// 持平（含全零）记中性
	if got := AnalyzeSentiment("success and fail", ""); got != "neutral" {
		t.Fatalf("sentiment = %q, want neutral", got)
	}
	if got := AnalyzeSentiment("plain text", ""); got != "neutral" {
		t.Fatalf("sentiment = %q, want neutral", got)
	}
	// 必须整词匹配："winter" 不应命中 "win"
	if got := AnalyzeSentiment("winter is coming", ""); got != "neutral" {
		t.Fatalf("sentiment = %q, want neutral for partial word", got)
	}
}

func TestDupKeyNormalizesTitle(t *testing.T) {
	if DupKey("  Example ", "Foo") != DupKey("example", "Foo") {
		t.Fatalf("DupKey should lowercase and trim the title")
	}
	if DupKey("example", "Foo") == DupKey("example", "Bar") {
		t.Fatalf("DupKey should distinguish sources")
	}
}
