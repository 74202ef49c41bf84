package summarize

import (
	"strings"
	"testing"
)

func TestAssessQualityBoundaries(t *testing.T) {
	title := strings.Repeat("t", 11)        // 标题分 +1
	description := strings.Repeat("d", 588) // 描述分 +1，合计长度 600 记 +2

	// 2(长度) + 1(标题) + 1(描述) + 1(配图) = 5 -> high
	if got := AssessQuality(title, description, "https://img.example.com/a.png"); got != "high" {
		t.Fatalf("quality = %q, want high", got)
	}

	// 去掉配图后 4 分，仍是 high
	if got := AssessQuality(title, description, ""); got != "high" {
		t.Fatalf("quality = %q, want high at exactly 4 points", got)
	}

	// 短描述：合计不足 200，只剩标题 1 分
	shortDesc := strings.Repeat("d", 40)
	if got := AssessQuality(title, shortDesc, ""); got != "low" {
		t.Fatalf("quality = %q, want low", got)
	}

	// 合计刚过 200：+1 长度 +1 标题 = 2 -> medium
	midDesc := strings.Repeat("d", 45)
	if got := AssessQuality(strings.Repeat("t", 160), midDesc, ""); got != "medium" {
		t.Fatalf("quality = %q, want medium", got)
	}

	if got := AssessQuality("short", "", ""); got != "low" {
		t.Fatalf("quality = %q, want low", got)
	}
}

func TestAssessQualityLengthEdges(t *testing.T) {
	// 合计刚好 500 不拿 2 分，只拿 1 分
	title := strings.Repeat("t", 11)
	desc := strings.Repeat("d", 488) // 11 + 1 + 488 = 500
	// 1(长度>200) + 1(标题) + 1(描述) = 3 -> medium
	if got := AssessQuality(title, desc, ""); got != "medium" {
		t.Fatalf("quality = %q, want medium at exactly 500 combined chars", got)
	}

	// 501 时拿 2 分，总分 4 -> high
	desc = strings.Repeat("d", 489)
	if got := AssessQuality(title, desc, ""); got != "high" {
		t.Fatalf("quality = %q, want high just above 500 combined chars", got)
	}
}
