package summarize

// AssessQuality 按内容丰富度给文章打质量档。
// 计分：标题+描述总长 >500 记 2 分（>200 记 1 分）；标题 >10 加 1 分；
// 描述 >50 加 1 分；有配图加 1 分。总分 >=4 为 high，>=2 为 medium，否则 low。
func AssessQuality(title, description, imageURL string) string {
	score := 0

	combined := len(title + " " + description)
	if combined > 500 {
		score += 2
	} else if combined > 200 {
		score++
	}

	if len(title) > 10 {
		score++
	}
	if len(description) > 50 {
		score++
	}
	if imageURL != "" {
		score++
	}

	switch {
	case score >= 4:
		return "high"
	case score >= 2:
		return "medium"
	default:
		return "low"
	}
}
