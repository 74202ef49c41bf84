package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/LJTian/NewsCurate/internal/processor"
)

const (
	hfDefaultBaseURL = "https://api-inference.huggingface.co"
	hfModel          = "facebook/bart-large-cnn"
	hfClientTimeout  = 30 * time.Second
	hfMaxRespBytes   = 256 * 1024
)

// Service 逐篇生成摘要与质量档。
// 配置了 HuggingFace Key 时优先调外部模型，失败或文本过短则退回进程内抽取；
// 外部调用共用一个限速闸门，兜底路径不限速。
type Service struct {
	hf   *hfClient
	gate *Gate
}

func New(apiKey string, delay time.Duration) *Service {
	s := &Service{gate: NewGate(delay)}
	if apiKey != "" {
		s.hf = newHFClient(apiKey)
	}
	return s
}

// SummarizeAll 顺序处理每篇文章，Summary / Quality 填充后返回。
// 保持串行是为了让限速闸门真正起作用，这里不做并发。
func (s *Service) SummarizeAll(ctx context.Context, articles []processor.Article) []processor.Article {
	out := make([]processor.Article, 0, len(articles))
	for _, a := range articles {
		out = append(out, s.summarizeOne(ctx, a))
	}
	return out
}

func (s *Service) summarizeOne(ctx context.Context, a processor.Article) processor.Article {
	text := a.Description
	if text == "" {
		text = a.Title
	}

	var summary string
	if s.hf != nil && len(text) >= minSummarizeLen {
		s.gate.Wait()
		out, err := s.hf.summarize(ctx, text)
		if err != nil {
			log.Printf("huggingface summarization failed for %q: %v", a.Title, err)
		} else {
			summary = out
		}
	}

	if summary == "" {
		summary = SummarizeWithFallback(text)
	}

	a.Summary = summary
	a.Quality = AssessQuality(a.Title, a.Description, a.ImageURL)
	return a
}

// hfClient HuggingFace 推理接口的最小客户端
type hfClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newHFClient(apiKey string) *hfClient {
	return &hfClient{
		apiKey:  apiKey,
		baseURL: hfDefaultBaseURL,
		client:  &http.Client{Timeout: hfClientTimeout},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

func (h *hfClient) summarize(ctx context.Context, text string) (string, error) {
	// 固定的生成参数：限定输出长度、关闭采样保证确定性
	body, _ := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MaxLength: 130,
			MinLength: 30,
			DoSample:  false,
		},
	})

	url := h.baseURL + "/models/" + hfModel
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("huggingface: status %d: %s", resp.StatusCode, string(b))
	}

	var out []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, hfMaxRespBytes)).Decode(&out); err != nil {
		return "", fmt.Errorf("huggingface: decode response: %w", err)
	}
	if len(out) == 0 || out[0].SummaryText == "" {
		return "", fmt.Errorf("huggingface: empty response")
	}
	return out[0].SummaryText, nil
}
