package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/dreamgate/pkg/httpclient"
)

const (
	// DefaultBaseURL はGemini APIのベースURL。
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel は既定のテキスト生成モデル。
	DefaultModel = "gemini-pro"

	apiKeyHeader = "x-goog-api-key"
)

// ErrEmptyResponse は候補が1件も返らなかったことを表す。
var ErrEmptyResponse = errors.New("gemini: no candidates returned")

// Client はGemini APIのテキスト生成クライアント。
type Client struct {
	http  *httpclient.Client
	model string
}

type settings struct {
	baseURL string
	model   string
	timeout time.Duration
}

// Option はClientの設定を変更する関数。
type Option func(*settings)

// WithBaseURL はAPIのベースURLを差し替える。
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		if baseURL != "" {
			s.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithModel は使用するモデルを設定する。
func WithModel(model string) Option {
	return func(s *settings) {
		if model != "" {
			s.model = model
		}
	}
}

// WithTimeout は1回の呼び出しのタイムアウトを設定する。0はタイムアウトなし。
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = d
	}
}

// New はAPIキーを使う新しいClientを生成する。
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key cannot be empty")
	}

	s := settings{baseURL: DefaultBaseURL, model: DefaultModel}
	for _, opt := range opts {
		opt(&s)
	}

	return &Client{
		http: httpclient.New(s.baseURL,
			httpclient.WithHeader(apiKeyHeader, apiKey),
			httpclient.WithTimeout(s.timeout),
		),
		model: s.model,
	}, nil
}

// Model は使用しているモデル名を返す。
func (c *Client) Model() string {
	return c.model
}

// GenerateText はプロンプトを1回送信し、最初の候補のテキストを返す。
// 候補のテキストが複数パートに分かれている場合は連結する。
// 候補が安全性などの理由で打ち切られた場合はErrEmptyResponseをラップしたエラーを返す。
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	var resp generateContentResponse
	if err := c.http.PostJSON(ctx, c.endpoint(), req, &resp); err != nil {
		return "", fmt.Errorf("gemini generateContent (model=%s): %w", c.model, err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", ErrEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}

	cand := resp.Candidates[0]
	if blockedFinishReasons[cand.FinishReason] {
		return "", fmt.Errorf("%w: candidate blocked: %s", ErrEmptyResponse, cand.FinishReason)
	}

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// endpoint はgenerateContentのパスを返す。
func (c *Client) endpoint() string {
	return "/v1beta/models/" + url.PathEscape(c.model) + ":generateContent"
}
