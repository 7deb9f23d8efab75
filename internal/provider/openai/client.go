package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nao1215/dreamgate/internal/provider"
	openai "github.com/sashabaranov/go-openai"
)

// defaultAudioExtension は音声形式を判定できなかった場合に使うファイル拡張子。
// ブラウザのMediaRecorderの既定がwebmであることに合わせている。
const defaultAudioExtension = ".webm"

// Client はOpenAI APIのクライアント。
type Client struct {
	api *openai.Client
}

type settings struct {
	baseURL string
	timeout time.Duration
}

// Option はClientの設定を変更する関数。
type Option func(*settings)

// WithBaseURL はAPIのベースURL（例: "https://api.openai.com/v1"）を差し替える。
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		if baseURL != "" {
			s.baseURL = strings.TrimRight(baseURL, "/")
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
		return nil, errors.New("openai: api key cannot be empty")
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	cfg := openai.DefaultConfig(apiKey)
	if s.baseURL != "" {
		cfg.BaseURL = s.baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: s.timeout}

	return &Client{api: openai.NewClientWithConfig(cfg)}, nil
}

// GenerateImages は画像を生成し、URL形式で返された画像のURLを返す。
func (c *Client) GenerateImages(ctx context.Context, req provider.ImageRequest) ([]string, error) {
	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Model:          req.Model,
		Prompt:         req.Prompt,
		N:              req.N,
		Size:           string(req.Size),
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return nil, fmt.Errorf("openai create image (model=%s): %w", req.Model, err)
	}

	urls := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		urls = append(urls, d.URL)
	}
	return urls, nil
}

// Transcribe は音声データを書き起こす。
// アップロード時のファイル名の拡張子は音声データの内容から判定する。
func (c *Client) Transcribe(ctx context.Context, audio []byte, model string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    model,
		FilePath: audioFileName(audio),
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return "", fmt.Errorf("openai create transcription (model=%s): %w", model, err)
	}
	return resp.Text, nil
}

// audioFileName は音声データの形式に合った拡張子を持つファイル名を返す。
// 音声・動画として判定できない場合は既定の拡張子を使う。
func audioFileName(audio []byte) string {
	mtype := mimetype.Detect(audio)
	ext := mtype.Extension()
	if ext == "" || !(strings.HasPrefix(mtype.String(), "audio/") || strings.HasPrefix(mtype.String(), "video/")) {
		ext = defaultAudioExtension
	}
	return "audio" + ext
}
