// Package config は環境変数からアプリケーション設定を読み込む。
//
// カレントディレクトリの .env があれば先に読み込み、プロセスの環境変数を優先する。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// EnvDevelopment は開発環境を表すAPP_ENVの値。
const EnvDevelopment = "development"

// Config はアプリケーション全体の設定。
type Config struct {
	// GeminiAPIKey はテキスト生成に使うGemini APIのキー。
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	// OpenAIAPIKey は画像生成と文字起こしに使うOpenAI APIのキー。
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	// Port はサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"3001"`
	// Env は実行環境名（development, production等）。
	Env string `env:"APP_ENV" envDefault:"development"`

	// GeminiModel はテキスト生成に使うモデル名。
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-pro"`
	// GeminiBaseURL はGemini APIのベースURL。
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	// OpenAIBaseURL はOpenAI APIのベースURL。空の場合はライブラリの既定値を使う。
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	// ImageModel は画像生成に使うモデル名。
	ImageModel string `env:"OPENAI_IMAGE_MODEL" envDefault:"dall-e-3"`
	// TranscriptionModel は文字起こしに使うモデル名。
	TranscriptionModel string `env:"OPENAI_TRANSCRIPTION_MODEL" envDefault:"whisper-1"`

	// UpstreamTimeout は上流プロバイダー呼び出し1回あたりのタイムアウト。0はタイムアウトなし。
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"0s"`
	// AllowedOrigins はCORSで許可するオリジン。"*" はすべて許可する。
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	// MaxBodyBytes はリクエストボディの最大サイズ（バイト）。
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"104857600"`
}

// IsDevelopment は開発環境で動作しているかを返す。
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load は .env ファイルと環境変数から設定を読み込み、検証する。
// .env が存在しない場合はエラーにしない。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".envファイルの読み込みに失敗: %w", err)
	}
	return parse(env.Options{})
}

// parse は環境変数を構造体に展開し、検証する。
// テストではopts.Environmentで環境変数を差し替える。
func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate は設定値を検証し、問題をすべてまとめて返す。
func (c *Config) validate() error {
	var result *multierror.Error
	if c.GeminiAPIKey == "" {
		result = multierror.Append(result, errors.New("GEMINI_API_KEY is required"))
	}
	if c.OpenAIAPIKey == "" {
		result = multierror.Append(result, errors.New("OPENAI_API_KEY is required"))
	}
	if c.Port == "" {
		result = multierror.Append(result, errors.New("PORT must not be empty"))
	}
	if c.UpstreamTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("UPSTREAM_TIMEOUT must not be negative: %s", c.UpstreamTimeout))
	}
	if c.MaxBodyBytes <= 0 {
		result = multierror.Append(result, fmt.Errorf("MAX_BODY_BYTES must be positive: %d", c.MaxBodyBytes))
	}
	if len(c.AllowedOrigins) == 0 {
		result = multierror.Append(result, errors.New("CORS_ALLOWED_ORIGINS must not be empty"))
	}
	return result.ErrorOrNil()
}
