// Dream Journal向けAIゲートウェイのエントリポイント。
// 夢の分析・画像化・パターン認識・文字起こしを上流のAIプロバイダーに中継する。
// APIキーはこのプロセスだけが保持し、ブラウザには渡さない。
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/dreamgate/internal/config"
	"github.com/nao1215/dreamgate/internal/gateway"
	"github.com/nao1215/dreamgate/internal/provider/gemini"
	"github.com/nao1215/dreamgate/internal/provider/openai"
	"github.com/nao1215/dreamgate/pkg/logger"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定の読み込みに失敗", logger.Err(err))
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.Options{
			Level:     slog.LevelDebug,
			AddSource: true,
		})))
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	textProvider, err := gemini.New(cfg.GeminiAPIKey,
		gemini.WithBaseURL(cfg.GeminiBaseURL),
		gemini.WithModel(cfg.GeminiModel),
		gemini.WithTimeout(cfg.UpstreamTimeout),
	)
	if err != nil {
		slog.Error("Geminiクライアントの初期化に失敗", logger.Err(err))
		os.Exit(1)
	}

	mediaProvider, err := openai.New(cfg.OpenAIAPIKey,
		openai.WithBaseURL(cfg.OpenAIBaseURL),
		openai.WithTimeout(cfg.UpstreamTimeout),
	)
	if err != nil {
		slog.Error("OpenAIクライアントの初期化に失敗", logger.Err(err))
		os.Exit(1)
	}

	server := gateway.NewServer(cfg, gateway.Providers{
		Text:   textProvider,
		Image:  mediaProvider,
		Speech: mediaProvider,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Dream Journalゲートウェイを起動します",
		"port", cfg.Port,
		"env", cfg.Env,
		"text_model", textProvider.Model(),
		"image_model", cfg.ImageModel,
		"transcription_model", cfg.TranscriptionModel,
	)
	if err := server.Run(ctx); err != nil {
		slog.Error("ゲートウェイの実行に失敗", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("ゲートウェイを停止しました")
}
