package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/dreamgate/internal/config"
	"github.com/nao1215/dreamgate/internal/provider"
	"github.com/nao1215/dreamgate/pkg/logger"
	"github.com/nao1215/dreamgate/pkg/middleware"
)

// shutdownTimeout はシャットダウン時に処理中のリクエストを待つ最大時間。
const shutdownTimeout = 10 * time.Second

// timestampLayout はヘルスチェックのタイムスタンプ形式（ミリ秒付きRFC 3339、UTC）。
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Providers はゲートウェイが呼び出す上流プロバイダーの機能。
type Providers struct {
	// Text は夢の分析とパターン認識に使うテキスト生成。
	Text provider.TextGenerator
	// Image は夢の画像化に使う画像生成。
	Image provider.ImageGenerator
	// Speech は音声入力の文字起こし。
	Speech provider.Transcriber
}

// Server はリクエストゲートウェイのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// providers は上流プロバイダー。
	providers Providers
	// imageModel は画像生成に使うモデル名。
	imageModel string
	// transcriptionModel は文字起こしに使うモデル名。
	transcriptionModel string
	// now は現在時刻を返す。テストで差し替える。
	now func() time.Time
}

// NewServer は新しいゲートウェイサーバーを生成する。
func NewServer(cfg *config.Config, providers Providers) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	s := &Server{
		router:             router,
		port:               cfg.Port,
		providers:          providers,
		imageModel:         cfg.ImageModel,
		transcriptionModel: cfg.TranscriptionModel,
		now:                time.Now,
	}
	s.setupRoutes()

	return s
}

// Handler はサーバーのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまで待つ。
// キャンセル後は処理中のリクエストの完了を待ってから終了する。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
	}
	return nil
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/analyze-dream", s.handleAnalyzeDream())
		api.POST("/generate-image", s.handleGenerateImage())
		api.POST("/recognize-patterns", s.handleRecognizePatterns())
		api.POST("/transcribe", s.handleTranscribe())
	}

	// ヘルスチェック
	s.router.GET("/health", s.handleHealth())
}

// handleAnalyzeDream は夢1件を分析するハンドラを返す。
func (s *Server) handleAnalyzeDream() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req analyzeDreamRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, &ValidationError{Message: msgDreamTextRequired, Err: err})
			return
		}

		text, err := s.providers.Text.GenerateText(c.Request.Context(), analysisPrompt(req.DreamText))
		if err != nil {
			s.respondError(c, &UpstreamError{Op: opAnalyzeDream, Message: msgAnalyzeFailed, Err: err})
			return
		}

		analysis := Interpret(text)
		s.logInterpretation(c, opAnalyzeDream, analysis)
		c.JSON(http.StatusOK, analyzeDreamResponse{
			Success:  true,
			Analysis: analysis.Payload("rawAnalysis"),
		})
	}
}

// handleGenerateImage は夢の説明から画像を1枚生成するハンドラを返す。
func (s *Server) handleGenerateImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generateImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, &ValidationError{Message: msgDreamDescriptionRequired, Err: err})
			return
		}

		urls, err := s.providers.Image.GenerateImages(c.Request.Context(), provider.ImageRequest{
			Model:  s.imageModel,
			Prompt: imagePrompt(req.DreamDescription),
			Size:   provider.ImageSize1024x1024,
			N:      1,
		})
		if err == nil && len(urls) == 0 {
			err = errors.New("provider returned no images")
		}
		if err != nil {
			s.respondError(c, &UpstreamError{Op: opGenerateImage, Message: msgImageGenerationFailed, Err: err})
			return
		}

		c.JSON(http.StatusOK, generateImageResponse{
			Success:  true,
			ImageURL: urls[0],
		})
	}
}

// handleRecognizePatterns は複数の夢に共通するパターンを分析するハンドラを返す。
func (s *Server) handleRecognizePatterns() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req recognizePatternsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, &ValidationError{Message: msgDreamsRequired, Err: err})
			return
		}

		text, err := s.providers.Text.GenerateText(c.Request.Context(), patternPrompt(req.Dreams))
		if err != nil {
			s.respondError(c, &UpstreamError{Op: opRecognizePatterns, Message: msgPatternRecognitionFailed, Err: err})
			return
		}

		patterns := Interpret(text)
		s.logInterpretation(c, opRecognizePatterns, patterns)
		c.JSON(http.StatusOK, recognizePatternsResponse{
			Success:  true,
			Patterns: patterns.Payload("rawPatterns"),
		})
	}
}

// handleTranscribe はbase64の音声データを文字起こしするハンドラを返す。
func (s *Server) handleTranscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transcribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, &ValidationError{Message: msgAudioDataRequired, Err: err})
			return
		}

		text, err := s.providers.Speech.Transcribe(c.Request.Context(), decodeAudio(req.AudioData), s.transcriptionModel)
		if err != nil {
			s.respondError(c, &UpstreamError{Op: opTranscribe, Message: msgTranscriptionFailed, Err: err})
			return
		}

		c.JSON(http.StatusOK, transcribeResponse{
			Success: true,
			Text:    text,
		})
	}
}

// handleHealth はヘルスチェックのハンドラを返す。常に成功する。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, healthResponse{
			Status:    "ok",
			Timestamp: s.now().UTC().Format(timestampLayout),
		})
	}
}

// respondError はエラーの種類に応じたステータスコードでエラーレスポンスを返す。
// 上流の失敗は詳細をログに出力し、クライアントには汎用メッセージのみ返す。
func (s *Server) respondError(c *gin.Context, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Message})
		return
	}

	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		slog.Error("上流プロバイダーの呼び出しに失敗しました",
			"op", upstreamErr.Op,
			"request_id", middleware.GetRequestID(c),
			logger.Err(upstreamErr.Err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: upstreamErr.Message})
		return
	}

	slog.Error("予期しないエラーが発生しました",
		"request_id", middleware.GetRequestID(c),
		logger.Err(err),
	)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternalError})
}

// logInterpretation は上流テキストの解釈結果を記録する。Rawの場合はINFOで出力する。
func (s *Server) logInterpretation(c *gin.Context, op string, i Interpretation) {
	level := slog.LevelDebug
	if i.Kind() == Raw {
		level = slog.LevelInfo
	}
	slog.Log(c.Request.Context(), level, "上流テキストを解釈しました",
		"op", op,
		"kind", i.Kind().String(),
		"request_id", middleware.GetRequestID(c),
	)
}
