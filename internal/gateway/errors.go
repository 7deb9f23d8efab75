package gateway

import "fmt"

// 各エンドポイントがクライアントに返すエラーメッセージ。
// 上流の失敗の詳細はログにのみ出力し、レスポンスには含めない。
const (
	msgDreamTextRequired        = "Dream text is required"
	msgDreamDescriptionRequired = "Dream description is required"
	msgDreamsRequired           = "Dreams array is required"
	msgAudioDataRequired        = "Audio data is required"

	msgAnalyzeFailed            = "Failed to analyze dream"
	msgImageGenerationFailed    = "Failed to generate image"
	msgPatternRecognitionFailed = "Failed to recognize patterns"
	msgTranscriptionFailed      = "Failed to transcribe audio"

	msgInternalError = "Internal server error"
)

// 上流呼び出しの操作名。ログとUpstreamError.Opに使う。
const (
	opAnalyzeDream      = "analyze-dream"
	opGenerateImage     = "generate-image"
	opRecognizePatterns = "recognize-patterns"
	opTranscribe        = "transcribe"
)

// ValidationError は必須入力の欠落や形式不正を表す。HTTP 400に対応する。
type ValidationError struct {
	// Message はクライアントに返す短い説明。
	Message string
	// Err はバインド時に発生した元のエラー。
	Err error
}

// Error はエラーメッセージを返す。
func (e *ValidationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap は元のエラーを返す。
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UpstreamError は上流プロバイダーの呼び出し失敗を表す。HTTP 500に対応する。
type UpstreamError struct {
	// Op は失敗した操作名（analyze-dream等）。
	Op string
	// Message はクライアントに返す汎用メッセージ。
	Message string
	// Err は上流から返された元のエラー。
	Err error
}

// Error はエラーメッセージを返す。
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream call failed: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返す。
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
