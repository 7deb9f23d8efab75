package gateway

import "encoding/json"

// analyzeDreamRequest は夢の分析リクエストのJSON構造。
type analyzeDreamRequest struct {
	// DreamText は分析対象の夢の内容。
	DreamText string `json:"dreamText" binding:"required"`
}

// analyzeDreamResponse は夢の分析レスポンスのJSON構造。
type analyzeDreamResponse struct {
	Success bool `json:"success"`
	// Analysis は構造化された分析結果、または {"rawAnalysis": "..."}。
	Analysis json.RawMessage `json:"analysis"`
}

// generateImageRequest は画像生成リクエストのJSON構造。
type generateImageRequest struct {
	// DreamDescription は画像にする夢の説明。
	DreamDescription string `json:"dreamDescription" binding:"required"`
}

// generateImageResponse は画像生成レスポンスのJSON構造。
type generateImageResponse struct {
	Success bool `json:"success"`
	// ImageURL は上流が返した画像のURL。期限はプロバイダー側が管理する。
	ImageURL string `json:"imageUrl"`
}

// dreamEntry はパターン認識に渡す夢1件。
type dreamEntry struct {
	// Text は夢の内容。
	Text string `json:"text"`
}

// recognizePatternsRequest はパターン認識リクエストのJSON構造。
type recognizePatternsRequest struct {
	// Dreams は時系列順の夢の一覧。空配列は許可する。
	Dreams []dreamEntry `json:"dreams" binding:"required"`
}

// recognizePatternsResponse はパターン認識レスポンスのJSON構造。
type recognizePatternsResponse struct {
	Success bool `json:"success"`
	// Patterns は構造化されたパターン分析、または {"rawPatterns": "..."}。
	Patterns json.RawMessage `json:"patterns"`
}

// transcribeRequest は文字起こしリクエストのJSON構造。
type transcribeRequest struct {
	// AudioData はbase64でエンコードされた音声データ。
	AudioData string `json:"audioData" binding:"required"`
}

// transcribeResponse は文字起こしレスポンスのJSON構造。
type transcribeResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

// healthResponse はヘルスチェックのJSON構造。
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// errorResponse はエラー時のJSON構造。
type errorResponse struct {
	Error string `json:"error"`
}
