// Package provider は上流のAIプロバイダーが提供する機能のインターフェースを定義する。
//
// ゲートウェイはこれらのインターフェースにのみ依存し、起動時に一度だけ生成された
// 実装（gemini, openai）を受け取る。テストでは偽の実装に差し替える。
package provider

import "context"

// TextGenerator はプロンプトからテキストを生成する機能。
type TextGenerator interface {
	// GenerateText はプロンプトを送信し、生成されたテキスト全体を返す。
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageSize は生成する画像のサイズ（"幅x高さ"）。
type ImageSize string

// ImageSize1024x1024 は1024×1024ピクセルの正方形画像。
const ImageSize1024x1024 ImageSize = "1024x1024"

// ImageRequest は画像生成リクエスト。
type ImageRequest struct {
	// Model は使用する画像生成モデル名。
	Model string
	// Prompt は画像の内容を説明するプロンプト。
	Prompt string
	// Size は生成する画像のサイズ。
	Size ImageSize
	// N は生成する画像の枚数。
	N int
}

// ImageGenerator はプロンプトから画像を生成する機能。
type ImageGenerator interface {
	// GenerateImages は画像を生成し、プロバイダーが返した順に画像URLを返す。
	GenerateImages(ctx context.Context, req ImageRequest) ([]string, error)
}

// Transcriber は音声をテキストに書き起こす機能。
type Transcriber interface {
	// Transcribe は音声データをモデルで書き起こし、テキストを返す。
	Transcribe(ctx context.Context, audio []byte, model string) (string, error)
}
