// Package openai はOpenAI APIを使った画像生成と音声の文字起こしを提供する。
//
// github.com/sashabaranov/go-openai をラップし、provider.ImageGenerator と
// provider.Transcriber を実装する。
package openai
