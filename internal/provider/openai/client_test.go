package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nao1215/dreamgate/internal/provider"
)

// wavHeader はWAVファイルとして判定される最小限の先頭バイト列。
var wavHeader = []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00")

// imageGenerationBody はスタブが受け取った画像生成リクエスト。
type imageGenerationBody struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

// newTestClient はスタブサーバーに接続するClientを生成する。
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := New("test-key", WithBaseURL(ts.URL+"/v1/"))
	if err != nil {
		t.Fatalf("New()でエラーが発生: %v", err)
	}
	return c
}

// TestNew はNew関数を検証する。
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("APIキーが空の場合にエラーが返ること", func(t *testing.T) {
		t.Parallel()

		if _, err := New(""); err == nil {
			t.Fatal("New()がエラーを返すべきだが、nilが返った")
		}
	})

	t.Run("ベースURL未指定でも生成できること", func(t *testing.T) {
		t.Parallel()

		c, err := New("key")
		if err != nil {
			t.Fatalf("New()でエラーが発生: %v", err)
		}
		if c.api == nil {
			t.Fatal("apiがnil")
		}
	})
}

// TestGenerateImages はGenerateImagesを検証する。
func TestGenerateImages(t *testing.T) {
	t.Parallel()

	t.Run("リクエストが正しく送信されURLが順序通り返ること", func(t *testing.T) {
		t.Parallel()

		var path, auth string
		var got imageGenerationBody
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			auth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("リクエストボディのパースに失敗: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"created":1700000000,"data":[{"url":"https://img.example/1.png"},{"url":"https://img.example/2.png"}]}`))
		})

		urls, err := c.GenerateImages(context.Background(), provider.ImageRequest{
			Model:  "dall-e-3",
			Prompt: "a floating castle",
			Size:   provider.ImageSize1024x1024,
			N:      1,
		})
		if err != nil {
			t.Fatalf("GenerateImages()でエラーが発生: %v", err)
		}

		if path != "/v1/images/generations" {
			t.Errorf("Path = %q, want %q", path, "/v1/images/generations")
		}
		if auth != "Bearer test-key" {
			t.Errorf("Authorization = %q, want %q", auth, "Bearer test-key")
		}
		if got.Model != "dall-e-3" || got.Prompt != "a floating castle" || got.N != 1 || got.Size != "1024x1024" {
			t.Errorf("リクエスト = %+v", got)
		}
		if got.ResponseFormat != "url" {
			t.Errorf("response_format = %q, want %q", got.ResponseFormat, "url")
		}
		if len(urls) != 2 || urls[0] != "https://img.example/1.png" || urls[1] != "https://img.example/2.png" {
			t.Errorf("urls = %v", urls)
		}
	})

	t.Run("上流のエラーがそのまま返ること", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"content policy violation","type":"invalid_request_error"}}`))
		})

		if _, err := c.GenerateImages(context.Background(), provider.ImageRequest{Prompt: "x", N: 1}); err == nil {
			t.Fatal("GenerateImages()がエラーを返すべきだが、nilが返った")
		}
	})
}

// TestTranscribe はTranscribeを検証する。
func TestTranscribe(t *testing.T) {
	t.Parallel()

	t.Run("音声バイト列とモデルがそのまま送信されテキストが返ること", func(t *testing.T) {
		t.Parallel()

		audio := append(append([]byte{}, wavHeader...), 0x01, 0x02, 0x03, 0xff)

		var path, model, filename string
		var sent []byte
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("マルチパートのパースに失敗: %v", err)
				return
			}
			model = r.FormValue("model")
			f, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("fileパートの取得に失敗: %v", err)
				return
			}
			defer f.Close()
			filename = header.Filename
			sent, _ = io.ReadAll(f)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"text":"I was flying over the ocean."}`))
		})

		text, err := c.Transcribe(context.Background(), audio, "whisper-1")
		if err != nil {
			t.Fatalf("Transcribe()でエラーが発生: %v", err)
		}

		if text != "I was flying over the ocean." {
			t.Errorf("text = %q", text)
		}
		if path != "/v1/audio/transcriptions" {
			t.Errorf("Path = %q, want %q", path, "/v1/audio/transcriptions")
		}
		if model != "whisper-1" {
			t.Errorf("model = %q, want %q", model, "whisper-1")
		}
		if filename != "audio.wav" {
			t.Errorf("filename = %q, want %q", filename, "audio.wav")
		}
		if !bytes.Equal(sent, audio) {
			t.Errorf("送信されたバイト列が一致しない: got %v, want %v", sent, audio)
		}
	})

	t.Run("上流のエラーがそのまま返ること", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
		})

		if _, err := c.Transcribe(context.Background(), []byte("audio"), "whisper-1"); err == nil {
			t.Fatal("Transcribe()がエラーを返すべきだが、nilが返った")
		}
	})
}

// TestAudioFileName はaudioFileNameを検証する。
func TestAudioFileName(t *testing.T) {
	t.Parallel()

	t.Run("WAVデータの場合に.wavになること", func(t *testing.T) {
		t.Parallel()

		if got := audioFileName(wavHeader); got != "audio.wav" {
			t.Errorf("audioFileName() = %q, want %q", got, "audio.wav")
		}
	})

	t.Run("判定できないデータの場合に既定の拡張子になること", func(t *testing.T) {
		t.Parallel()

		if got := audioFileName([]byte{0x00, 0x01, 0x02}); got != "audio.webm" {
			t.Errorf("audioFileName() = %q, want %q", got, "audio.webm")
		}
	})

	t.Run("音声以外の形式の場合に既定の拡張子になること", func(t *testing.T) {
		t.Parallel()

		if got := audioFileName([]byte("just some text")); got != "audio.webm" {
			t.Errorf("audioFileName() = %q, want %q", got, "audio.webm")
		}
	})

	t.Run("空データの場合に既定の拡張子になること", func(t *testing.T) {
		t.Parallel()

		if got := audioFileName(nil); got != "audio.webm" {
			t.Errorf("audioFileName() = %q, want %q", got, "audio.webm")
		}
	})
}
