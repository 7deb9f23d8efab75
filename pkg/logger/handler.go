package logger

import (
	"io"
	"log/slog"

	"github.com/fatih/color"
)

// Options はハンドラーの出力設定。
type Options struct {
	// Level は出力する最小ログレベル。
	Level slog.Leveler
	// AddSource はログに呼び出し元のファイルと行番号を含めるかどうか。
	AddSource bool
}

// DefaultOptions は標準的な出力設定（INFO以上、呼び出し元なし）。
var DefaultOptions = Options{
	Level: slog.LevelInfo,
}

// NewHandler はレベルを色付けするテキスト形式のslog.Handlerを返す。
func NewHandler(w io.Writer, opts Options) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) != 0 || a.Key != slog.LevelKey {
				return a
			}
			level, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			return slog.String(slog.LevelKey, colorize(level))
		},
	})
}

// colorize はログレベルに応じた色でレベル名を装飾する。
func colorize(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString(level.String())
	case level >= slog.LevelWarn:
		return color.YellowString(level.String())
	case level >= slog.LevelInfo:
		return color.GreenString(level.String())
	default:
		return color.CyanString(level.String())
	}
}

// Err はエラーをslogの属性に変換する。
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
