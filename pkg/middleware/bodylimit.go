package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit はリクエストボディをmaxBytesまでに制限するGinミドルウェアを返す。
// 上限を超えた読み取りはエラーになり、ハンドラー側のバインドが失敗する。
// maxBytesが0以下の場合は制限しない。
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
