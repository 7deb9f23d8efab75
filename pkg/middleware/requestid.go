package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nao1215/dreamgate/pkg/httpclient"
)

// HeaderRequestID はリクエストIDを運ぶHTTPヘッダーキー。
const HeaderRequestID = "X-Request-ID"

// contextKeyRequestID はGinコンテキストにリクエストIDを格納するキー。
const contextKeyRequestID = "request_id"

// maxRequestIDLength は受け入れる外部リクエストIDの最大長。これを超える値は破棄して採番し直す。
const maxRequestIDLength = 128

// requestIDPattern は受け入れる外部リクエストIDの文字種。UUIDもこれに含まれる。
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// RequestID はリクエストごとに識別子を付与するGinミドルウェアを返す。
// 受信したX-Request-IDヘッダーが妥当な形式であればそれを使い、それ以外はUUIDを採番する。
// IDはレスポンスヘッダーに返し、上流呼び出しに伝播できるようリクエストのcontextにも設定する。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !validRequestID(id) {
			id = uuid.New().String()
		}

		c.Set(contextKeyRequestID, id)
		c.Request = c.Request.WithContext(httpclient.WithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// validRequestID は外部から受け取ったリクエストIDを上流に伝播してよいかを返す。
func validRequestID(id string) bool {
	return id != "" && len(id) <= maxRequestIDLength && requestIDPattern.MatchString(id)
}

// GetRequestID はGinコンテキストからリクエストIDを取得する。
// RequestIDミドルウェアが適用されていない場合は空文字列を返す。
func GetRequestID(c *gin.Context) string {
	id, _ := c.Get(contextKeyRequestID)
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}
