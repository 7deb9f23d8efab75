package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nao1215/dreamgate/pkg/httpclient"
)

// TestRequestID はRequestIDミドルウェアを検証する。
func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("X-Request-IDが無い場合にUUIDが採番されること", func(t *testing.T) {
		t.Parallel()

		var fromGin, fromCtx string
		router := gin.New()
		router.Use(RequestID())
		router.GET("/health", func(c *gin.Context) {
			fromGin = GetRequestID(c)
			fromCtx = httpclient.RequestIDFrom(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		got := w.Header().Get(HeaderRequestID)
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("X-Request-ID = %q がUUIDではない: %v", got, err)
		}
		if fromGin != got {
			t.Errorf("GetRequestID() = %q, want %q", fromGin, got)
		}
		if fromCtx != got {
			t.Errorf("RequestIDFrom() = %q, want %q", fromCtx, got)
		}
	})

	t.Run("受信したX-Request-IDがそのまま引き継がれること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestID())
		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
		})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(HeaderRequestID, "client-generated-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(HeaderRequestID); got != "client-generated-id" {
			t.Errorf("X-Request-ID = %q, want %q", got, "client-generated-id")
		}
	})

	t.Run("長すぎるX-Request-IDは破棄され採番し直されること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestID())
		router.GET("/health", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		long := strings.Repeat("x", maxRequestIDLength+1)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(HeaderRequestID, long)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		got := w.Header().Get(HeaderRequestID)
		if got == long {
			t.Fatal("長すぎるIDがそのまま返された")
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("X-Request-ID = %q がUUIDではない: %v", got, err)
		}
	})

	t.Run("不正な文字を含むX-Request-IDは破棄され採番し直されること", func(t *testing.T) {
		t.Parallel()

		var forwarded string
		router := gin.New()
		router.Use(RequestID())
		router.GET("/health", func(c *gin.Context) {
			forwarded = httpclient.RequestIDFrom(c.Request.Context())
			c.Status(http.StatusOK)
		})

		for _, bad := range []string{"id with space", "id\tinjected", "<script>", "a/b", "req;drop", "日本語ID", "id\"quoted"} {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(HeaderRequestID, bad)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			if got == bad {
				t.Errorf("不正なID %q がそのまま返された", bad)
				continue
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("%q: X-Request-ID = %q がUUIDではない: %v", bad, got, err)
			}
			if forwarded != got {
				t.Errorf("%q: 上流に伝播するID = %q, want %q", bad, forwarded, got)
			}
		}
	})

	t.Run("UUIDや英数字と記号._-のみのX-Request-IDは引き継がれること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestID())
		router.GET("/health", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		for _, good := range []string{"3f2b8c1e-9d4a-4e6f-8a7b-1c2d3e4f5a6b", "trace_01.abc-XYZ", "a"} {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(HeaderRequestID, good)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if got := w.Header().Get(HeaderRequestID); got != good {
				t.Errorf("X-Request-ID = %q, want %q", got, good)
			}
		}
	})

	t.Run("リクエストごとに異なるIDが採番されること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestID())
		router.GET("/health", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		seen := make(map[string]struct{})
		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			seen[w.Header().Get(HeaderRequestID)] = struct{}{}
		}
		if len(seen) != 5 {
			t.Errorf("ユニークなID数 = %d, want 5", len(seen))
		}
	})
}

// TestGetRequestID はGetRequestID関数を検証する。
func TestGetRequestID(t *testing.T) {
	t.Parallel()

	t.Run("ミドルウェア未適用の場合は空文字列が返ること", func(t *testing.T) {
		t.Parallel()

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if got := GetRequestID(c); got != "" {
			t.Errorf("GetRequestID() = %q, want empty string", got)
		}
	})

	t.Run("文字列以外の値が格納されている場合は空文字列が返ること", func(t *testing.T) {
		t.Parallel()

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(contextKeyRequestID, 12345)
		if got := GetRequestID(c); got != "" {
			t.Errorf("GetRequestID() = %q, want empty string", got)
		}
	})
}
