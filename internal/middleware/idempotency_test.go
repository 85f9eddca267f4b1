package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theesh-25755/HR-mobile-app/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/leaves:dana@example.com:key-1"
	const lockKey = cacheKey + ":lock"

	t.Run("success first request acquires lock and passes through", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		handled := false
		r := gin.New()
		r.POST("/leaves", func(c *gin.Context) {
			c.Set("email", "dana@example.com")
			c.Next()
		}, middleware.Idempotency(rdb), func(c *gin.Context) {
			handled = true
			assert.Equal(t, cacheKey, c.GetString("idempotency_cache_key"))
			assert.Equal(t, lockKey, c.GetString("idempotency_lock_key"))
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.True(t, handled)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success cached response replayed with original status and body", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		rdb, mock := redismock.NewClientMock()
		cached, err := json.Marshal(middleware.CachedResponse{
			Status: http.StatusCreated,
			Body:   json.RawMessage(`{"ok":true,"data":{"id":"abc"}}`),
		})
		assert.NoError(t, err)
		mock.ExpectGet(cacheKey).SetVal(string(cached))

		handled := false
		r := gin.New()
		r.POST("/leaves", func(c *gin.Context) {
			c.Set("email", "dana@example.com")
			c.Next()
		}, middleware.Idempotency(rdb), func(c *gin.Context) {
			handled = true
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.False(t, handled, "handler must not run on replay")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"ok":true,"data":{"id":"abc"}}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative concurrent duplicate rejected", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		r := gin.New()
		r.POST("/leaves", func(c *gin.Context) {
			c.Set("email", "dana@example.com")
			c.Next()
		}, middleware.Idempotency(rdb), func(c *gin.Context) {
			t.Fatal("handler must not run while a duplicate is in flight")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success no key skips redis entirely", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		rdb, mock := redismock.NewClientMock()

		handled := false
		r := gin.New()
		r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
			handled = true
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		r.ServeHTTP(w, req)

		assert.True(t, handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
