package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// SlotCache memoizes slot-listing responses for a short window. Slot output
// is a pure function of stored rules and bookings, so a small TTL only
// delays visibility of very recent writes, which the booking validator
// re-checks anyway.
type SlotCache struct {
	store *cache.Cache
}

type cachedResponse struct {
	status int
	body   []byte
}

func NewSlotCache(ttl time.Duration) *SlotCache {
	return &SlotCache{
		store: cache.New(ttl, 2*ttl),
	}
}

type bufferingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bufferingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (sc *SlotCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.String()
		if v, found := sc.store.Get(key); found {
			resp := v.(cachedResponse)
			c.Data(resp.status, "application/json; charset=utf-8", resp.body)
			c.Abort()
			return
		}

		w := &bufferingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		// Only successful listings are worth keeping.
		if c.Writer.Status() == http.StatusOK {
			sc.store.SetDefault(key, cachedResponse{
				status: c.Writer.Status(),
				body:   w.body.Bytes(),
			})
		}
	}
}
