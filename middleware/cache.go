package middleware

import (
	"bytes"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// PageCache is a TTL cache of rendered page responses. It is constructed
// once in main and injected into the route that wants it; nothing reaches
// it through globals.
//
// Within the TTL the cached bytes are served even if the underlying data
// changed — the staleness window is deliberate. Concurrent recomputation
// is allowed: two requests racing past an expired entry both render and
// the last writer wins, which is harmless since both render the same page.
type PageCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	status      int
	contentType string
	body        []byte
	storedAt    time.Time
}

func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

// Invalidate drops the cached response for key. Used by tests and
// administrative tooling; normal expiry is TTL-based.
func (p *PageCache) Invalidate(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, key)
}

func (p *PageCache) get(key string) *cacheEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.entries[key]
	if !ok || time.Since(entry.storedAt) >= p.ttl {
		return nil
	}
	return entry
}

func (p *PageCache) put(key string, entry *cacheEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[key] = entry
}

// Middleware serves the cached response when fresh, otherwise lets the
// handler run and stores what it wrote. Only successful responses are
// cached. The full request URI is the cache key, so paginated variants
// of the same path each get their own entry.
func (p *PageCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.URL.RequestURI()

		if entry := p.get(key); entry != nil {
			c.Data(entry.status, entry.contentType, entry.body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			p.put(key, &cacheEntry{
				status:      status,
				contentType: writer.Header().Get("Content-Type"),
				body:        writer.body.Bytes(),
				storedAt:    time.Now(),
			})
		}
	}
}

// captureWriter tees the response body so it can be replayed from cache.
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
