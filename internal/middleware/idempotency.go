package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/i18n"
	"github.com/guttosm/smartpack-service/internal/service"
	"github.com/guttosm/smartpack-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader carries the client's idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a stored response can be replayed.
	IdempotencyKeyTTL = 5 * time.Minute

	idempotencyCacheName     = "idempotency"
	idempotencyCacheCapacity = 5000
	idempotencyCacheShards   = 8
)

// cachedResponse is a stored 2xx response and the fingerprint of the request body that produced it.
type cachedResponse struct {
	Fingerprint string
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Body        []byte
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   cache.Cache[*cachedResponse]
	Enabled bool
}

// DefaultIdempotencyConfig returns an enabled config backed by a fresh sharded cache.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return NewIdempotencyConfig(IdempotencyKeyTTL)
}

// NewIdempotencyConfig returns an enabled config whose responses live for ttl.
func NewIdempotencyConfig(ttl time.Duration) IdempotencyConfig {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return IdempotencyConfig{
		Cache:   service.NewShardedCache[*cachedResponse](idempotencyCacheName, idempotencyCacheCapacity, ttl, idempotencyCacheShards),
		Enabled: true,
	}
}

// Idempotency makes POST, PUT and PATCH requests carrying an Idempotency-Key
// safe to retry. Keys are scoped to the caller, method and path.
//
//   - a repeat with the same body replays the first 2xx response
//   - a repeat with a different body is rejected with 422
//   - a repeat while the first is still running is rejected with 409
//
// Failed responses are not stored, so the client may retry them.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	var inFlight sync.Map

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || !mutating(c.Request.Method) {
			c.Next()
			return
		}

		slot := idempotencySlot(key, callerKey(c), c.Request)
		fingerprint := bodyFingerprint(c.Request)

		if answerStored(c, cfg.Cache, slot, fingerprint) {
			return
		}

		if _, busy := inFlight.LoadOrStore(slot, struct{}{}); busy {
			rejectIdempotent(c, http.StatusConflict, dto.ErrCodeIdempotencyKeyInUse, i18n.ErrKeyIdempotencyKeyInUse)
			return
		}
		defer inFlight.Delete(slot)

		// the first request may have stored its response and released the
		// slot between the lookup above and the claim
		if answerStored(c, cfg.Cache, slot, fingerprint) {
			return
		}

		tee := &teeWriter{ResponseWriter: c.Writer}
		c.Writer = tee
		c.Next()

		status := tee.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		cfg.Cache.Set(slot, &cachedResponse{
			Fingerprint: fingerprint,
			StatusCode:  status,
			ContentType: tee.Header().Get("Content-Type"),
			Headers:     replayableHeaders(tee.Header()),
			Body:        tee.body.Bytes(),
		})
	}
}

func mutating(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// answerStored replays or rejects from the stored response for slot and
// reports whether it answered.
func answerStored(c *gin.Context, store cache.Cache[*cachedResponse], slot, fingerprint string) bool {
	stored, ok := store.Get(slot)
	if !ok {
		return false
	}
	if stored.Fingerprint != fingerprint {
		rejectIdempotent(c, http.StatusUnprocessableEntity, dto.ErrCodeIdempotencyKeyReused, i18n.ErrKeyIdempotencyKeyReused)
		return true
	}
	replay(c, stored)
	return true
}

func replay(c *gin.Context, stored *cachedResponse) {
	for k, v := range stored.Headers {
		c.Header(k, v)
	}
	c.Header(IdempotencyReplayedHeader, "true")
	c.Data(stored.StatusCode, stored.ContentType, stored.Body)
	c.Abort()
}

func rejectIdempotent(c *gin.Context, status int, code, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(code, message).WithRequestID(GetRequestID(c)))
}

// replayableHeaders keeps the first value of every header except the ones
// gin sets again when the body is written.
func replayableHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) == 0 || k == "Content-Type" || k == "Content-Length" {
			continue
		}
		out[k] = v[0]
	}
	return out
}

// idempotencySlot hashes the client key with the caller, method and path.
func idempotencySlot(key, scope string, req *http.Request) string {
	h := sha256.New()
	for _, part := range []string{key, scope, req.Method, req.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// bodyFingerprint hashes the request body and puts it back for the handler.
func bodyFingerprint(req *http.Request) string {
	if req.Body == nil {
		return ""
	}
	raw, _ := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(raw))
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// teeWriter copies the response body for storage.
type teeWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
