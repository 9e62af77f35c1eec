package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gowebpki/jcs"
	"github.com/rs/zerolog"

	"github.com/iho/tellerledger/internal/infrastructure/metrics"
	"github.com/iho/tellerledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	maxIdempotentBody = 1 << 20
)

const (
	stateProcessing = "processing"
	stateDone       = "done"
)

// idempotencyRecord is the value kept under an idempotency key.
type idempotencyRecord struct {
	State       string `json:"state"`
	Fingerprint string `json:"fingerprint"`
	Status      int    `json:"status,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// IdempotencyMiddleware handles request idempotency using Redis.
type IdempotencyMiddleware struct {
	store   usecase.IdempotencyStore
	metrics *metrics.Metrics
	logger  zerolog.Logger
	ttl     time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. A zero ttl
// falls back to usecase.IdempotencyKeyTTL; m may be nil.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration, m *metrics.Metrics, logger zerolog.Logger) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, metrics: m, logger: logger, ttl: ttl}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only apply to mutating requests
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIdempotentBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large", "payload_too_large")
				return
			}
			writeJSONError(w, http.StatusBadRequest, "failed to read request body", "invalid_request")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		fingerprint := requestFingerprint(r, body)
		pending, _ := json.Marshal(idempotencyRecord{State: stateProcessing, Fingerprint: fingerprint})

		exists, stored, err := m.store.CheckAndSet(r.Context(), key, pending, m.ttl)
		if err != nil {
			m.storeFailure(err, key, "idempotency check failed")
			writeJSONError(w, http.StatusInternalServerError, "idempotency check failed", "unavailable")
			return
		}

		if exists {
			m.resolveExisting(w, stored, fingerprint)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// Server errors release the key so the client can retry.
		if recorder.statusCode >= http.StatusInternalServerError {
			if err := m.store.Delete(r.Context(), key); err != nil {
				m.storeFailure(err, key, "failed to release idempotency key")
			}
			return
		}

		done, _ := json.Marshal(idempotencyRecord{
			State:       stateDone,
			Fingerprint: fingerprint,
			Status:      recorder.statusCode,
			Body:        recorder.body.Bytes(),
		})
		if err := m.store.Update(r.Context(), key, done, m.ttl); err != nil {
			m.storeFailure(err, key, "failed to store idempotent response")
		}
	})
}

func (m *IdempotencyMiddleware) resolveExisting(w http.ResponseWriter, stored []byte, fingerprint string) {
	var rec idempotencyRecord
	if err := json.Unmarshal(stored, &rec); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "corrupt idempotency record", "internal_error")
		return
	}

	switch {
	case rec.Fingerprint != fingerprint:
		writeJSONError(w, http.StatusUnprocessableEntity, "idempotency key reused with a different request", "idempotency_mismatch")
	case rec.State != stateDone:
		writeJSONError(w, http.StatusConflict, "request with this idempotency key is still processing", "request_in_progress")
	default:
		if m.metrics != nil {
			m.metrics.IdempotentReplays.Inc()
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(IdempotencyReplayHeader, "true")
		w.WriteHeader(rec.Status)
		w.Write(rec.Body)
	}
}

func (m *IdempotencyMiddleware) storeFailure(err error, key, msg string) {
	if m.metrics != nil {
		m.metrics.IdempotencyErrors.Inc()
	}
	m.logger.Warn().Err(err).Str("idempotency_key", key).Msg(msg)
}

// requestFingerprint hashes the method, path and RFC 8785 canonical form
// of the body. Bodies that are not JSON are hashed as sent.
func requestFingerprint(r *http.Request, body []byte) string {
	canonical := body
	if len(bytes.TrimSpace(body)) > 0 {
		if c, err := jcs.Transform(body); err == nil {
			canonical = c
		}
	}

	h := sha256.New()
	h.Write([]byte(r.Method + " " + r.URL.Path + "\n"))
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil))
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	body        *bytes.Buffer
	wroteHeader bool
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.wroteHeader {
		r.statusCode = statusCode
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(statusCode)
}
