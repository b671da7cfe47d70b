package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/KennethTannn98/stockflow-console/pkg/logger"
)

const idempotencyKeyHeader = "Idempotency-Key"

// storedResponse is one replayable mutation result.
type storedResponse struct {
	status    int
	body      []byte
	expiresAt time.Time
}

// IdempotencyStore remembers mutation responses by key so a retried
// request replays the first outcome instead of running twice.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]storedResponse
	ttl     time.Duration
	now     func() time.Time
}

// NewIdempotencyStore returns a store whose entries expire after ttl.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		entries: make(map[string]storedResponse),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *IdempotencyStore) get(key string) (storedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return storedResponse{}, false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return storedResponse{}, false
	}
	return entry, true
}

func (s *IdempotencyStore) put(key string, entry storedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.expiresAt = s.now().Add(s.ttl)
	s.entries[key] = entry
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

// Idempotency replays stored responses for repeated mutation keys. Reads
// and requests without a key pass through untouched; only 2xx outcomes are
// stored, so a failed mutation can be retried with the same key.
func Idempotency(store *IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || r.Method == http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			key := r.Header.Get(idempotencyKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if entry, ok := store.get(key); ok {
				if logg != nil {
					ctx := logg.WithField(r.Context(), "idempotency_key", key)
					logg.Info(ctx, "request.replayed")
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(entry.status)
				_, _ = w.Write(entry.body)
				return
			}

			rec := &captureWriter{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			if status >= http.StatusOK && status < http.StatusMultipleChoices {
				store.put(key, storedResponse{status: status, body: rec.body.Bytes()})
			}
		})
	}
}
