package httpx

import "net/http"

// DefaultMaxBodyBytes is the request body limit used when none is configured.
const DefaultMaxBodyBytes int64 = 5 * 1024 * 1024

// BodyLimitMiddleware rejects requests whose declared Content-Length exceeds
// maxBytes with 413 before any handler runs. Bodies of unknown length are
// capped with http.MaxBytesReader so reading past the limit fails.
func BodyLimitMiddleware(maxBytes int64) Middleware {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				WriteDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}

			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
