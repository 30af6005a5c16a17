package middleware

import (
	"net/http"
	apperrors "roombook/pkg/errors"
	httputil "roombook/pkg/http"
	"roombook/pkg/logger"
)

// MaxRequestSize rejects bodies larger than limit bytes. Declared lengths are
// refused up front; chunked bodies are cut off by http.MaxBytesReader and
// surface as a decode error in the handler.
func MaxRequestSize(limit int64, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				log.Warn("Request body too large",
					"request_id", RequestIDFromContext(r.Context()),
					"content_length", r.ContentLength,
					"limit", limit,
					"path", r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.New(
					apperrors.CodeBadRequest,
					"Request body too large",
					http.StatusRequestEntityTooLarge,
				))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
