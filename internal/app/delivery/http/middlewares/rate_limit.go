package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit caps requests per client IP over APP_MAX_TIME_REQUESTS_PER_SECONDS.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	window := time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, window)
}

// BodyLimit bounds request bodies. Multipart uploads get the document limit
// plus a megabyte for form overhead.
func (m *Middlewares) BodyLimit(next http.Handler) http.Handler {
	const megabyte = 1 << 20
	jsonLimit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) * megabyte
	uploadLimit := (m.InternalConfig.App.DocumentMaxUploadSizeInMB + 1) * megabyte

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := jsonLimit
		if isMultipart(r) {
			limit = uploadLimit
		}
		if limit > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
