package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/fightpicks/pkg/metrics"
)

// Metrics records request count, latency and error class per route pattern.
// Patterns rather than raw paths keep event ids out of the label set.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		endpoint := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			endpoint = rc.RoutePattern()
		}
		durationMs := float64(time.Since(start).Nanoseconds()) / 1e6
		code := strconv.Itoa(status)

		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, durationMs)

		if status >= http.StatusBadRequest {
			errorType := errorType(status)
			metrics.RecordErrorByEndpoint(endpoint, r.Method, errorType)
			metrics.RecordErrorByType(errorType, severity(status))
		}
	})
}

func errorType(status int) string {
	switch {
	case status == http.StatusBadGateway:
		return "upstream_error"
	case status >= http.StatusInternalServerError:
		return "server_error"
	case status == http.StatusConflict:
		return "conflict"
	case status == http.StatusNotFound:
		return "not_found"
	case status >= http.StatusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}

func severity(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "high"
	case status >= http.StatusBadRequest:
		return "medium"
	default:
		return "low"
	}
}
