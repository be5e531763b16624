package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"hotel_api/internal/adapters/observability"
)

// Timeout answers a 503 problem when a handler runs past d.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	body, _ := json.Marshal(problem{
		Type:   "about:blank",
		Title:  "Service Unavailable",
		Status: http.StatusServiceUnavailable,
		Detail: "request timed out",
	})
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, d, string(body)+"\n")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			th.ServeHTTP(&timeoutWriter{ResponseWriter: w}, r)
		})
	}
}

// timeoutWriter labels the bare 503 that http.TimeoutHandler writes on
// expiry; responses that already carry a Content-Type pass through.
type timeoutWriter struct{ http.ResponseWriter }

func (w *timeoutWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/problem+json")
	}
	w.ResponseWriter.WriteHeader(code)
}

// RateLimit applies one token bucket to the whole API.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if burst < 1 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Limit(rps), burst)
	retry := "1"
	if rps > 0 && rps < 1 {
		retry = strconv.Itoa(int(1/rps + 0.5))
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				w.Header().Set("Retry-After", retry)
				writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "request rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// instrument runs next with a status-recording writer and reports the
// matched route pattern (raw path for 404s) once the handler returns.
func instrument(w http.ResponseWriter, r *http.Request, next http.Handler, done func(route string, status int, took time.Duration)) {
	start := time.Now()
	ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
	next.ServeHTTP(ww, r)

	status := ww.Status()
	if status == 0 {
		status = http.StatusOK
	}
	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	done(route, status, time.Since(start))
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		instrument(w, r, next, func(route string, status int, took time.Duration) {
			observability.ObserveHTTP(route, r.Method, status, took)
		})
	})
}

// Logger emits one access line per request; 5xx responses log at error.
func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			instrument(w, r, next, func(route string, status int, took time.Duration) {
				ev := l.Info()
				if status >= http.StatusInternalServerError {
					ev = l.Error()
				}
				ev.
					Str("route", route).
					Str("method", r.Method).
					Int("status", status).
					Dur("duration", took).
					Str("remote", remoteIP(r)).
					Str("ua", r.UserAgent()).
					Str("request_id", chimw.GetReqID(r.Context())).
					Msg("http_request")
			})
		})
	}
}

// chimw.RealIP has already folded X-Forwarded-For / X-Real-IP into RemoteAddr.
func remoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
