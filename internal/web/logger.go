package web

import (
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"
)

// requestLogger logs one line per request.
type requestLogger struct {
	next   http.Handler
	clock  clockwork.Clock
	logger *slog.Logger
}

func newRequestLogger(next http.Handler, clock clockwork.Clock, logger *slog.Logger) *requestLogger {
	return &requestLogger{next: next, clock: clock, logger: logger}
}

func remoteAddr(r *http.Request) string {
	if r.Header.Get("X-Forwarded-For") != "" {
		return r.Header.Get("X-Forwarded-For")
	}
	return r.RemoteAddr
}

func (rl *requestLogger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := rl.clock.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	rl.next.ServeHTTP(sw, r)
	rl.logger.Debug("http request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", sw.status,
		"remote", remoteAddr(r),
		"duration", rl.clock.Since(start))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
