package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// responseRecorder wraps http.ResponseWriter to capture status code and size.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// RequestLogger logs HTTP requests with timing information.
type RequestLogger struct {
	logger *zap.SugaredLogger
}

func NewRequestLogger(logger *zap.SugaredLogger) *RequestLogger {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &RequestLogger{logger: logger}
}

// Apply wraps the handler to log each request once it completes.
func (l *RequestLogger) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(recorder, r)

		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.statusCode,
			"size", recorder.size,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		}
		if r.URL.RawQuery != "" {
			fields = append(fields, "query", r.URL.RawQuery)
		}

		switch {
		case recorder.statusCode >= 500:
			l.logger.Errorw("HTTP request", fields...)
		case recorder.statusCode >= 400:
			l.logger.Warnw("HTTP request", fields...)
		default:
			l.logger.Infow("HTTP request", fields...)
		}
	})
}
