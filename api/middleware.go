package api

import (
	"net/http"
	"strconv"
	"time"
)

// statusRecorder captures the status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
		r.ResponseWriter.WriteHeader(code)
	}
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(p)
}

func (r *statusRecorder) getStatus() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// route registers handler under pattern, recording a log line and
// request metrics for each call. The pattern doubles as the metrics
// route label, which keeps label cardinality fixed.
func (s *Server) route(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		handler(rec, r)
		elapsed := time.Since(started)
		status := rec.getStatus()
		s.metrics.RequestsTotal.WithLabelValues(pattern, strconv.Itoa(status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(pattern).Observe(elapsed.Seconds())
		s.logger.Infof("%s %s %d %s", r.Method, r.URL.Path, status, elapsed.Round(time.Millisecond))
	})
}
