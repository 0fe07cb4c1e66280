package common

import (
	"github.com/op/go-logging"
)

// Tracer lets us write Minio trace output to our logs. Pass it to
// minio.Client.TraceOn when the log level is DEBUG.
type Tracer struct {
	logger *logging.Logger
}

func NewTracer(logger *logging.Logger) *Tracer {
	return &Tracer{
		logger: logger,
	}
}

func (t *Tracer) Write(p []byte) (n int, err error) {
	t.logger.Debug(string(p))
	return len(p), nil
}
