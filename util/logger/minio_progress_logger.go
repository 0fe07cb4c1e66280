package logger

import (
	"github.com/op/go-logging"
)

// MinioProgressLogger logs the progress of Minio's PutObject. Minio
// reads from the Progress reader as it sends each chunk of the body.
type MinioProgressLogger struct {
	logger         *logging.Logger
	chunkNumber    int
	totalBytes     int64
	fileSize       int64
	lastPctPrinted float64
	prefix         string
}

const _10MB = int64(10485760)
const _100MB = int64(104857600)
const _1GB = int64(1073741824)

// NewMinioProgressLogger creates a new MinioProgressLogger.
func NewMinioProgressLogger(logger *logging.Logger, prefix string, fileSize int64) *MinioProgressLogger {
	return &MinioProgressLogger{
		logger:         logger,
		prefix:         prefix,
		chunkNumber:    1,
		totalBytes:     0,
		lastPctPrinted: 0.0,
		fileSize:       fileSize,
	}
}

// Read fulfills the io.Reader interface required by
// minio.PutObjectOptions.Progress. This reader prints progress updates
// into the log, trying not to be too verbose.
func (e *MinioProgressLogger) Read(p []byte) (n int, err error) {
	numBytes := len(p)
	e.totalBytes += int64(numBytes)
	if e.fileSize <= 0 {
		return numBytes, nil
	}
	pctComplete := (float64(e.totalBytes) / float64(e.fileSize)) * 100

	if e.shouldPrint(pctComplete) {
		e.logger.Infof("%s : chunk %d, %d of %d bytes, %3.2f%% complete",
			e.prefix, e.chunkNumber, e.totalBytes, e.fileSize, pctComplete)
		e.lastPctPrinted = pctComplete
	}

	e.chunkNumber++
	return numBytes, nil
}

// TotalBytes returns the number of bytes minio has reported so far.
func (e *MinioProgressLogger) TotalBytes() int64 {
	return e.totalBytes
}

// shouldPrint returns true if the logger should print a message to the log.
// Small files upload quickly, so we don't log them at all. Larger files
// get a line every so often, depending on size.
func (e *MinioProgressLogger) shouldPrint(pctComplete float64) bool {
	diff := pctComplete - e.lastPctPrinted
	if e.fileSize > _1GB {
		return diff >= 5.0
	}
	if e.fileSize > _100MB {
		return diff >= 20.0
	}
	if e.fileSize > _10MB {
		return diff >= 50.0
	}
	return false
}
