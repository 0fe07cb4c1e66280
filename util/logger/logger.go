package logger

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path"
	"path/filepath"

	"github.com/op/go-logging"
)

/*
InitLogger creates and returns a logger suitable for logging
human-readable message. Also returns the path to the log file.
If logDir is empty, the logger writes to stderr and the returned
path is empty.
*/
func InitLogger(logDir string, logLevel logging.Level) (*logging.Logger, string) {
	processName := path.Base(os.Args[0])
	var writer io.Writer = os.Stderr
	filename := ""
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot create log dir '%s': %v\n", logDir, err)
			os.Exit(1)
		}
		filename = filepath.Join(logDir, fmt.Sprintf("%s.log", processName))
		file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open log file '%s': %v\n", filename, err)
			os.Exit(1)
		}
		writer = file
	}
	return NewLogger(processName, writer, logLevel), filename
}

// NewLogger returns a logger with the given module name that writes
// to writer. Tests use this with io.Discard or a bytes.Buffer.
func NewLogger(module string, writer io.Writer, logLevel logging.Level) *logging.Logger {
	log := logging.MustGetLogger(module)
	format := logging.MustStringFormatter("[%{level}] %{message}")
	backend := logging.NewLogBackend(writer, "", stdlog.LstdFlags|stdlog.LUTC)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logLevel, module)
	log.SetBackend(leveled)
	return log
}

// Discard returns a logger that throws away everything. Handy in tests.
func Discard() *logging.Logger {
	return NewLogger("discard", io.Discard, logging.CRITICAL)
}
