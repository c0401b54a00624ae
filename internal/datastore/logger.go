// Package datastore provides logging infrastructure for database operations
package datastore

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/geosemantic/skosload/internal/logging"
)

var (
	datastoreLogger   *slog.Logger
	datastoreLevelVar = new(slog.LevelVar) // Dynamic level control
	loggerCloseFunc   func() error
	loggerOnce        sync.Once
	loggerMu          sync.RWMutex
)

const defaultLogPath = "logs/datastore.log"

// InitializeLogger initializes the datastore file logger. Safe to call
// multiple times, initialization happens only once.
func InitializeLogger(logFilePath string) error {
	var initErr error

	loggerOnce.Do(func() {
		if logFilePath == "" {
			logFilePath = defaultLogPath
		}

		datastoreLevelVar.Set(slog.LevelInfo)

		logger, closeFunc, err := logging.NewFileLogger(logFilePath, "datastore", datastoreLevelVar)
		if err != nil {
			// Fall back to the shared stderr logger instead of failing
			logger = logging.HumanLogger().With("component", "datastore")
			closeFunc = func() error { return nil }
			initErr = fmt.Errorf("datastore: failed to initialize file logger: %w", err)
		}

		loggerMu.Lock()
		datastoreLogger = logger
		loggerCloseFunc = closeFunc
		loggerMu.Unlock()
	})

	return initErr
}

// GetLogger returns the datastore logger. Without an initialized file
// logger it falls back to the shared stderr logger, so library use and
// tests never create log files as a side effect.
func GetLogger() *slog.Logger {
	loggerMu.RLock()
	l := datastoreLogger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}
	return logging.HumanLogger().With("component", "datastore")
}

// CloseLogger flushes and closes the file logger.
func CloseLogger() error {
	if loggerCloseFunc != nil {
		return loggerCloseFunc()
	}
	return nil
}

// gormLogWriter adapts the datastore slog logger to GORM's log interface.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...any) {
	GetLogger().Info(fmt.Sprintf(format, args...))
}
