package authstate

import (
	"sync"

	"github.com/goliatone/go-authstate/provider"
)

// Logger is the logging contract shared with the provider package.
type Logger = provider.Logger

var (
	loggerMu sync.RWMutex
	logger   Logger = provider.DefaultLogger()
)

// SetLogger replaces the package logger and returns the previous one.
// A nil logger restores the default.
func SetLogger(l Logger) Logger {
	if l == nil {
		l = provider.DefaultLogger()
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	previous := logger
	logger = l
	return previous
}

func getLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
