// Package logger holds the global structured logger for the application.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

// Init initializes the global logger. Production gets the JSON production
// config, everything else the human-readable development config.
func Init(production bool) {
	once.Do(func() {
		var l *zap.Logger
		var err error
		if production {
			l, err = zap.NewProduction()
		} else {
			l, err = zap.NewDevelopment()
		}
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		log = l.Sugar()
	})
}

// L returns the global logger, initializing a development logger if Init
// was never called (tests mostly).
func L() *zap.SugaredLogger {
	if log == nil {
		Init(false)
	}
	return log
}

// Sync flushes buffered log entries.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
