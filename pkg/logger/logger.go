package logger

import (
	"go.uber.org/zap"
)

// Log is the shared application logger
var Log *zap.Logger

// Init configures the global logger. Development mode gets human-readable
// console output; everything else logs structured JSON.
func Init(env string) error {
	var err error
	if env == "development" {
		Log, err = zap.NewDevelopment()
	} else {
		Log, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	return nil
}

// Sync flushes buffered log entries; call on shutdown
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
