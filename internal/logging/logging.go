package logging

import (
	"log"

	"go.uber.org/zap"
)

// Logger is the process-wide structured logger. It starts as a no-op
// so packages can log safely before Init runs (and in tests).
var Logger = zap.NewNop()

// Init replaces the no-op logger with the production zap logger.
func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Logger = logger
}
