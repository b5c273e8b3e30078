package testutil

import (
	"testing"

	"github.com/GustavoCaso/finbot/internal/logger"
)

// TestLogger returns a debug-level logger whose records are dropped, so code
// paths that only log at debug still run under test.
func TestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	return logger.New(logger.Config{
		Level:  logger.LevelDebug,
		Format: logger.FormatJSON,
		Output: "discard",
	})
}
