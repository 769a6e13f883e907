package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

// Get returns the process-wide logger, initializing it on first use from
// LOG_LEVEL (default info). The pointer is returned so call sites can chain
// level methods directly.
func Get() *zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339

		level := zerolog.InfoLevel
		if raw := os.Getenv("LOG_LEVEL"); raw != "" {
			if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
				level = parsed
			}
		}

		log = zerolog.New(os.Stdout).
			Level(level).
			With().
			Timestamp().
			Logger()
	})
	return &log
}
