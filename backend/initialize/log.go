package initialize

import (
	"io"
	"os"
	"strings"

	"bugtracker/backend/config"
	"bugtracker/backend/global"

	"github.com/rs/zerolog"
)

func init() {
	// basic zerolog setup: console writer to stdout until config is loaded
	global.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}

// SetupLogger configures global.Logger from cfg and writes to out.
func SetupLogger(cfg config.Log, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	w := out
	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{Out: out}
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	global.Logger = logger
	return logger
}
