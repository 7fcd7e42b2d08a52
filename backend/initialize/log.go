package initialize

import (
	"io"
	"os"
	"time"

	"feedgate/backend/config"
	"feedgate/backend/global"

	"github.com/rs/zerolog"
)

// InitLogger configures global.Logger from the log section of the config:
// console writer by default, JSON lines when format is "json".
func InitLogger(cfg config.Log, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	var w io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	if cfg.Format == "json" {
		w = out
	}
	global.Logger = zerolog.New(w).With().Timestamp().Logger()
	SetLogLevel(cfg.Level)
}

// SetLogLevel changes the level of the running logger. It is safe to call
// while requests are logging (config hot reload).
func SetLogLevel(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
