package logx

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool   `split_words:"true" default:"false"`
	PrettyFormat bool   `split_words:"true" default:"false"`
	Level        string `split_words:"true"`
}

var DefaultConfig = &Config{
	Debug:        false,
	PrettyFormat: false,
}

func safe(opts ...Config) *Config {
	if len(opts) == 0 {
		return DefaultConfig
	}
	return &opts[0]
}

// Init replaces the global logger. Output goes to stderr so command output
// on stdout stays machine readable.
func Init(opts ...Config) {
	log.Logger = New(os.Stderr, *safe(opts...))
}

func New(w io.Writer, conf Config) zerolog.Logger {
	var logger zerolog.Logger
	if conf.PrettyFormat {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(w).With().Timestamp().Logger()
	}

	logger = logger.Level(level(conf))
	return logger.With().Caller().Stack().Logger()
}

// level prefers an explicit Level, then Debug, then info.
func level(conf Config) zerolog.Level {
	if v := strings.TrimSpace(conf.Level); v != "" {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil && lvl != zerolog.NoLevel {
			return lvl
		}
	}
	if conf.Debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
