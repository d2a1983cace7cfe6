package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures zerolog for the process. Development gets a console
// writer on stderr; anything else logs JSON.
func Setup(environment, level string) zerolog.Logger {
	var w io.Writer = os.Stderr
	if environment == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return SetupWithWriter(w, level)
}

// SetupWithWriter builds the logger on an explicit writer.
func SetupWithWriter(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(w).With().Timestamp().Logger().Level(lvl)
	log.Logger = logger
	return logger
}
