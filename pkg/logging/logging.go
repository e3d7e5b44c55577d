package logging

import (
	"io"
	"os"
	"runtime"
	"time"

	"cloud.google.com/go/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config configures the global logger.
type Config struct {
	// Service is added to every entry, so entries of smartcvd and the toolkit can be told apart.
	Service string
	Version string
	Debug   bool
	// Human switches from JSON entries for Cloud Logging to colored console output.
	Human bool
}

// SetupLogger configures the global logger.
func SetupLogger(cfg Config) {
	zerolog.TimestampFieldName = "timestamp"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = newLogger(os.Stdout, cfg)
}

func newLogger(out io.Writer, cfg Config) zerolog.Logger {
	var logger zerolog.Logger
	if cfg.Human {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(out).Hook(severityHook{})
	}
	return logger.With().
		Timestamp().
		Str("service", cfg.Service).
		Str("version", cfg.Version).
		Str("goversion", runtime.Version()).
		Logger()
}

// severityHook adds the severity field understood by Cloud Logging.
type severityHook struct{}

func (h severityHook) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	e.Str("severity", levelToSeverity(level).String())
}

func levelToSeverity(level zerolog.Level) logging.Severity {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return logging.Debug
	case zerolog.WarnLevel:
		return logging.Warning
	case zerolog.ErrorLevel:
		return logging.Error
	case zerolog.FatalLevel:
		return logging.Alert
	case zerolog.PanicLevel:
		return logging.Emergency
	default:
		return logging.Info
	}
}
