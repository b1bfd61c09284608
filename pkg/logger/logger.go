package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger; Init replaces it.
var Logger = log.Logger

type Config struct {
	Level        string `json:"level" yaml:"level"`
	Format       string `json:"format" yaml:"format"` // json or pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"`
}

// Init configures the global logger. Unknown levels fall back to info.
func Init(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	var out io.Writer = os.Stdout
	if cfg.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: cfg.TimeFormat}
	}

	lc := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		lc = lc.Caller()
	}
	Logger = lc.Logger()
	log.Logger = Logger
}

// Named returns a child of the global logger tagged with a component name.
func Named(component string) *zerolog.Logger {
	l := Logger.With().Str("component", component).Logger()
	return &l
}

// OrNop returns l, or a disabled logger when l is nil.
func OrNop(l *zerolog.Logger) *zerolog.Logger {
	if l != nil {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

func Info() *zerolog.Event  { return Logger.Info() }
func Warn() *zerolog.Event  { return Logger.Warn() }
func Error() *zerolog.Event { return Logger.Error() }
func Fatal() *zerolog.Event { return Logger.Fatal() }

// Ctx returns the logger stored in ctx, or the global one.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &Logger
}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}
