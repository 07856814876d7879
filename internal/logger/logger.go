package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	base   zerolog.Logger
	ready  atomic.Bool
	initMu sync.Mutex
)

// Options controls the global logger. Zero values mean info level, JSON to stdout.
type Options struct {
	Level  string    // debug|info|warn|error
	Pretty bool      // human-readable console output
	Out    io.Writer // defaults to os.Stdout
}

// Init configures the global JSON logger.
func Init(opts Options) {
	level := parseLevel(opts.Level)

	var w io.Writer = os.Stdout
	if opts.Out != nil {
		w = opts.Out
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).With().Timestamp().Logger().Level(level)
	ready.Store(true)
}

// InitFromEnv reads LOG_LEVEL and LOG_PRETTY directly; used before the
// configuration has been loaded.
func InitFromEnv() {
	Init(Options{
		Level:  getenv("LOG_LEVEL", "info"),
		Pretty: strings.EqualFold(getenv("LOG_PRETTY", "false"), "true"),
	})
}

// L returns the global logger, initializing it from the environment on first use.
func L() *zerolog.Logger {
	if !ready.Load() {
		initMu.Lock()
		if !ready.Load() {
			InitFromEnv()
		}
		initMu.Unlock()
	}
	return &base
}

// With returns a child of the global logger carrying the given string fields,
// passed as key/value pairs.
func With(kv ...string) zerolog.Logger {
	ctx := L().With()
	for i := 0; i+1 < len(kv); i += 2 {
		ctx = ctx.Str(kv[i], kv[i+1])
	}
	return ctx.Logger()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
