// Package log provides the slog loggers used by gotimer packages.
//
// [Default] writes human-readable records to stdout through a console handler,
// [Dev] is a verbose developer logger and [Noop] discards everything.
// All handlers are wrapped with a formatter middleware that renders errors and durations uniformly.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(d time.Duration) slog.Value {
		return slog.StringValue(d.String())
	}),
)

// NewConsole creates a logger writing to w through a console handler.
// If opts is nil, info level with RFC3339Nano timestamps is used.
func NewConsole(w io.Writer, opts *console.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &console.HandlerOptions{
			Level:      slog.LevelInfo,
			TimeFormat: time.RFC3339Nano,
		}
	}
	return slog.New(newHandler(console.NewHandler(w, opts)))
}

// NewDev creates a developer logger writing to w.
func NewDev(w io.Writer) *slog.Logger {
	return slog.New(newHandler(
		devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

var (
	defLogger = NewConsole(os.Stdout, &console.HandlerOptions{
		AddSource:  true,
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339Nano,
	})
	devLogger  = NewDev(os.Stdout)
	noopLogger = slog.New(noopHandler{})

	curDefault atomic.Pointer[slog.Logger]
)

func init() {
	curDefault.Store(defLogger)
}

// Default returns the default logger.
// It is used by gotimer components when no logger is configured explicitly.
func Default() *slog.Logger { return curDefault.Load() }

// SetDefault replaces the logger returned by [Default].
// Passing nil restores the initial console logger.
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = defLogger
	}
	curDefault.Store(l)
}

// Dev returns a developer logger with debug level and source locations.
func Dev() *slog.Logger { return devLogger }

// Noop returns a logger that discards all records.
func Noop() *slog.Logger { return noopLogger }

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }
