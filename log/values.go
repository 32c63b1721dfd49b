package log

import (
	"fmt"
	"log/slog"
)

// valueFunc is a [slog.LogValuer] resolved only when a record is handled.
type valueFunc func() slog.Value

func (f valueFunc) LogValue() slog.Value { return f() }

// FmtValue returns a lazy value rendering v with '%+v', or with '%#v' if goSyntax is set.
// Panic values and other arbitrary types are logged through it.
func FmtValue(v any, goSyntax bool) slog.LogValuer {
	verb := "%+v"
	if goSyntax {
		verb = "%#v"
	}
	return valueFunc(func() slog.Value { return slog.StringValue(fmt.Sprintf(verb, v)) })
}

// CalcValue returns a lazy value computed by fn.
// fn may return a [slog.Value] or any value accepted by [slog.AnyValue].
func CalcValue(fn func() any) slog.LogValuer {
	return valueFunc(func() slog.Value { return slog.AnyValue(fn()) })
}

// StringValue returns a lazy string value of v, e.g. a stack trace captured as bytes.
func StringValue[T ~string | ~[]byte](v T) slog.LogValuer {
	return valueFunc(func() slog.Value { return slog.StringValue(string(v)) })
}
