// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over go-ethereum's slog based logger.
// Package level loggers are declared once with WithContext and always write
// through the handler installed last, so the CLI may configure logging after
// package initialization.
package log

import (
	"io"
	"log/slog"

	gethlog "github.com/ethereum/go-ethereum/log"
)

// Levels, aliased from go-ethereum.
const (
	LevelTrace = gethlog.LevelTrace
	LevelDebug = gethlog.LevelDebug
	LevelInfo  = gethlog.LevelInfo
	LevelWarn  = gethlog.LevelWarn
	LevelError = gethlog.LevelError
	LevelCrit  = gethlog.LevelCrit
)

// Numeric verbosity levels accepted on the command line.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Logger writes key/value pairs at a given level.
type Logger interface {
	With(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

type logger struct {
	ctx []any
}

// WithContext returns a logger carrying ctx on every record.
func WithContext(ctx ...any) Logger {
	return &logger{ctx: ctx}
}

// Root returns the root logger.
func Root() Logger {
	return &logger{}
}

func (l *logger) resolve() gethlog.Logger {
	if len(l.ctx) == 0 {
		return gethlog.Root()
	}
	return gethlog.Root().With(l.ctx...)
}

func (l *logger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &logger{ctx: append(merged, ctx...)}
}

func (l *logger) Trace(msg string, ctx ...any) { l.resolve().Trace(msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.resolve().Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.resolve().Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.resolve().Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.resolve().Error(msg, ctx...) }

// Crit logs at the critical level and terminates the process.
func (l *logger) Crit(msg string, ctx ...any) { l.resolve().Crit(msg, ctx...) }

// SetHandler installs h as the handler of the root logger.
func SetHandler(h slog.Handler) {
	gethlog.SetDefault(gethlog.NewLogger(h))
}

// NewHandler creates a handler writing records at or above level to w,
// either as JSON lines or in the terminal format.
func NewHandler(w io.Writer, level slog.Level, json, color bool) slog.Handler {
	if json {
		return gethlog.JSONHandlerWithLevel(w, level)
	}
	return gethlog.NewTerminalHandlerWithLevel(w, level, color)
}

// DiscardHandler returns a handler dropping every record.
func DiscardHandler() slog.Handler {
	return gethlog.DiscardHandler()
}

// FromLegacyLevel converts the numeric verbosity used by the command line
// (0=crit ... 5=trace) to a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	return gethlog.FromLegacyLevel(lvl)
}
