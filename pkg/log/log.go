// Copyright 2025 hnorjordet
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	checkIndent = 4  // spaces to indent check entries
	nameWidth   = 30 // base width for check name
	countWidth  = 8  // width for the match/replacement count
)

// 🎯 CheckOperation represents one check's outcome in a run, for display
type CheckOperation struct {
	Name     string // Check name
	Category string // Check category
	Matches  int    // Matches found (find) or replacements made (replace)
	Skipped  bool   // Whether the check was skipped (invalid pattern)
	Message  string // Extra detail, e.g. the compile error
}

// 📦 RunOperation represents one document run for logging
type RunOperation struct {
	Profile string // Profile name
	File    string // Document path
	Units   int    // Translation units in the document
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *RunOperation
	checks    []CheckOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatCheckOperation formats a check outcome for display
func (l *Logger) formatCheckOperation(op CheckOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Skipped:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.Matches > 0:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '-'
		symbolColor = color.Faint
	}

	count := fmt.Sprintf("%-*d", countWidth, op.Matches)
	if op.Skipped {
		count = fmt.Sprintf("%-*s", countWidth, "skipped")
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", checkIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Name),
		count,
		color.New(color.Faint).Sprint(op.Category))
	if op.Message != "" {
		line += " " + color.New(color.FgYellow).Sprint(op.Message)
	}
	return line
}

// 📝 LogCheckOperation logs one check's outcome
func (l *Logger) LogCheckOperation(ctx context.Context, op CheckOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checks = append(l.checks, op)

	fmt.Fprintln(l.console, l.formatCheckOperation(op))

	l.zlog.Info().
		Str("check", op.Name).
		Str("category", op.Category).
		Int("matches", op.Matches).
		Bool("skipped", op.Skipped).
		Msg("check complete")
}

// 📝 StartRunOperation starts a new document run
func (l *Logger) StartRunOperation(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.checks = nil

	fmt.Fprintf(l.console, "[checking %s]\n",
		color.New(color.FgCyan).Sprint(op.File))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Profile),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d units", op.Units))

	l.zlog.Info().
		Str("profile", op.Profile).
		Str("file", op.File).
		Int("units", op.Units).
		Msg("starting document run")
}

// 📝 EndRunOperation ends the current document run
func (l *Logger) EndRunOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Info().
		Str("profile", l.currentOp.Profile).
		Int("checks", len(l.checks)).
		Msg("document run complete")

	l.currentOp = nil
	l.checks = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	toolText := color.New(color.Bold, color.FgCyan).Sprint("xliffqa")
	fmt.Fprintf(l.console, "\n%s %s\n\n", toolText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
