package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logFadeMsg clears a status bar log line. Seq guards against clearing a
// newer record than the one that scheduled the fade.
type logFadeMsg struct {
	Seq int
}

// logFadeDelay is how long a log record stays in the status bar.
const logFadeDelay = 5 * time.Second

// LogHandler is a slog.Handler that routes records into a bubbletea
// program. Records arriving before SetProgram is called are dropped.
// Handlers derived via WithAttrs/WithGroup share the program pointer.
type LogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	group   string
}

// NewLogHandler creates a handler for records at or above level.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log records. Safe to call from
// any goroutine.
func (handler *LogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}
	program.Send(logRecordMsg{
		Summary: handler.summarize(record),
		Level:   record.Level,
	})
	return nil
}

// summarize builds "message (key=value, ...)".
func (handler *LogHandler) summarize(record slog.Record) string {
	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, handler.format(attr))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, handler.format(attr))
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return fmt.Sprintf("%s (%s)", record.Message, strings.Join(parts, ", "))
}

func (handler *LogHandler) format(attr slog.Attr) string {
	if handler.group != "" {
		return fmt.Sprintf("%s.%s=%s", handler.group, attr.Key, attr.Value)
	}
	return fmt.Sprintf("%s=%s", attr.Key, attr.Value)
}

func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = append(append([]slog.Attr(nil), handler.attrs...), attrs...)
	return &derived
}

func (handler *LogHandler) WithGroup(name string) slog.Handler {
	derived := *handler
	if handler.group != "" {
		name = handler.group + "." + name
	}
	derived.group = name
	return &derived
}
