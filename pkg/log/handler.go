package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// FormatterHandler adapts a LogFormatter (TextFormatter, JSONFormatter,
// ColorFormatter) to the slog.Handler interface, so the CLI can render
// human-readable (optionally colored) output while the rest of the package
// stays on slog's structured API.
type FormatterHandler struct {
	mu        sync.Mutex
	w         io.Writer
	formatter LogFormatter
	level     slog.Level
	attrs     []slog.Attr
}

// NewFormatterHandler returns a handler that writes entries formatted by f
// to w, dropping records below level.
func NewFormatterHandler(w io.Writer, f LogFormatter, level slog.Level) *FormatterHandler {
	return &FormatterHandler{w: w, formatter: f, level: level}
}

func (h *FormatterHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *FormatterHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make(map[string]interface{}, record.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.Any()
		return true
	})

	entry := LogEntry{
		Timestamp: record.Time,
		Level:     levelFromSlog(record.Level),
		Message:   record.Message,
		Fields:    fields,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, h.formatter.Format(entry))
	return err
}

func (h *FormatterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &FormatterHandler{
		w:         h.w,
		formatter: h.formatter,
		level:     h.level,
		attrs:     append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *FormatterHandler) WithGroup(_ string) slog.Handler {
	// Groups would require namespacing Fields by prefix; none of this
	// module's call sites use slog groups, so this is a no-op rather than
	// a silently-incorrect implementation.
	return h
}

func levelFromSlog(l slog.Level) LogLevel {
	switch {
	case l < slog.LevelInfo:
		return DEBUG
	case l < slog.LevelWarn:
		return INFO
	case l < slog.LevelError:
		return WARN
	default:
		return ERROR
	}
}
