package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// PipeHandler writes one line per record:
//
//	<LEVEL> | <timestamp> | <message>[ key=value ...]
//
// Writes to the underlying stream are serialized, including across handlers
// derived with WithAttrs and WithGroup.
type PipeHandler struct {
	mu         *sync.Mutex
	w          io.Writer
	level      slog.Leveler
	timeFormat string
	prefix     string
	attrs      []byte
}

func NewPipeHandler(w io.Writer, level slog.Leveler, timeFormat string) *PipeHandler {
	if level == nil {
		level = slog.LevelDebug
	}
	return &PipeHandler{
		mu:         &sync.Mutex{},
		w:          w,
		level:      level,
		timeFormat: timeFormat,
	}
}

func (h *PipeHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PipeHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	buf.WriteString(r.Level.String())
	buf.WriteString(" | ")
	buf.WriteString(r.Time.Format(h.timeFormat))
	buf.WriteString(" | ")
	buf.WriteString(r.Message)
	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *PipeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var buf bytes.Buffer
	buf.Write(h.attrs)
	for _, a := range attrs {
		appendAttr(&buf, h.prefix, a)
	}

	clone := *h
	clone.attrs = buf.Bytes()
	return &clone
}

func (h *PipeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, groupPrefix, ga)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindTime:
		return strconv.Quote(v.Time().String())
	default:
		s = fmt.Sprint(v.Any())
	}

	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}
