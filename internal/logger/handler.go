package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

type customHandler struct {
	handler slog.Handler
	mu      *sync.Mutex
	w       io.Writer
	group   string
	attrs   []slog.Attr
}

func (h *customHandler) Handle(ctx context.Context, r slog.Record) error {
	// Format time
	timeStr := r.Time.Format(time.RFC3339)

	// Prepare group string, "name" attrs are rendered next to the group
	var groupStr string
	names := []string{}
	fields := []string{}
	for _, a := range h.attrs {
		if a.Key == "name" {
			names = append(names, a.Value.String())
			continue
		}
		fields = append(fields, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	if h.group != "" {
		groupStr = h.group
		if len(names) > 0 {
			groupStr = fmt.Sprintf("%s(%v)", h.group, strings.Join(names, ","))
		}
		groupStr += ": "
	}
	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})

	// Create custom log message
	customMsg := fmt.Sprintf("%s %s %s%s",
		timeStr,
		strings.ToUpper(r.Level.String()),
		groupStr,
		r.Message,
	)
	if len(fields) > 0 {
		customMsg += " " + strings.Join(fields, " ")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write([]byte(customMsg + "\n"))
	return err
}

func (h *customHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *customHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &customHandler{
		handler: h.handler,
		mu:      h.mu,
		w:       h.w,
		group:   h.group,
		attrs:   merged,
	}
}

func (h *customHandler) WithGroup(name string) slog.Handler {
	return &customHandler{
		handler: h.handler,
		mu:      h.mu,
		w:       h.w,
		group:   name,
		attrs:   []slog.Attr{},
	}
}

func newCustomHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return &customHandler{
		handler: slog.NewTextHandler(w, opts),
		mu:      &sync.Mutex{},
		w:       w,
	}
}
