package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/config"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/ctxmeta"
)

// Logger — обёртка над slog с уровнем из конфига и добавлением
// cycle_id из context к каждой записи.
type Logger struct {
	*slog.Logger
}

// New создаёт логгер с выводом в stdout.
func New(cfg *config.Logger) *Logger {
	return NewWithWriter(os.Stdout, cfg)
}

// NewWithWriter создаёт логгер с выводом в произвольный io.Writer.
// Используется и для вывода в файл, и в тестах.
func NewWithWriter(w io.Writer, cfg *config.Logger) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	return &Logger{Logger: slog.New(&ctxHandler{Handler: h})}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ctxHandler добавляет метаданные из context (cycle_id) к записи лога.
type ctxHandler struct {
	slog.Handler
}

func (h *ctxHandler) Handle(ctx context.Context, rec slog.Record) error {
	if id, ok := ctxmeta.CycleID(ctx); ok {
		rec.AddAttrs(slog.String("cycle_id", id))
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{Handler: h.Handler.WithGroup(name)}
}
