package ports

import "context"

// Logger — минимальный контракт логгера; ctx несёт request_id/trace_id для корреляции.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)  // Infof — информационные сообщения.
	Warnf(ctx context.Context, format string, args ...any)  // Warnf — предупреждения (в т.ч. недоступность реестра).
	Errorf(ctx context.Context, format string, args ...any) // Errorf — ошибки.
}
