// Пакет ctxmeta — метаданные проверки, которые едут через context.Context:
// request_id, номер НДС, источник запроса (http/kafka/cli) и идентификаторы спана.
// HTTP-слой, консьюмер и логгер зависят от него, но не друг от друга.
package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyVatNumber ctxKey = "vat_number"
	KeySource    ctxKey = "source"
)

// Источники запросов на проверку.
const (
	SourceHTTP  = "http"
	SourceKafka = "kafka"
	SourceCLI   = "cli"
)

func with(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func get(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID кладёт request_id в контекст (пустое значение игнорируется).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) { return get(ctx, KeyRequestID) }

// WithVatNumber — номер, который сейчас проверяется.
func WithVatNumber(ctx context.Context, vat string) context.Context {
	return with(ctx, KeyVatNumber, vat)
}

func VatNumberFromContext(ctx context.Context) (string, bool) { return get(ctx, KeyVatNumber) }

// WithSource — откуда пришёл запрос (SourceHTTP, SourceKafka, SourceCLI).
func WithSource(ctx context.Context, source string) context.Context {
	return with(ctx, KeySource, source)
}

func SourceFromContext(ctx context.Context) (string, bool) { return get(ctx, KeySource) }

// TraceIDFromContext — trace_id активного спана, если он есть.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.TraceID().String(), true
}

// SpanIDFromContext — span_id активного спана, если он есть.
func SpanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// Fields — все известные метаданные парами ключ/значение (для структурных логов).
func Fields(ctx context.Context) []any {
	var out []any
	for _, k := range []ctxKey{KeyRequestID, KeySource, KeyVatNumber} {
		if v, ok := get(ctx, k); ok {
			out = append(out, string(k), v)
		}
	}
	if v, ok := TraceIDFromContext(ctx); ok {
		out = append(out, "trace_id", v)
	}
	if v, ok := SpanIDFromContext(ctx); ok {
		out = append(out, "span_id", v)
	}
	return out
}
