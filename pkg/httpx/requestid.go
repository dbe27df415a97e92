package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/vatcheck/pkg/ctxmeta"
	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

// HeaderRequestID — заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

// acceptableRequestID — непустой, не длиннее maxRequestIDLen, только печатные ASCII без пробелов.
func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// RequestIDMiddleware берёт X-Request-ID клиента (если он приемлем) или генерирует UUID,
// кладёт его и source=http в контекст и возвращает в ответном заголовке.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !acceptableRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		ctx = ctxmeta.WithSource(ctx, ctxmeta.SourceHTTP)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// VatNumberMiddleware — нормализованный номер из параметра маршрута в контекст (для логов).
func VatNumberMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.Param(param); raw != "" {
			ctx := ctxmeta.WithVatNumber(c.Request.Context(), validate.Normalize(raw))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
