package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/vatcheck/internal/ports"
	"github.com/Gunvolt24/vatcheck/pkg/metrics"
)

// служебные маршруты не пишем ни в лог, ни в метрики
var quietRoutes = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
}

const unmatchedRoute = "unmatched"

// routeOf — шаблон маршрута (/vat/:number) или "" для неизвестного пути.
func routeOf(c *gin.Context) (string, bool) {
	route := c.FullPath()
	_, quiet := quietRoutes[route]
	return route, quiet
}

// statusClass — 2xx/3xx/4xx/5xx.
func statusClass(status int) string {
	return string(rune('0'+status/100)) + "xx"
}

// RequestLogger пишет строку на каждый запрос: 5xx через Errorf, 4xx через Warnf, остальное Infof.
// request_id, source, vat_number и trace_id добавляет сам логгер из контекста.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route, quiet := routeOf(c)
		if quiet {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		status := c.Writer.Status()
		logf := log.Infof
		switch {
		case status >= 500:
			logf = log.Errorf
		case status >= 400:
			logf = log.Warnf
		}

		logf(c.Request.Context(), "request method=%s path=%s query=%q status=%d ip=%s duration=%s size=%d errors=%q",
			c.Request.Method, route, c.Request.URL.RawQuery, status,
			c.ClientIP(), time.Since(start), c.Writer.Size(), c.Errors.String())
	}
}

// RequestMetrics — счётчик ответов и гистограмма длительности по шаблону маршрута.
// Неизвестные пути сводятся к одному значению метки.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route, quiet := routeOf(c)
		if quiet {
			return
		}
		if route == "" {
			route = unmatchedRoute
		}

		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, statusClass(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
