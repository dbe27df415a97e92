package httpx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Page — окно выборки журнала.
type Page struct {
	Limit  int
	Offset int
}

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePage читает ?limit и ?offset.
// Отсутствующий параметр берёт значение по умолчанию, limit прижимается к [1, maxLimit],
// отрицательный offset считается нулём. Нечисловое значение — ошибка.
func ParsePage(c *gin.Context, defaultLimit, maxLimit int) (Page, error) {
	p := Page{Limit: ClampInt(defaultLimit, 1, maxLimit)}

	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Page{}, fmt.Errorf("invalid limit %q", raw)
		}
		p.Limit = ClampInt(v, 1, maxLimit)
	}
	if raw, ok := c.GetQuery("offset"); ok {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Page{}, fmt.Errorf("invalid offset %q", raw)
		}
		p.Offset = max(v, 0)
	}
	return p, nil
}
