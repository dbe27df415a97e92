package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/internal/ports"
	"github.com/Gunvolt24/vatcheck/pkg/httpx"
	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

const (
	defaultChecksLimit = 20
	maxChecksLimit     = 100

	// клиент закрыл соединение до ответа (соглашение nginx)
	statusClientClosedRequest = 499
)

// Handler — HTTP-обработчики проверки номеров.
type Handler struct {
	service       ports.VatCheckService
	log           ports.Logger
	timeout       time.Duration // таймаут обработки запроса; 0 — без ограничения
	defaultStrict bool          // строгость, если ?strict не задан
}

// NewHandler — конструктор Handler.
func NewHandler(service ports.VatCheckService, log ports.Logger, timeout time.Duration, defaultStrict bool) *Handler {
	return &Handler{service: service, log: log, timeout: timeout, defaultStrict: defaultStrict}
}

// formatResponse — ответ GET /vat/:number/format.
type formatResponse struct {
	VatNumber   string `json:"vat_number"`
	FormatValid bool   `json:"format_valid"`
	CountryCode string `json:"country_code,omitempty"`
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func vatParam(c *gin.Context) (string, bool) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty vat number"})
		return "", false
	}
	return number, true
}

// checkFormat — только синтаксическая проверка, реестр не вызывается.
func (h *Handler) checkFormat(c *gin.Context) {
	number, ok := vatParam(c)
	if !ok {
		return
	}

	vat := validate.Normalize(number)
	resp := formatResponse{VatNumber: vat, FormatValid: h.service.IsFormatValid(vat)}
	if cc, found := validate.CountryOf(vat); found {
		resp.CountryCode = string(cc)
	}
	c.JSON(http.StatusOK, resp)
}

// validateNumber — полная проверка номера (формат + реестр).
func (h *Handler) validateNumber(c *gin.Context) {
	number, ok := vatParam(c)
	if !ok {
		return
	}

	strict := h.defaultStrict
	if raw, set := c.GetQuery("strict"); set {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "strict must be a boolean"})
			return
		}
		strict = v
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.service.Validate(ctx, number, strict)
	if err != nil {
		var fatal *domain.FatalFaultError
		if errors.As(err, &fatal) {
			h.log.Warnf(c.Request.Context(), "registry fault vat=%s code=%s: %s", res.VatNumber, fatal.Code, fatal.Message)
			c.JSON(http.StatusBadGateway, gin.H{"error": fatal.Message, "code": fatal.Code})
			return
		}
		if errors.Is(err, context.Canceled) {
			h.log.Warnf(c.Request.Context(), "validate canceled vat=%s: client gone", number)
			c.AbortWithStatus(statusClientClosedRequest)
			return
		}
		h.log.Errorf(c.Request.Context(), "Validate failed vat=%s err=%v", number, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// listChecks — журнал проверок номера с пагинацией.
func (h *Handler) listChecks(c *gin.Context) {
	number, ok := vatParam(c)
	if !ok {
		return
	}

	page, err := httpx.ParsePage(c, defaultChecksLimit, maxChecksLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	checks, err := h.service.History(ctx, number, page.Limit, page.Offset)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "History failed vat=%s err=%v", number, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, checks)
}
