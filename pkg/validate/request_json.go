package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/vatcheck/internal/domain"
)

// ErrInvalidRequest — запрос на проверку не удалось разобрать.
var ErrInvalidRequest = errors.New("invalid check request")

// DecodeCheckRequest — строгий разбор JSON-запроса {"vat_number": "...", "strict": bool}.
// Неизвестные поля, хвостовые данные и пустой номер — ошибка ErrInvalidRequest.
func DecodeCheckRequest(raw []byte) (domain.CheckRequest, error) {
	var req domain.CheckRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return domain.CheckRequest{}, fmt.Errorf("%w: invalid json: %v", ErrInvalidRequest, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return domain.CheckRequest{}, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.VatNumber) == "" {
		return domain.CheckRequest{}, fmt.Errorf("%w: vat_number обязателен", ErrInvalidRequest)
	}
	return req, nil
}
