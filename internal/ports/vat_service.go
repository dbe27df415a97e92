package ports

import (
	"context"

	"github.com/Gunvolt24/vatcheck/internal/domain"
)

// VatCheckService — сервис проверки номеров для транспортного слоя.
type VatCheckService interface {
	IsFormatValid(vatNumber string) bool
	Validate(ctx context.Context, vatNumber string, strict bool) (domain.ValidationResult, error)
	History(ctx context.Context, vatNumber string, limit, offset int) ([]*domain.Check, error)
}
