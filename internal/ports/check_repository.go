package ports

import (
	"context"

	"github.com/Gunvolt24/vatcheck/internal/domain"
)

// CheckRepository — журнал выполненных проверок.
type CheckRepository interface {
	Save(ctx context.Context, check *domain.Check) error
	ListByVatNumber(ctx context.Context, vatNumber domain.VatNumber, limit, offset int) ([]*domain.Check, error)
}
