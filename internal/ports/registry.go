package ports

import (
	"context"

	"github.com/Gunvolt24/vatcheck/internal/domain"
)

// RegistryClient — внешний реестр плательщиков НДС (VIES или аналог).
// Таймаут сигнализируется ошибкой, для которой errors.Is(err, domain.ErrRegistryTimeout);
// прочие сбои — *domain.RegistryFault.
type RegistryClient interface {
	CheckRegistration(ctx context.Context, countryCode, localNumber string) (domain.RegistryResponse, error)
}

// RegistryValidator — этап проверки номера в реестре (формат уже проверен).
type RegistryValidator interface {
	Validate(ctx context.Context, vatNumber domain.VatNumber, strict bool) (domain.Outcome, error)
}
