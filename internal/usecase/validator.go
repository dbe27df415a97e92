package usecase

import (
	"context"
	"sync"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/internal/ports"
)

// Validator — фасад с состоянием последней проверки (valid + сведения из реестра).
// Состояние полностью заменяется каждым вызовом Validate и защищено мьютексом;
// конкурентным вызывающим нужен VatService с результатом на вызов.
type Validator struct {
	svc ports.VatCheckService

	mu     sync.RWMutex
	strict bool
	valid  bool
	meta   domain.Metadata
}

// NewValidator — фасад поверх сервиса; строгий режим включён по умолчанию.
func NewValidator(svc ports.VatCheckService) *Validator {
	return &Validator{svc: svc, strict: true}
}

// SetStrict — переключает режим для следующих вызовов Validate.
func (v *Validator) SetStrict(strict bool) {
	v.mu.Lock()
	v.strict = strict
	v.mu.Unlock()
}

// Strict — текущий режим.
func (v *Validator) Strict() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.strict
}

// Validate — полная проверка номера; результат также доступен через IsValid/Metadata.
// При фатальной ошибке реестра состояние сбрасывается в невалидное и ошибка возвращается.
func (v *Validator) Validate(ctx context.Context, vatNumber string) (bool, error) {
	strict := v.Strict()

	res, err := v.svc.Validate(ctx, vatNumber, strict)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.valid = false
		v.meta = domain.Metadata{}
		return false, err
	}
	v.valid = res.OverallValid
	v.meta = res.Metadata()
	return v.valid, nil
}

// IsValid — вердикт последней проверки.
func (v *Validator) IsValid() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.valid
}

// Metadata — имя и адрес из последнего успешного ответа реестра (пустые в остальных случаях).
func (v *Validator) Metadata() domain.Metadata {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.meta
}

// IsFormatValid — только синтаксическая проверка, состояние не меняется.
func (v *Validator) IsFormatValid(vatNumber string) bool {
	return v.svc.IsFormatValid(vatNumber)
}
