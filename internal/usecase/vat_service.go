package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/internal/ports"
	"github.com/Gunvolt24/vatcheck/pkg/ctxmeta"
	"github.com/Gunvolt24/vatcheck/pkg/metrics"
	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

// Проверка, что VatService удовлетворяет интерфейсу VatCheckService.
var _ ports.VatCheckService = (*VatService)(nil)

// VatService — двухэтапная проверка номера НДС: формат, затем реестр (без знаний о транспорте).
type VatService struct {
	format        ports.FormatChecker     // синтаксическая проверка
	registry      ports.RegistryValidator // этап реестра
	checks        ports.CheckRepository   // журнал проверок, может быть nil
	log           ports.Logger
	defaultStrict bool             // строгость для запросов без явного strict
	now           func() time.Time // источник времени для журнала
}

// Option — настройка VatService.
type Option func(*VatService)

// WithDefaultStrict — строгость по умолчанию для сообщений Kafka без поля strict.
func WithDefaultStrict(strict bool) Option {
	return func(s *VatService) { s.defaultStrict = strict }
}

// WithClock — подмена источника времени (тесты).
func WithClock(now func() time.Time) Option {
	return func(s *VatService) { s.now = now }
}

// NewVatService — DI-конструктор. checks == nil отключает журнал (CLI).
func NewVatService(
	format ports.FormatChecker,
	registry ports.RegistryValidator,
	checks ports.CheckRepository,
	log ports.Logger,
	opts ...Option,
) *VatService {
	s := &VatService{
		format:        format,
		registry:      registry,
		checks:        checks,
		log:           log,
		defaultStrict: true,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultStrict — строгость по умолчанию.
func (s *VatService) DefaultStrict() bool { return s.defaultStrict }

// IsFormatValid — только синтаксическая проверка, реестр не вызывается.
func (s *VatService) IsFormatValid(vatNumber string) bool {
	return s.format.Check(vatNumber)
}

// Validate — полная проверка одного номера.
//
// Невалидный формат → результат без обращения к реестру.
// В strict-режиме ошибка реестра возвращается как *domain.FatalFaultError вместе с частичным результатом.
func (s *VatService) Validate(ctx context.Context, vatNumber string, strict bool) (domain.ValidationResult, error) {
	vat := validate.Normalize(vatNumber)
	ctx = ctxmeta.WithVatNumber(ctx, vat)
	res := domain.ValidationResult{
		VatNumber: domain.VatNumber(vat),
		State:     domain.StateSkipped,
	}
	if cc, ok := validate.CountryOf(vat); ok {
		res.CountryCode = cc
	}

	if !s.format.Check(vat) {
		s.log.Infof(ctx, "format invalid vat=%q", vat)
		s.finish(ctx, res, strict, "invalid_format")
		return res, nil
	}
	res.FormatValid = true

	outcome, err := s.registry.Validate(ctx, res.VatNumber, strict)
	if errors.Is(err, context.Canceled) {
		// проверка прервана: ни вердикта, ни записи в журнал
		return res, err
	}
	res.State = outcome.State
	res.RegistryValid = outcome.Valid
	if err != nil {
		res.State = domain.StateFault
		res.RegistryValid = false
		s.finish(ctx, res, strict, "fault")
		return res, err
	}

	res.OverallValid = res.FormatValid && res.RegistryValid
	res.Name = outcome.Name
	res.Address = outcome.Address

	result := "invalid"
	if res.OverallValid {
		result = "valid"
	}
	s.finish(ctx, res, strict, result)
	return res, nil
}

// History — журнал проверок номера (пагинация уже валидирована на верхнем уровне).
func (s *VatService) History(ctx context.Context, vatNumber string, limit, offset int) ([]*domain.Check, error) {
	if s.checks == nil {
		return []*domain.Check{}, nil
	}
	return s.checks.ListByVatNumber(ctx, domain.VatNumber(validate.Normalize(vatNumber)), limit, offset)
}

// ValidateFromMessage — проверка запроса, пришедшего из Kafka (raw JSON).
// Шаги:
//  1. строгий разбор запроса (ошибка оборачивает validate.ErrInvalidRequest);
//  2. проверка с явной либо дефолтной строгостью;
//  3. запись в журнал (внутри Validate).
func (s *VatService) ValidateFromMessage(ctx context.Context, raw []byte) error {
	req, err := validate.DecodeCheckRequest(raw)
	if err != nil {
		s.log.Warnf(ctx, "invalid check request: %v", err)
		return err
	}

	strict := s.defaultStrict
	if req.Strict != nil {
		strict = *req.Strict
	}

	res, err := s.Validate(ctx, req.VatNumber, strict)
	if err != nil {
		s.log.Errorf(ctx, "check failed vat=%s strict=%v: %v", res.VatNumber, strict, err)
		return fmt.Errorf("validate %s: %w", res.VatNumber, err)
	}

	s.log.Infof(ctx, "checked vat=%s valid=%v state=%s", res.VatNumber, res.OverallValid, res.State)
	return nil
}

// finish — метрики и запись в журнал. Ошибка журнала не меняет вердикт.
func (s *VatService) finish(ctx context.Context, res domain.ValidationResult, strict bool, result string) {
	country := string(res.CountryCode)
	if country == "" {
		country = "unknown"
	}
	metrics.VatValidations.WithLabelValues(country, result).Inc()

	if s.checks == nil {
		return
	}
	if err := s.checks.Save(ctx, domain.NewCheck(res, strict, s.now())); err != nil {
		s.log.Warnf(ctx, "checks.Save failed vat=%s err=%v", res.VatNumber, err)
	}
}
