package registry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/internal/ports"
	"github.com/Gunvolt24/vatcheck/pkg/metrics"
)

const tracerName = "github.com/Gunvolt24/vatcheck/internal/registry"

// Проверка, что Validator удовлетворяет интерфейсу RegistryValidator.
var _ ports.RegistryValidator = (*Validator)(nil)

// Validator — этап проверки в реестре: один запрос, без повторов, политика strict/lenient.
type Validator struct {
	client ports.RegistryClient
	log    ports.Logger
}

// NewValidator — конструктор Validator.
func NewValidator(client ports.RegistryClient, log ports.Logger) *Validator {
	return &Validator{client: client, log: log}
}

// Validate — спрашивает реестр о номере (формат уже проверен).
//
// Таймаут реестра: lenient → номер считается валидным, strict → невалидным (без ошибки).
// Прочие ошибки: lenient → валидным, strict → *domain.FatalFaultError.
func (v *Validator) Validate(ctx context.Context, vatNumber domain.VatNumber, strict bool) (out domain.Outcome, err error) {
	country := vatNumber.RegistryCountryCode()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "registry.Validate", trace.WithAttributes(
		attribute.String("vat.registry_country", country),
		attribute.Bool("vat.strict", strict),
	))
	defer func() {
		span.SetAttributes(attribute.String("vat.registry_state", string(out.State)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	out, err = v.check(ctx, vatNumber, country, strict)
	return out, err
}

func (v *Validator) check(ctx context.Context, vatNumber domain.VatNumber, country string, strict bool) (domain.Outcome, error) {
	start := time.Now()
	resp, err := v.client.CheckRegistration(ctx, country, vatNumber.RegistryLocalNumber())
	metrics.RegistryLatency.WithLabelValues(country).Observe(time.Since(start).Seconds())

	switch {
	case err == nil && resp.Valid:
		metrics.RegistryRequests.WithLabelValues(country, "confirmed").Inc()
		return domain.Outcome{
			Valid:   true,
			Name:    resp.Name,
			Address: resp.Address,
			State:   domain.StateConfirmed,
		}, nil

	case err == nil:
		metrics.RegistryRequests.WithLabelValues(country, "rejected").Inc()
		return domain.Outcome{Valid: false, State: domain.StateRejected}, nil

	case errors.Is(err, context.Canceled):
		// вызывающий ушёл (остановка, разрыв клиента): вердикта нет, политика strict/lenient не применяется
		v.log.Warnf(ctx, "registry call canceled vat=%s", vatNumber)
		return domain.Outcome{}, err

	case errors.Is(err, domain.ErrRegistryTimeout):
		metrics.RegistryRequests.WithLabelValues(country, "timeout").Inc()
		if strict {
			v.log.Warnf(ctx, "registry timeout vat=%s strict=true: treated as invalid", vatNumber)
			return domain.Outcome{Valid: false, State: domain.StateRejected}, nil
		}
		v.log.Warnf(ctx, "registry timeout vat=%s strict=false: treated as valid", vatNumber)
		return domain.Outcome{Valid: true, State: domain.StateTolerated}, nil

	default:
		metrics.RegistryRequests.WithLabelValues(country, "fault").Inc()
		if strict {
			v.log.Errorf(ctx, "registry fault vat=%s strict=true: %v", vatNumber, err)
			return domain.Outcome{Valid: false, State: domain.StateFault}, domain.NewFatalFault(err)
		}
		v.log.Warnf(ctx, "registry fault vat=%s strict=false: %v (treated as valid)", vatNumber, err)
		return domain.Outcome{Valid: true, State: domain.StateTolerated}, nil
	}
}
