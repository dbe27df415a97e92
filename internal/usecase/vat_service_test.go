package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/internal/ports/mocks"
	"github.com/Gunvolt24/vatcheck/internal/usecase"
	"github.com/Gunvolt24/vatcheck/pkg/ctxmeta"
	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, opts ...usecase.Option) (*usecase.VatService, *mocks.MockRegistryValidator, *mocks.MockCheckRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryValidator(ctrl)
	repo := mocks.NewMockCheckRepository(ctrl)
	opts = append([]usecase.Option{usecase.WithClock(func() time.Time { return fixedNow })}, opts...)
	return usecase.NewVatService(validate.NewFormatChecker(), reg, repo, noopLogger{}, opts...), reg, repo
}

func TestValidate_FormatInvalid_NoRegistryCall(t *testing.T) {
	svc, _, repo := newService(t)

	// Реестр не вызывается: любые вызовы на моке registry → unexpected call.
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Check) error {
		require.Equal(t, domain.VatNumber("DE12345"), c.VatNumber)
		require.Equal(t, domain.StateSkipped, c.State)
		require.False(t, c.FormatValid)
		require.Equal(t, fixedNow, c.CheckedAt)
		return nil
	})

	res, err := svc.Validate(context.Background(), "de 12345", true)
	require.NoError(t, err)
	require.False(t, res.FormatValid)
	require.False(t, res.OverallValid)
	require.Equal(t, domain.CountryCode("DE"), res.CountryCode)
	require.Equal(t, domain.StateSkipped, res.State)
}

func TestValidate_Confirmed_Metadata(t *testing.T) {
	svc, reg, repo := newService(t)

	reg.EXPECT().Validate(gomock.Any(), domain.VatNumber("NL123456789B01"), false).
		Return(domain.Outcome{Valid: true, Name: "ACME", Address: "Main St 1", State: domain.StateConfirmed}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.Validate(context.Background(), "nl123456789b01", false)
	require.NoError(t, err)
	require.True(t, res.FormatValid)
	require.True(t, res.RegistryValid)
	require.True(t, res.OverallValid)
	require.Equal(t, domain.Metadata{Name: "ACME", Address: "Main St 1"}, res.Metadata())
}

func TestValidate_Rejected(t *testing.T) {
	svc, reg, repo := newService(t)

	reg.EXPECT().Validate(gomock.Any(), gomock.Any(), true).
		Return(domain.Outcome{Valid: false, State: domain.StateRejected}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.Validate(context.Background(), "DE123456789", true)
	require.NoError(t, err)
	require.True(t, res.FormatValid)
	require.False(t, res.OverallValid)
	require.Empty(t, res.Name)
}

func TestValidate_Tolerated_IsValidWithoutMetadata(t *testing.T) {
	svc, reg, repo := newService(t)

	reg.EXPECT().Validate(gomock.Any(), gomock.Any(), false).
		Return(domain.Outcome{Valid: true, State: domain.StateTolerated}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.Validate(context.Background(), "FR12345678901", false)
	require.NoError(t, err)
	require.True(t, res.OverallValid)
	require.Equal(t, domain.StateTolerated, res.State)
	require.Equal(t, domain.Metadata{}, res.Metadata())
}

func TestValidate_FatalFault_Propagates(t *testing.T) {
	svc, reg, repo := newService(t)

	fatal := domain.NewFatalFault(&domain.RegistryFault{Code: "MS_UNAVAILABLE", Message: "down"})
	reg.EXPECT().Validate(gomock.Any(), gomock.Any(), true).
		Return(domain.Outcome{State: domain.StateFault}, fatal)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Check) error {
		require.Equal(t, domain.StateFault, c.State)
		require.True(t, c.Strict)
		return nil
	})

	res, err := svc.Validate(context.Background(), "ATU12345678", true)
	require.ErrorIs(t, err, domain.ErrFatalFault)
	var got *domain.FatalFaultError
	require.True(t, errors.As(err, &got))
	require.Same(t, fatal, got)
	require.False(t, res.OverallValid)
	require.Equal(t, domain.StateFault, res.State)
}

func TestValidate_Canceled_NotRecorded(t *testing.T) {
	svc, reg, _ := newService(t)

	// Save не ожидается: прерванная проверка в журнал не пишется
	reg.EXPECT().Validate(gomock.Any(), gomock.Any(), false).
		Return(domain.Outcome{}, context.Canceled)

	res, err := svc.Validate(context.Background(), "DE123456789", false)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, res.OverallValid)
	require.True(t, res.FormatValid)
}

func TestValidate_SaveError_DoesNotChangeVerdict(t *testing.T) {
	svc, reg, repo := newService(t)

	reg.EXPECT().Validate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Outcome{Valid: true, State: domain.StateConfirmed}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	res, err := svc.Validate(context.Background(), "PL1234567890", true)
	require.NoError(t, err)
	require.True(t, res.OverallValid)
}

func TestValidate_NoRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistryValidator(ctrl)
	svc := usecase.NewVatService(validate.NewFormatChecker(), reg, nil, noopLogger{})

	reg.EXPECT().Validate(gomock.Any(), gomock.Any(), true).
		Return(domain.Outcome{Valid: true, State: domain.StateConfirmed}, nil)

	res, err := svc.Validate(context.Background(), "DK12345678", true)
	require.NoError(t, err)
	require.True(t, res.OverallValid)

	list, err := svc.History(context.Background(), "DK12345678", 10, 0)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestValidate_Deterministic(t *testing.T) {
	svc, reg, repo := newService(t)

	reg.EXPECT().Validate(gomock.Any(), gomock.Any(), true).
		Return(domain.Outcome{Valid: true, Name: "ACME", State: domain.StateConfirmed}, nil).Times(2)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	first, err := svc.Validate(context.Background(), "SE123456789001", true)
	require.NoError(t, err)
	second, err := svc.Validate(context.Background(), "SE123456789001", true)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestIsFormatValid_NoSideEffects(t *testing.T) {
	svc, _, _ := newService(t)

	require.True(t, svc.IsFormatValid("ATU12345678"))
	require.False(t, svc.IsFormatValid("ATU1234567"))
	require.False(t, svc.IsFormatValid(""))
}

func TestHistory_NormalizesNumber(t *testing.T) {
	svc, _, repo := newService(t)

	want := []*domain.Check{{ID: 1, VatNumber: "DE123456789"}}
	repo.EXPECT().ListByVatNumber(gomock.Any(), domain.VatNumber("DE123456789"), 20, 5).Return(want, nil)

	got, err := svc.History(context.Background(), " de123456789 ", 20, 5)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestValidateFromMessage_InvalidJSON(t *testing.T) {
	svc, _, _ := newService(t)

	err := svc.ValidateFromMessage(context.Background(), []byte("{"))
	require.ErrorIs(t, err, validate.ErrInvalidRequest)
}

func TestValidateFromMessage_DefaultStrict(t *testing.T) {
	svc, reg, repo := newService(t, usecase.WithDefaultStrict(false))
	require.False(t, svc.DefaultStrict())

	reg.EXPECT().Validate(gomock.Any(), domain.VatNumber("DE123456789"), false).
		Return(domain.Outcome{Valid: true, State: domain.StateTolerated}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, svc.ValidateFromMessage(context.Background(), []byte(`{"vat_number":"DE123456789"}`)))
}

func TestValidateFromMessage_ExplicitStrict_Fault(t *testing.T) {
	svc, reg, repo := newService(t, usecase.WithDefaultStrict(false))

	reg.EXPECT().Validate(gomock.Any(), gomock.Any(), true).
		Return(domain.Outcome{State: domain.StateFault}, domain.NewFatalFault(errors.New("boom")))
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	err := svc.ValidateFromMessage(context.Background(), []byte(`{"vat_number":"DE123456789","strict":true}`))
	require.ErrorIs(t, err, domain.ErrFatalFault)
}

func TestValidateFromMessage_FormatInvalid_NoError(t *testing.T) {
	svc, _, repo := newService(t)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, svc.ValidateFromMessage(context.Background(), []byte(`{"vat_number":"XX1"}`)))
}

func TestValidate_SaveError_LoggedWithVatInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	format := mocks.NewMockFormatChecker(ctrl)
	reg := mocks.NewMockRegistryValidator(ctrl)
	repo := mocks.NewMockCheckRepository(ctrl)
	log := mocks.NewMockLogger(ctrl)
	svc := usecase.NewVatService(format, reg, repo, log)

	// сервис передаёт в проверку формата уже нормализованный номер
	format.EXPECT().Check("FR12345678901").Return(true)
	reg.EXPECT().Validate(gomock.Any(), domain.VatNumber("FR12345678901"), true).
		Return(domain.Outcome{Valid: false, State: domain.StateRejected}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	var logged context.Context
	log.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, _ string, _ ...any) { logged = ctx })

	res, err := svc.Validate(context.Background(), "fr 12345678901", true)
	require.NoError(t, err)
	require.False(t, res.OverallValid)

	vat, ok := ctxmeta.VatNumberFromContext(logged)
	require.True(t, ok)
	require.Equal(t, "FR12345678901", vat)
}
