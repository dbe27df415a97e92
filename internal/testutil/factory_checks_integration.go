//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/vatcheck/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeCheck — мини-генератор записи журнала (подтверждённый номер).
func MakeCheck(opts ...func(*domain.Check)) domain.Check {
	c := domain.Check{
		VatNumber:     "DE123456789",
		CountryCode:   "DE",
		FormatValid:   true,
		RegistryValid: true,
		OverallValid:  true,
		State:         domain.StateConfirmed,
		Name:          "ACME GmbH " + UniqSuffix(),
		Address:       "Hauptstr. 1, Berlin",
		Strict:        true,
		CheckedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithVatNumber — номер и код страны записи.
func WithVatNumber(vat domain.VatNumber, cc domain.CountryCode) func(*domain.Check) {
	return func(c *domain.Check) {
		c.VatNumber = vat
		c.CountryCode = cc
	}
}

// WithCheckedAt — время проверки.
func WithCheckedAt(at time.Time) func(*domain.Check) {
	return func(c *domain.Check) { c.CheckedAt = at.UTC().Truncate(time.Microsecond) }
}

// WithState — итоговое состояние проверки.
func WithState(state domain.RegistryState, valid bool) func(*domain.Check) {
	return func(c *domain.Check) {
		c.State = state
		c.RegistryValid = valid
		c.OverallValid = valid
		if !valid {
			c.Name, c.Address = "", ""
		}
	}
}
