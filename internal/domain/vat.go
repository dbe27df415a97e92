package domain

import "time"

// CountryCode — префикс юрисдикции в номере НДС (2–3 латинские буквы, не обязательно ISO).
type CountryCode string

// VatNumber — нормализованный номер НДС (верхний регистр, без пробелов).
type VatNumber string

// RegistryCountryCode — код страны для запроса в реестр: первые два символа номера.
func (v VatNumber) RegistryCountryCode() string {
	if len(v) < 2 {
		return string(v)
	}
	return string(v[:2])
}

// RegistryLocalNumber — локальная часть номера для запроса в реестр (всё после двух символов).
func (v VatNumber) RegistryLocalNumber() string {
	if len(v) < 2 {
		return ""
	}
	return string(v[2:])
}

// RegistryResponse — ответ реестра на запрос проверки регистрации.
type RegistryResponse struct {
	Valid   bool
	Name    string
	Address string
}

// RegistryState — итоговое состояние этапа проверки в реестре.
type RegistryState string

const (
	StateConfirmed RegistryState = "confirmed" // реестр подтвердил регистрацию
	StateRejected  RegistryState = "rejected"  // реестр отказал или strict-таймаут
	StateTolerated RegistryState = "tolerated" // реестр недоступен, lenient-режим считает номер валидным
	StateFault     RegistryState = "fault"     // strict-режим, ошибка реестра проброшена наверх
	StateSkipped   RegistryState = "skipped"   // реестр не вызывался (формат невалиден)
)

// Outcome — результат этапа проверки в реестре.
type Outcome struct {
	Valid   bool
	Name    string
	Address string
	State   RegistryState
}

// Metadata — сведения о плательщике, полученные от реестра.
type Metadata struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ValidationResult — итог двухэтапной проверки одного номера.
type ValidationResult struct {
	VatNumber     VatNumber     `json:"vat_number"`
	CountryCode   CountryCode   `json:"country_code,omitempty"`
	FormatValid   bool          `json:"format_valid"`
	RegistryValid bool          `json:"registry_valid"`
	OverallValid  bool          `json:"valid"`
	State         RegistryState `json:"state"`
	Name          string        `json:"name"`
	Address       string        `json:"address"`
}

// Metadata — имя и адрес из результата.
func (r ValidationResult) Metadata() Metadata {
	return Metadata{Name: r.Name, Address: r.Address}
}

// Check — запись журнала проверок (аудит), при валидации не читается.
type Check struct {
	ID            int64         `json:"id"`
	VatNumber     VatNumber     `json:"vat_number"`
	CountryCode   CountryCode   `json:"country_code"`
	FormatValid   bool          `json:"format_valid"`
	RegistryValid bool          `json:"registry_valid"`
	OverallValid  bool          `json:"valid"`
	State         RegistryState `json:"state"`
	Name          string        `json:"name"`
	Address       string        `json:"address"`
	Strict        bool          `json:"strict"`
	CheckedAt     time.Time     `json:"checked_at"`
}

// NewCheck — собирает запись журнала из результата проверки.
func NewCheck(res ValidationResult, strict bool, at time.Time) *Check {
	return &Check{
		VatNumber:     res.VatNumber,
		CountryCode:   res.CountryCode,
		FormatValid:   res.FormatValid,
		RegistryValid: res.RegistryValid,
		OverallValid:  res.OverallValid,
		State:         res.State,
		Name:          res.Name,
		Address:       res.Address,
		Strict:        strict,
		CheckedAt:     at.UTC(),
	}
}

// CheckRequest — запрос на проверку одного номера (сообщение Kafka, строка JSONL).
// Strict == nil — использовать строгость по умолчанию.
type CheckRequest struct {
	VatNumber string `json:"vat_number"`
	Strict    *bool  `json:"strict,omitempty"`
}
