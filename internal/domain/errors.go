package domain

import (
	"errors"
	"fmt"
)

// ErrRegistryTimeout — реестр не ответил за отведённое время (соединение или выполнение).
var ErrRegistryTimeout = errors.New("vat registry timeout")

// ErrFatalFault — strict-режим: ошибка реестра прервала валидацию.
var ErrFatalFault = errors.New("vat registry fault")

// RegistryFault — ошибка протокола/удалённой стороны (SOAP fault, битый ответ, сбой транспорта).
type RegistryFault struct {
	Code    string
	Message string
	Err     error
}

func (f *RegistryFault) Error() string {
	if f == nil {
		return "registry fault"
	}
	if f.Code == "" {
		return "registry fault: " + f.Message
	}
	return fmt.Sprintf("registry fault [%s]: %s", f.Code, f.Message)
}

func (f *RegistryFault) Unwrap() error { return f.Err }

// FatalFaultError — ошибка реестра, проброшенная вызывающему в strict-режиме.
// Сохраняет код и сообщение исходной ошибки.
type FatalFaultError struct {
	Code    string
	Message string
	Err     error
}

// NewFatalFault — оборачивает исходную ошибку реестра.
func NewFatalFault(err error) *FatalFaultError {
	ffe := &FatalFaultError{Err: err}

	var fault *RegistryFault
	if errors.As(err, &fault) {
		ffe.Code = fault.Code
		ffe.Message = fault.Message
		return ffe
	}
	if err != nil {
		ffe.Message = err.Error()
	}
	return ffe
}

func (e *FatalFaultError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", ErrFatalFault, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", ErrFatalFault, e.Code, e.Message)
}

// Unwrap — errors.Is(err, ErrFatalFault) и доступ к исходной ошибке.
func (e *FatalFaultError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFatalFault}
	}
	return []error{ErrFatalFault, e.Err}
}
