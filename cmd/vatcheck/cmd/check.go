package cmd

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/internal/ports"
	"github.com/Gunvolt24/vatcheck/internal/registry"
	"github.com/Gunvolt24/vatcheck/internal/registry/vies"
	"github.com/Gunvolt24/vatcheck/internal/usecase"
	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

// checkLine — строка вывода команды check (JSON Lines).
type checkLine struct {
	VatNumber string `json:"vat_number"`
	Valid     bool   `json:"valid"`
	Strict    bool   `json:"strict"`
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
}

func newCheckCmd(newLogger func() (ports.Logger, func())) *cobra.Command {
	var (
		strict bool
		cfg    = vies.Config{
			URL:            vies.DefaultURL,
			ConnectTimeout: vies.DefaultConnectTimeout,
			Timeout:        vies.DefaultTimeout,
		}
	)

	cmd := &cobra.Command{
		Use:   "check NUMBER...",
		Short: "Полная проверка: формат, затем реестр VIES",
		Long: `Проверяет номера по очереди и печатает результат в JSON Lines.

В strict-режиме таймаут реестра делает номер невалидным, а прочие ошибки
реестра прерывают проверку (код выхода 2). В lenient-режиме номер при
недоступности реестра считается валидным.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, cleanup := newLogger()
			defer cleanup()

			svc := usecase.NewVatService(
				validate.NewFormatChecker(),
				registry.NewValidator(vies.NewClient(cfg), log),
				nil, // журнал в CLI не ведётся
				log,
				usecase.WithDefaultStrict(strict),
			)
			return runCheck(cmd, usecase.NewValidator(svc), strict, args)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", true, "ошибки реестра делают проверку неуспешной")
	cmd.Flags().StringVar(&cfg.URL, "url", cfg.URL, "адрес SOAP-сервиса checkVat")
	cmd.Flags().DurationVar(&cfg.ConnectTimeout, "connect-timeout", cfg.ConnectTimeout, "таймаут установки соединения")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "общий таймаут запроса к реестру")
	return cmd
}

// runCheck — проверка номеров через фасад Validator; первая фатальная ошибка реестра прерывает цикл.
func runCheck(cmd *cobra.Command, v *usecase.Validator, strict bool, args []string) error {
	ctx := cmd.Context()
	enc := json.NewEncoder(cmd.OutOrStdout())
	v.SetStrict(strict)

	invalid := 0
	for _, raw := range args {
		line := checkLine{VatNumber: validate.Normalize(raw), Strict: v.Strict()}

		ok, err := v.Validate(ctx, raw)
		if err != nil {
			var fatal *domain.FatalFaultError
			if !errors.As(err, &fatal) {
				return err
			}
			line.Error, line.Code = fatal.Message, fatal.Code
			if err := enc.Encode(line); err != nil {
				return err
			}
			return &ExitError{Code: ExitFault}
		}

		meta := v.Metadata()
		line.Valid, line.Name, line.Address = ok, meta.Name, meta.Address
		if err := enc.Encode(line); err != nil {
			return err
		}
		if !ok {
			invalid++
		}
	}

	if invalid > 0 {
		return &ExitError{Code: ExitInvalid}
	}
	return nil
}
