package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Gunvolt24/vatcheck/internal/ports"
	"github.com/Gunvolt24/vatcheck/pkg/ctxmeta"
	"github.com/Gunvolt24/vatcheck/pkg/logger"
)

// Коды завершения.
const (
	ExitInvalid = 1 // хотя бы один номер невалиден
	ExitFault   = 2 // strict-режим: ошибка реестра
)

// ExitError — завершение с заданным кодом; сообщение уже выведено.
type ExitError struct{ Code int }

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// Execute — точка входа CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctxmeta.WithSource(ctx, ctxmeta.SourceCLI))
}

// NewRootCmd — корневая команда со всеми подкомандами.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "vatcheck",
		Short: "Проверка номеров НДС: формат и реестр VIES",
		Long: `vatcheck проверяет номера плательщиков НДС.

Команды:
  format  - только синтаксическая проверка по таблице форматов стран
  check   - формат, затем запрос в реестр VIES (strict/lenient)
  file    - проверка формата номеров из файла или stdin (txt/jsonl)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "подробный лог в stderr")

	newLogger := func() (ports.Logger, func()) {
		if !verbose {
			return logger.FromZap(zap.NewNop(), false), func() {}
		}
		l, cleanup, err := logger.NewZapLogger(false)
		if err != nil {
			return logger.FromZap(zap.NewNop(), false), func() {}
		}
		return l, func() { _ = cleanup() }
	}

	root.AddCommand(newFormatCmd(), newCheckCmd(newLogger), newFileCmd())
	return root
}
