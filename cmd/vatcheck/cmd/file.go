package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

func newFileCmd() *cobra.Command {
	var (
		inputPath string
		formatStr string
	)

	cmd := &cobra.Command{
		Use:   "file",
		Short: "Проверка формата номеров из файла (txt или jsonl)",
		Long: `Читает номера построчно, печатает нормализованные валидные номера в stdout,
итог (valid/invalid) — в stderr. Без --in читается stdin (по умолчанию как txt).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checker := validate.NewFormatChecker()
			format := validate.InputFormat(formatStr)

			var (
				summary validate.StreamResult
				err     error
			)
			if inputPath == "" || inputPath == "-" {
				if format == validate.FormatAuto {
					format = validate.FormatText
				}
				summary, err = validate.ValidateStream(cmd.Context(), checker, format, cmd.InOrStdin(), cmd.OutOrStdout())
			} else {
				summary, err = validate.ValidateFile(cmd.Context(), checker, inputPath, format, cmd.OutOrStdout())
			}

			errOut := cmd.ErrOrStderr()
			if err != nil {
				fmt.Fprintf(errOut, "validation: %v (%s)\n", err, summary)
				return err
			}
			fmt.Fprintf(errOut, "validation done (%s)\n", summary)
			if summary.InvalidLinesCount > 0 {
				return &ExitError{Code: ExitInvalid}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "in", "", "входной файл (.txt или .jsonl); пусто или '-' — stdin")
	cmd.Flags().StringVar(&formatStr, "format", string(validate.FormatAuto), "формат входа: auto|txt|jsonl")
	return cmd
}
