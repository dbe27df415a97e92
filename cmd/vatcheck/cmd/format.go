package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format NUMBER...",
		Short: "Синтаксическая проверка номеров (без реестра)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := validate.NewFormatChecker()
			out := cmd.OutOrStdout()

			invalid := 0
			for _, raw := range args {
				vat := validate.Normalize(raw)
				verdict := "valid"
				if !checker.Check(vat) {
					verdict = "invalid"
					invalid++
				}
				fmt.Fprintf(out, "%s\t%s\n", vat, verdict)
			}
			if invalid > 0 {
				return &ExitError{Code: ExitInvalid}
			}
			return nil
		},
	}
}
