package cli

import (
	"fmt"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAuditCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report stored values that do not conform to their parameter type",
		RunE: func(cmd *cobra.Command, args []string) error {
			findings, err := app.Params.Audit(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([]formatter.AuditRow, 0, len(findings))
			for _, f := range findings {
				rows = append(rows, formatter.AuditRow{
					Code:          f.Code,
					Type:          f.Type,
					EffectiveDate: f.EffectiveDate,
					Value:         f.Value,
					Problem:       f.Problem,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAuditFindings(rows))
			if strict && len(findings) > 0 {
				return fmt.Errorf("%d non-conforming value(s)", len(findings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any value does not conform")

	return cmd
}
