package cli

import (
	"fmt"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import parameters and versions from a JSON or YAML file",
		Long: `Import parameters and versions from a JSON or YAML file. Parameters
that already exist with the same code and scope are reused. Values are
stored as written; run audit afterwards to find values that do not fit
their type. The whole file is imported in one transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportParameters(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d version(s): %d parameter(s) created, %d reused\n",
				res.VersionCount, res.ParametersCreated, res.ParametersReused)
			if res.CompaniesCreated > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Created %d company(ies) named in the file", res.CompaniesCreated)))
			}
			return nil
		},
	}
}
