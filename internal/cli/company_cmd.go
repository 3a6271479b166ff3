package cli

import (
	"fmt"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/spf13/cobra"
)

func newCompanyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage companies that scope parameters",
	}

	cmd.AddCommand(
		newCompanyAddCmd(app),
		newCompanyListCmd(app),
		newCompanyRemoveCmd(app),
	)

	return cmd
}

func newCompanyAddCmd(app *App) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Company{Name: args[0], Country: domain.NilIfBlank(country)}
			if err := app.Companies.Create(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created company %s (%s)\n", c.Name, c.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "ISO 3166 country code")

	return cmd
}

func newCompanyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			companies, err := app.Companies.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(companies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No companies found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCompanyList(companies))
			return nil
		},
	}
}

func newCompanyRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove COMPANY",
		Short: "Remove a company and the parameters scoped to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.Companies.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Companies.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed company %s\n", c.Name)
			return nil
		},
	}
}
