package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/valuetype"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newParamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "param",
		Aliases: []string{"parameter"},
		Short:   "Manage time-versioned parameters",
	}

	cmd.AddCommand(
		newParamAddCmd(app),
		newParamListCmd(app),
		newParamShowCmd(app),
		newParamUpdateCmd(app),
		newParamRemoveCmd(app),
		newParamValueCmd(app),
	)

	return cmd
}

// scopeFlagSet holds the --country and --company flags shared by every
// command that looks a parameter up by code.
type scopeFlagSet struct {
	country, company string
}

func (s *scopeFlagSet) register(fs *pflag.FlagSet) {
	fs.StringVar(&s.country, "country", "", "Country scope (ISO 3166 code)")
	fs.StringVar(&s.company, "company", "", "Company scope (name or ID)")
}

func (s *scopeFlagSet) resolve(ctx context.Context, app *App) (domain.Scope, error) {
	return scopeFlags(ctx, app, s.country, s.company)
}

// parseUserDate accepts YYYY-MM-DD or the acting user's date format.
func parseUserDate(ctx context.Context, app *App, s string) (time.Time, error) {
	if t, err := time.Parse(valuetype.ISODate, s); err == nil {
		return t, nil
	}
	format, err := app.Users.DateFormat(ctx)
	if err != nil {
		return time.Time{}, err
	}
	t, err := valuetype.ParseDate(format, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or %s)", s, format)
	}
	return t, nil
}

func newParamAddCmd(app *App) *cobra.Command {
	var (
		name, description, schema string
		vt                        = valueTypeFlag{v: domain.TypeString}
		scope                     scopeFlagSet
	)

	cmd := &cobra.Command{
		Use:   "add CODE",
		Short: "Create a parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := scope.resolve(ctx, app)
			if err != nil {
				return err
			}
			p := &domain.TimeParameter{
				Code:        args[0],
				Name:        domain.CoalesceStr(name, args[0]),
				Description: description,
				Type:        vt.v,
				Country:     sc.Country,
				CompanyID:   sc.CompanyID,
				JSONSchema:  schema,
			}
			if err := app.Params.CreateParameter(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created parameter %s [%s] (%s)\n", p.Code, p.Type, p.ID[:8])
			return nil
		},
	}

	cmd.Flags().Var(&vt, "type", "Value type: string, integer, float, boolean, date or json")
	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the code)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&schema, "json-schema", "", "JSON schema the values of a json parameter must satisfy")
	scope.register(cmd.Flags())

	return cmd
}

func newParamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			params, err := app.Params.ListParameters(ctx)
			if err != nil {
				return err
			}
			if len(params) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No parameters found.")
				return nil
			}
			names, err := companyNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatParameterList(params, names))
			return nil
		},
	}
}

func newParamShowCmd(app *App) *cobra.Command {
	var scope scopeFlagSet

	cmd := &cobra.Command{
		Use:   "show CODE|ID",
		Short: "Show a parameter and its versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := scope.resolve(ctx, app)
			if err != nil {
				return err
			}
			p, err := resolveParameter(ctx, app, args[0], sc)
			if err != nil {
				return err
			}
			versions, err := app.Params.ListVersions(ctx, p.ID)
			if err != nil {
				return err
			}
			names, err := companyNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.FormatParameter(p, names[domain.StrOrEmpty(p.CompanyID)], versions, time.Now()))
			return nil
		},
	}

	scope.register(cmd.Flags())

	return cmd
}

func newParamUpdateCmd(app *App) *cobra.Command {
	var (
		code, name, description, schema string
		scope                           scopeFlagSet
	)

	cmd := &cobra.Command{
		Use:   "update CODE|ID",
		Short: "Update a parameter; versions pick up the new code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := scope.resolve(ctx, app)
			if err != nil {
				return err
			}
			p, err := resolveParameter(ctx, app, args[0], sc)
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			if fs.Changed("code") {
				p.Code = code
			}
			if fs.Changed("name") {
				p.Name = name
			}
			if fs.Changed("description") {
				p.Description = description
			}
			if fs.Changed("json-schema") {
				p.JSONSchema = schema
			}

			if err := app.Params.UpdateParameter(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated parameter %s\n", p.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "New code")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&schema, "json-schema", "", "JSON schema for json parameters")
	scope.register(cmd.Flags())

	return cmd
}

func newParamRemoveCmd(app *App) *cobra.Command {
	var scope scopeFlagSet

	cmd := &cobra.Command{
		Use:   "remove CODE|ID",
		Short: "Remove a parameter and all of its versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := scope.resolve(ctx, app)
			if err != nil {
				return err
			}
			p, err := resolveParameter(ctx, app, args[0], sc)
			if err != nil {
				return err
			}
			if err := app.Params.DeleteParameter(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed parameter %s\n", p.Code)
			return nil
		},
	}

	scope.register(cmd.Flags())

	return cmd
}

func newParamValueCmd(app *App) *cobra.Command {
	var (
		date  string
		scope scopeFlagSet
	)

	cmd := &cobra.Command{
		Use:   "value CODE",
		Short: "Print the value in effect on a date (default today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := scope.resolve(ctx, app)
			if err != nil {
				return err
			}
			on := time.Now().UTC()
			if date != "" {
				if on, err = parseUserDate(ctx, app, date); err != nil {
					return err
				}
			}
			v, err := app.Params.ValueAt(ctx, args[0], on, sc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.Value)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to read the value on")
	scope.register(cmd.Flags())

	return cmd
}
