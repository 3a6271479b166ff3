package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/valuetype"
	"github.com/spf13/cobra"
)

func newVersionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Manage the dated values of a parameter",
	}

	cmd.AddCommand(
		newVersionAddCmd(app),
		newVersionSetValueCmd(app),
		newVersionEditCmd(app),
		newVersionListCmd(app),
		newVersionRemoveCmd(app),
	)

	return cmd
}

// printCoercion reports how an entered value was stored. Invalid input is
// cleared rather than rejected, so the reason is shown as a notice.
func printCoercion(w io.Writer, raw string, res valuetype.Result) {
	switch res.Outcome {
	case valuetype.OutcomeInvalid:
		fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("Value %q cleared: %v", raw, res.Reason)))
	case valuetype.OutcomeValid:
		if res.Value != raw {
			fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("Stored %q as %q", raw, res.Value)))
		}
	}
}

func newVersionAddCmd(app *App) *cobra.Command {
	var (
		date, value string
		raw         bool
		scope       scopeFlagSet
	)

	cmd := &cobra.Command{
		Use:   "add CODE|ID",
		Short: "Add a dated value to a parameter",
		Long: `Add a dated value to a parameter. The value is coerced to the
parameter type: numbers are normalized, booleans become True/False and
dates are read in your language's format. A value that cannot be coerced
is stored empty. --raw stores the value exactly as given; audit reports
raw values that do not fit the type.`,
		Args: cobra.ExactArgs(1),
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
			effective, err := parseUserDate(ctx, app, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				v := &domain.TimeParameterVersion{ParameterID: p.ID, EffectiveDate: effective, Value: value}
				if err := app.Params.AddVersion(ctx, v); err != nil {
					return err
				}
				fmt.Fprintf(out, "Added %s from %s: %s\n", p.Code, v.EffectiveDate.Format(valuetype.ISODate), formatter.OrDash(v.Value))
				return nil
			}

			v, res, err := app.Params.EnterVersion(ctx, p.ID, effective, value)
			if err != nil {
				return err
			}
			printCoercion(out, value, res)
			fmt.Fprintf(out, "Added %s from %s: %s\n", p.Code, v.EffectiveDate.Format(valuetype.ISODate), formatter.OrDash(v.Value))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Effective date (YYYY-MM-DD or your language's format)")
	cmd.Flags().StringVar(&value, "value", "", "Value as typed")
	cmd.Flags().BoolVar(&raw, "raw", false, "Store the value without coercion")
	scope.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newVersionSetValueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-value ID VALUE",
		Short: "Change the value of a version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveVersionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			v, res, err := app.Params.SetVersionValue(ctx, id, args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printCoercion(out, args[1], res)
			fmt.Fprintf(out, "%s from %s: %s\n", v.Code, v.EffectiveDate.Format(valuetype.ISODate), formatter.OrDash(v.Value))
			return nil
		},
	}
}

func newVersionEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID",
		Short: "Edit the value of a version in a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("version edit requires a terminal; use version set-value")
			}
			ctx := cmd.Context()
			id, err := resolveVersionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			v, err := app.Params.GetVersion(ctx, id)
			if err != nil {
				return err
			}

			raw := v.Value
			if v.Type == domain.TypeDate && raw != "" {
				raw, err = displayDate(ctx, app, raw)
				if err != nil {
					return err
				}
			}
			if err := versionValueForm(v, &raw).RunWithContext(ctx); err != nil {
				return err
			}

			v, res, err := app.Params.SetVersionValue(ctx, id, raw)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printCoercion(out, raw, res)
			fmt.Fprintf(out, "%s from %s: %s\n", v.Code, v.EffectiveDate.Format(valuetype.ISODate), formatter.OrDash(v.Value))
			return nil
		},
	}
}

func newVersionListCmd(app *App) *cobra.Command {
	var scope scopeFlagSet

	cmd := &cobra.Command{
		Use:   "list CODE|ID",
		Short: "List the versions of a parameter, most recent first",
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
			if len(versions) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No versions for %s.\n", p.Code)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatVersionList(versions, time.Now()))
			return nil
		},
	}

	scope.register(cmd.Flags())

	return cmd
}

func newVersionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveVersionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Params.DeleteVersion(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed version %s\n", id[:8])
			return nil
		},
	}
}
