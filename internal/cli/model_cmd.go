package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/spf13/cobra"
)

func newModelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage entity types that can carry stages",
	}

	cmd.AddCommand(
		newModelAddCmd(app),
		newModelListCmd(app),
		newModelRemoveCmd(app),
	)

	return cmd
}

func newModelAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add MODEL",
		Short: "Register an entity type (e.g. project.task)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.EntityType{
				Model:     args[0],
				Name:      domain.CoalesceStr(name, args[0]),
				CreatedAt: time.Now().UTC(),
			}
			if err := app.Types.Create(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered model %s\n", e.Model)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the model)")

	return cmd
}

func newModelListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entity types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := app.Types.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(types) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No models found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntityTypeList(types))
			return nil
		},
	}
}

func newModelRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove MODEL",
		Short: "Remove an entity type with its stages and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Types.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed model %s\n", args[0])
			return nil
		},
	}
}
