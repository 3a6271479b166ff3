package cli

import (
	"fmt"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage the stages of an entity type",
	}

	cmd.AddCommand(
		newStageAddCmd(app),
		newStageListCmd(app),
		newStageUpdateCmd(app),
		newStageRemoveCmd(app),
	)

	return cmd
}

type legendFlags struct {
	priority, blocked, done, normal string
}

func (l *legendFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&l.priority, "legend-priority", "", "Explanation of the starred priority")
	fs.StringVar(&l.blocked, "legend-blocked", "", "Explanation of the blocked status")
	fs.StringVar(&l.done, "legend-done", "", "Explanation of the done status")
	fs.StringVar(&l.normal, "legend-normal", "", "Explanation of the normal status")
}

// apply copies the legends whose flag was given onto s.
func (l *legendFlags) apply(fs *pflag.FlagSet, s *domain.Stage) {
	if fs.Changed("legend-priority") {
		s.LegendPriority = l.priority
	}
	if fs.Changed("legend-blocked") {
		s.LegendBlocked = l.blocked
	}
	if fs.Changed("legend-done") {
		s.LegendDone = l.done
	}
	if fs.Changed("legend-normal") {
		s.LegendNormal = l.normal
	}
}

func newStageAddCmd(app *App) *cobra.Command {
	var (
		seq     int
		fold    bool
		legends legendFlags
	)

	cmd := &cobra.Command{
		Use:   "add MODEL NAME",
		Short: "Create a stage scoped to MODEL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Stage{
				Model:    args[0],
				Name:     args[1],
				Sequence: seq,
				Fold:     fold,
			}
			legends.apply(cmd.Flags(), s)
			if err := app.Stages.Create(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created stage %s for %s (%s)\n", s.Name, s.Model, s.ID[:8])
			return nil
		},
	}

	cmd.Flags().IntVar(&seq, "seq", 1, "Sequence; the lowest sequence is the default stage")
	cmd.Flags().BoolVar(&fold, "fold", false, "Fold the stage in board views")
	legends.register(cmd.Flags())

	return cmd
}

func newStageListCmd(app *App) *cobra.Command {
	var order stageOrderFlag

	cmd := &cobra.Command{
		Use:   "list MODEL",
		Short: "List the stages of MODEL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := app.Stages.ExpandGroups(cmd.Context(), args[0], order.v)
			if err != nil {
				return err
			}
			if len(stages) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No stages for %s.\n", args[0])
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStageList(stages))
			return nil
		},
	}

	cmd.Flags().Var(&order, "order", `Stage order: "sequence", "sequence desc", "name" or "name desc"`)

	return cmd
}

func newStageUpdateCmd(app *App) *cobra.Command {
	var (
		name    string
		seq     int
		fold    bool
		legends legendFlags
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := resolveStageByID(ctx, app, args[0])
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			if fs.Changed("name") {
				s.Name = name
			}
			if fs.Changed("seq") {
				s.Sequence = seq
			}
			if fs.Changed("fold") {
				s.Fold = fold
			}
			legends.apply(fs, s)

			if err := app.Stages.Update(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated stage %s\n", s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Stage name")
	cmd.Flags().IntVar(&seq, "seq", 0, "Sequence")
	cmd.Flags().BoolVar(&fold, "fold", false, "Fold the stage in board views (--fold=false to unfold)")
	legends.register(cmd.Flags())

	return cmd
}

func newStageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a stage; its cards become unstaged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := resolveStageByID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Stages.Delete(ctx, s.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed stage %s\n", s.Name)
			return nil
		},
	}
}
