package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/spf13/cobra"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage stage-tagged cards",
	}

	cmd.AddCommand(
		newCardAddCmd(app),
		newCardListCmd(app),
		newCardShowCmd(app),
		newCardMoveCmd(app),
		newCardStatusCmd(app),
		newCardPriorityCmd(app),
		newCardAssignCmd(app),
		newCardDuplicateCmd(app),
		newCardRemoveCmd(app),
	)

	return cmd
}

func newCardAddCmd(app *App) *cobra.Command {
	var (
		stage, description, assignee string
		seq                          int
		priority                     = priorityFlag{v: domain.PriorityNormal}
	)

	cmd := &cobra.Command{
		Use:   "add MODEL NAME",
		Short: "Create a card; without --stage it lands in the default stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := &domain.Card{
				Model:       args[0],
				Name:        args[1],
				Description: description,
				Kanban:      domain.NewKanban(),
			}
			c.Priority = priority.v
			c.Sequence = seq
			if stage != "" {
				s, err := resolveStage(ctx, app, c.Model, stage)
				if err != nil {
					return err
				}
				c.SetStage(s)
			}

			if err := app.Cards.Create(ctx, c); err != nil {
				return err
			}
			if assignee != "" {
				if _, err := app.Cards.Assign(ctx, c.ID, assignee); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created card %s (%s) in %s\n",
				c.Name, c.ID[:8], stageLabel(ctx, app, c.StageID))
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "Stage name or ID")
	cmd.Flags().Var(&priority, "priority", "Priority: normal, medium or high")
	cmd.Flags().IntVar(&seq, "seq", domain.DefaultKanbanSequence, "Sequence within the stage")
	cmd.Flags().StringVar(&description, "description", "", "Card description")
	cmd.Flags().StringVar(&assignee, "assign", "", "Assignee login")

	return cmd
}

// stageLabel names the stage for messages, or "no stage".
func stageLabel(ctx context.Context, app *App, stageID *string) string {
	if stageID == nil {
		return "no stage"
	}
	s, err := app.Stages.GetByID(ctx, *stageID)
	if err != nil {
		return *stageID
	}
	return s.Name
}

func newCardListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list MODEL",
		Short: "List the cards of MODEL in kanban order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cards, err := app.Cards.ListByModel(ctx, args[0])
			if err != nil {
				return err
			}
			if len(cards) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No cards for %s.\n", args[0])
				return nil
			}
			stages, err := app.Stages.ExpandGroups(ctx, args[0], repository.StageOrderNatural)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(stages))
			for _, s := range stages {
				names[s.ID] = s.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCardList(cards, names))
			return nil
		},
	}
}

func newCardShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show card details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Cards.GetByID(ctx, id)
			if err != nil {
				return err
			}

			stageName := ""
			if c.StageID != nil {
				stageName = stageLabel(ctx, app, c.StageID)
			}
			assignee := ""
			if c.UserID != nil {
				users, err := app.Users.List(ctx)
				if err != nil {
					return err
				}
				for _, u := range users {
					if u.ID == *c.UserID {
						assignee = u.Login
					}
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCard(c, stageName, assignee))
			return nil
		},
	}
}

func newCardMoveCmd(app *App) *cobra.Command {
	var unstage bool

	cmd := &cobra.Command{
		Use:   "move ID [STAGE]",
		Short: "Move a card to another stage of its model",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 && !unstage {
				return fmt.Errorf("a stage is required (or --none to unstage)")
			}
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}

			stageID := ""
			if !unstage {
				c, err := app.Cards.GetByID(ctx, id)
				if err != nil {
					return err
				}
				s, err := resolveStage(ctx, app, c.Model, args[1])
				if err != nil {
					return err
				}
				stageID = s.ID
			}

			c, err := app.Cards.MoveToStage(ctx, id, stageID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", c.Name, stageLabel(ctx, app, c.StageID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unstage, "none", false, "Remove the card from its stage")

	return cmd
}

func newCardStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set the kanban status: normal, done or blocked",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var status statusFlag
			if err := status.Set(args[1]); err != nil {
				return err
			}
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Cards.SetStatus(ctx, id, status.v)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", c.Name, formatter.StatusPill(c.Status, c.StatusLegend()))
			return nil
		},
	}
}

func newCardPriorityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priority ID PRIORITY",
		Short: "Set the priority: normal, medium or high",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var priority priorityFlag
			if err := priority.Set(args[1]); err != nil {
				return err
			}
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Cards.SetPriority(ctx, id, priority.v)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s priority is now %s\n", c.Name, c.Priority.Label())
			return nil
		},
	}
}

func newCardAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign ID [LOGIN]",
		Short: "Assign a card to a user; without LOGIN the card is unassigned",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			login := ""
			if len(args) == 2 {
				login = args[1]
			}
			c, err := app.Cards.Assign(ctx, id, login)
			if err != nil {
				return err
			}
			if login == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Unassigned %s\n", c.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s\n", c.Name, login)
			return nil
		},
	}
}

func newCardDuplicateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate ID",
		Short: "Copy a card; the copy starts in the default stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			dup, err := app.Cards.Duplicate(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) in %s\n",
				dup.Name, dup.ID[:8], stageLabel(ctx, app, dup.StageID))
			return nil
		},
	}
}

func newCardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Cards.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed card %s\n", id[:8])
			return nil
		},
	}
}
