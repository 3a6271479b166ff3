package cli

import (
	"fmt"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var (
		order       stageOrderFlag
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "board MODEL",
		Short: "Show the cards of MODEL grouped by stage",
		Long: `Show the cards of MODEL grouped by stage. Every stage of the model is
shown, including stages no card sits in. Cards without a stage are grouped
last. With -i the board is interactive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			model := args[0]
			if _, err := app.Types.Get(ctx, model); err != nil {
				return err
			}

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("interactive board requires a terminal")
				}
				_, err := tea.NewProgram(newBoardView(ctx, app, model, order.v), tea.WithAltScreen()).Run()
				return err
			}

			board, err := app.Cards.Board(ctx, model, order.v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoard(model, boardColumns(board)))
			return nil
		},
	}

	cmd.Flags().Var(&order, "order", `Stage order: "sequence", "sequence desc", "name" or "name desc"`)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Navigate and edit the board interactively")

	return cmd
}

func boardColumns(board *service.Board) []formatter.BoardColumn {
	cols := make([]formatter.BoardColumn, 0, len(board.Groups))
	for _, g := range board.Groups {
		cols = append(cols, formatter.BoardColumn{Stage: g.Stage, Cards: g.Cards})
	}
	return cols
}
