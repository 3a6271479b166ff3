package cli

import (
	"github.com/alexanderramin/basekit/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Types     service.EntityTypeService
	Stages    service.StageService
	Cards     service.CardService
	Users     service.UserService
	Companies service.CompanyService
	Params    service.ParamService
	Import    service.ImportService

	// IsInteractive reports whether stdin and stdout are a terminal. Forms
	// and the interactive board refuse to start when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "basekit" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "basekit",
		Short:         "Kanban stages and time-versioned parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Read before the command tree is built; declared here so cobra accepts it.
	root.PersistentFlags().String("config", "", "Config file (default $BASEKIT_CONFIG)")

	root.AddCommand(
		newModelCmd(app),
		newStageCmd(app),
		newCardCmd(app),
		newBoardCmd(app),
		newUserCmd(app),
		newCompanyCmd(app),
		newParamCmd(app),
		newVersionCmd(app),
		newImportCmd(app),
		newAuditCmd(app),
	)

	return root
}
