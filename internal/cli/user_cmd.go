package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/service"
	"github.com/alexanderramin/basekit/internal/valuetype"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users and their languages",
	}

	cmd.AddCommand(
		newUserListCmd(app),
		newUserAddCmd(app),
		newUserLangCmd(app),
		newUserLanguagesCmd(app),
		newUserWhoamiCmd(app),
	)

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			users, err := app.Users.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(users, service.ActorFrom(ctx)))
			return nil
		},
	}
}

func newUserAddCmd(app *App) *cobra.Command {
	var name, lang string

	cmd := &cobra.Command{
		Use:   "add LOGIN",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := &domain.User{Login: args[0], Name: name, Lang: lang}
			if err := app.Users.Create(cmd.Context(), u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.Login, u.Lang)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&lang, "lang", "", "Language code (default en_US)")

	return cmd
}

func newUserLangCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lang LOGIN LANG",
		Short: "Set a user's language; dates are read in its format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Users.SetLanguage(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now uses %s\n", args[0], args[1])
			return nil
		},
	}
}

func newUserLanguagesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the available languages and their date formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, err := app.Users.Languages(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLanguageList(langs))
			return nil
		},
	}
}

func newUserWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the acting user and how dates are read",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := app.Users.Current(ctx)
			if err != nil {
				return err
			}
			format, err := app.Users.DateFormat(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), dates as %s, e.g. %s\n",
				u.Login, u.Lang, format, valuetype.FormatDate(format, time.Now()))
			return nil
		},
	}
}
