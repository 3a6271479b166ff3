package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/basekit/internal/cli"
	"github.com/alexanderramin/basekit/internal/config"
	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/logging"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/alexanderramin/basekit/internal/service"
	"github.com/alexanderramin/basekit/internal/telemetry"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath picks --config out of the arguments before cobra runs, since
// the command tree needs the loaded config to be built.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("basekit", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	cfg, err := config.Load(configPath(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)

	ctx := logging.WithLogger(context.Background(), logger)
	ctx = service.WithActor(ctx, cfg.User.Login)

	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(logger)}
	if cfg.Telemetry.Enabled {
		tp, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Exporter, cfg.Telemetry.Endpoint, os.Stderr)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err)
			}
		}()
		observers = append(observers, telemetry.NewSpanObserver(tp))
	}

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	typeRepo := repository.NewSQLiteEntityTypeRepo(database)
	stageRepo := repository.NewSQLiteStageRepo(database)
	cardRepo := repository.NewSQLiteCardRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	langRepo := repository.NewSQLiteLanguageRepo(database)
	companyRepo := repository.NewSQLiteCompanyRepo(database)
	paramRepo := repository.NewSQLiteParameterRepo(database)
	versionRepo := repository.NewSQLiteVersionRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	users := service.NewUserService(userRepo, langRepo)
	app := &cli.App{
		Types:     service.NewEntityTypeService(typeRepo),
		Stages:    service.NewStageService(stageRepo, typeRepo),
		Cards:     service.NewCardService(cardRepo, stageRepo, typeRepo, userRepo, observers...),
		Users:     users,
		Companies: service.NewCompanyService(companyRepo),
		Params:    service.NewParamService(paramRepo, versionRepo, companyRepo, users, uow, logger, observers...),
		Import:    service.NewImportService(uow, observers...),
	}
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
