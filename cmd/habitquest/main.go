package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/habitquest/internal/cli"
	"github.com/alexanderramin/habitquest/internal/config"
	"github.com/alexanderramin/habitquest/internal/db"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/logger"
	"github.com/alexanderramin/habitquest/internal/repository"
	"github.com/alexanderramin/habitquest/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.ErrorMessage(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	closer, err := logger.Init(logger.Config{Debug: cfg.Log.Debug, Dir: cfg.Log.Dir})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer closer.Close()

	cal, err := domain.NewCalendar(cfg.Timezone)
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database ready", "path", cfg.DBPath, "timezone", cal.Location.String())

	// Wire repositories
	habitRepo := repository.NewSQLiteHabitRepo(database)
	setRepo := repository.NewSQLiteQuestSetRepo(database)
	templateRepo := repository.NewSQLiteQuestTemplateRepoFromDB(database)
	roomRepo := repository.NewSQLiteRoomRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	engine := service.EngineConfig{
		Calendar:     cal,
		MaxRetries:   cfg.Engine.MaxRetries,
		QuestsPerDay: cfg.Quests.PerDay,
		SetBonus:     cfg.Quests.SetBonus,
	}
	observer := service.NewLogUseCaseObserver(logger.Slog())

	app := &cli.App{
		Habits:   service.NewHabitService(habitRepo, uow, engine, observer),
		Progress: service.NewProgressService(habitRepo, uow, engine, observer),
		Quests:   service.NewQuestService(setRepo, templateRepo, uow, engine, observer),
		Rooms:    service.NewRoomService(roomRepo),
		UserID:   cfg.UserID,
		Calendar: cal,
		SetBonus: cfg.Quests.SetBonus,
	}

	// Detect interactive terminal for the habit form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
