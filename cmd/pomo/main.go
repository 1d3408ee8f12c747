package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/pomo/internal/cli"
	"github.com/alexanderramin/pomo/internal/config"
	"github.com/alexanderramin/pomo/internal/db"
	"github.com/alexanderramin/pomo/internal/engine"
	"github.com/alexanderramin/pomo/internal/logging"
	"github.com/alexanderramin/pomo/internal/notify"
	"github.com/alexanderramin/pomo/internal/quote"
	"github.com/alexanderramin/pomo/internal/repository"
	"github.com/alexanderramin/pomo/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.NewFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and services
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	settings := service.NewSettingsService(settingsRepo, uow, logger, observer)
	if _, err := settings.Load(context.Background(), cfg.Timer); err != nil {
		return err
	}
	sessions := service.NewSessionCounter(settingsRepo, logger, observer)

	// Wire alerts. The bell shares the UI's terminal writer.
	terminal := notify.NewTerminal(os.Stdout)
	var alerts []notify.Alert
	if cfg.Bell {
		alerts = append(alerts, notify.NewBell(terminal))
	}
	if cfg.DesktopNotify {
		alerts = append(alerts, notify.NewDesktop())
	}
	dispatcher := notify.NewDispatcher(logger.Named("notify"), alerts...)

	eng := engine.New(settings, sessions, engine.SystemScheduler{},
		engine.WithLogger(logger.Named("engine")),
		engine.WithNotifier(dispatcher),
		engine.WithQuotes(quote.NewPicker(quote.Default, uint64(time.Now().UnixNano()))),
		engine.WithSettleDelay(cfg.SettleDelay),
	)
	logger.Info("pomo starting",
		zap.String("db", cfg.DBPath),
		zap.String("engine_id", eng.ID()),
		zap.Strings("alerts", dispatcher.Names()))

	app := &cli.App{
		Settings: settings,
		Sessions: sessions,
		Engine:   eng,
		Config:   cfg,
		Logger:   logger,
		Terminal: terminal,
	}

	// Detect interactive terminal for the full-screen timer.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	err = rootCmd.Execute()
	dispatcher.Wait()
	return err
}
