package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/vsinha/shopplan/pkg/application/services/backlog"
	"github.com/vsinha/shopplan/pkg/application/services/duration"
	"github.com/vsinha/shopplan/pkg/application/services/replenishment"
	"github.com/vsinha/shopplan/pkg/domain/repositories"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
	"github.com/vsinha/shopplan/pkg/domain/services/datetime"
	"github.com/vsinha/shopplan/pkg/infrastructure/config"
	"github.com/vsinha/shopplan/pkg/infrastructure/logging"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/postgres"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/shopplan/pkg/interfaces/cli/commands"
	"github.com/vsinha/shopplan/pkg/interfaces/cli/output"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Debug: cfg.Debug, Dir: cfg.LogDir}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	windowStart, windowEnd, err := cfg.WorkingWindow()
	if err != nil {
		return err
	}

	// Open the local database; it always holds production orders
	database, err := sqlite.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// The sales ledger moves to Postgres when a DATABASE_URL is configured
	var sales repositories.SalesRepository = sqlite.NewSalesRepo(database)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to sales database: %w", err)
		}
		defer pool.Close()
		sales = postgres.NewSalesRepo(pool)
	}

	// Wire services
	cal := calendar.New()
	parser := datetime.NewParser(loc)
	durations, err := duration.New(cal, parser, duration.WithWorkingWindow(windowStart, windowEnd))
	if err != nil {
		return err
	}
	planner := replenishment.NewPlanner(replenishment.Config{
		WorkingDaysPerYear: cfg.WorkingDaysPerYear,
		OrderIntervalDays:  cfg.OrderIntervalDays,
	}, replenishment.WithConsumption(sales), replenishment.WithLocation(loc))

	app := &commands.App{
		Calendar:  cal,
		Parser:    parser,
		Durations: durations,
		Backlog:   backlog.New(cal, parser),
		Planner:   planner,
		Loader:    csv.NewLoader(),
		Sales:     sales,
		Orders:    sqlite.NewOrderRepo(database),
		Capacity:  cfg.Capacity,
	}

	// Pipes and redirects get JSON unless --format says otherwise
	app.DefaultFormat = output.FormatJSON
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		app.DefaultFormat = output.FormatText
	}

	logging.Debug("shopplan starting", "db", cfg.DBPath, "timezone", loc.String(), "postgres", cfg.DatabaseURL != "")

	return commands.NewRootCmd(app).ExecuteContext(ctx)
}
