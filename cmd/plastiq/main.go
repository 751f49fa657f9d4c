package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/castroluiz/plastiq/internal/cli"
	"github.com/castroluiz/plastiq/internal/config"
	"github.com/castroluiz/plastiq/internal/db"
	"github.com/castroluiz/plastiq/internal/repository"
	"github.com/castroluiz/plastiq/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	if p := os.Getenv("PLASTIQ_DB"); p != "" {
		cfg.Database.Path = p
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory %s: %w", dir, err)
		}
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observers []service.UseCaseObserver
	if cfg.Logging.File != "" {
		logger, err := newFileLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = logger.Sync() }()
		observers = append(observers, service.NewZapUseCaseObserver(logger))
	}

	machineRepo := repository.NewSQLiteMachineRepo(database)
	moldRepo := repository.NewSQLiteMoldRepo(database)
	orderRepo := repository.NewSQLiteOrderRepo(database)
	appointmentRepo := repository.NewSQLiteAppointmentRepo(database)
	maintenanceRepo := repository.NewSQLiteMaintenanceRepo(database)
	reportRepo := repository.NewSQLiteReportRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Machines:        service.NewMachineService(machineRepo),
		Molds:           service.NewMoldService(moldRepo),
		Orders:          service.NewOrderService(orderRepo, uow, observers...),
		Production:      service.NewProductionService(appointmentRepo, uow, observers...),
		Maintenance:     service.NewMaintenanceService(maintenanceRepo, uow, observers...),
		Reports:         service.NewReportService(reportRepo),
		ShiftWindows:    cfg.ShiftWindows(),
		Materials:       cfg.Materials,
		MaterialCatalog: cfg.MaterialSet(),
	}

	// With no arguments on an interactive terminal, open the dashboard
	// directly instead of printing the command help.
	if len(os.Args) == 1 && isatty.IsTerminal(os.Stdin.Fd()) {
		return cli.RunDashboard(app)
	}

	return cli.NewRootCmd(app).Execute()
}

// newFileLogger builds a JSON zap logger appending to the configured file.
func newFileLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}
	return zc.Build()
}
