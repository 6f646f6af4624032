// Package app wires configuration, storage, clients, and services into one
// shared core used by cmd/guarani-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matiasrojas/guarani/internal/clients/gemini"
	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/interfaces"
	"github.com/matiasrojas/guarani/internal/services/account"
	"github.com/matiasrojas/guarani/internal/services/advisor"
	"github.com/matiasrojas/guarani/internal/services/category"
	"github.com/matiasrojas/guarani/internal/services/ledger"
	"github.com/matiasrojas/guarani/internal/services/report"
	"github.com/matiasrojas/guarani/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Storage         interfaces.StorageManager
	GeminiClient    interfaces.GeminiClient
	LedgerService   interfaces.LedgerService
	AccountService  interfaces.AccountService
	CategoryService interfaces.CategoryService
	ReportService   interfaces.ReportService
	AdvisorService  interfaces.AdvisorService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, GUARANI_CONFIG, then binary dir
	if configPath == "" {
		configPath = os.Getenv("GUARANI_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "guarani.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/guarani.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Badger.Path != "" && !filepath.IsAbs(config.Storage.Badger.Path) {
		config.Storage.Badger.Path = filepath.Join(binDir, config.Storage.Badger.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	ctx := context.Background()

	storageManager, err := storage.NewManager(ctx, logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var geminiClient interfaces.GeminiClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - chat assistant will be unavailable")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - chat assistant will be unavailable")
	}

	ledgerService := ledger.NewService(storageManager, logger)
	accountService := account.NewService(storageManager, logger)
	categoryService := category.NewService(storageManager, logger)
	reportService := report.NewService(storageManager, logger)
	advisorService := advisor.NewService(reportService, ledgerService, storageManager, geminiClient, logger)

	a := &App{
		Config:          config,
		Logger:          logger,
		Storage:         storageManager,
		GeminiClient:    geminiClient,
		LedgerService:   ledgerService,
		AccountService:  accountService,
		CategoryService: categoryService,
		ReportService:   reportService,
		AdvisorService:  advisorService,
		StartupTime:     startupStart,
	}

	if err := a.seedDefaults(ctx); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to seed defaults: %w", err)
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.GeminiClient != nil {
		a.GeminiClient.Close()
		a.GeminiClient = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
