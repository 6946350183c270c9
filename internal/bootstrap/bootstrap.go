package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	campaigninadapter "chronicle/internal/modules/campaign/adapter/in"
	campaignoutadapter "chronicle/internal/modules/campaign/adapter/out"
	campaignservice "chronicle/internal/modules/campaign/service"
	campaignusecase "chronicle/internal/modules/campaign/usecase"
	characterinadapter "chronicle/internal/modules/character/adapter/in"
	characteroutadapter "chronicle/internal/modules/character/adapter/out"
	characterservice "chronicle/internal/modules/character/service"
	characterusecase "chronicle/internal/modules/character/usecase"
	narrativeoutadapter "chronicle/internal/modules/narrative/adapter/out"
	narrativeout "chronicle/internal/modules/narrative/port/out"
	narrativeservice "chronicle/internal/modules/narrative/service"
	narrativeusecase "chronicle/internal/modules/narrative/usecase"
	sessioninadapter "chronicle/internal/modules/session/adapter/in"
	sessionoutadapter "chronicle/internal/modules/session/adapter/out"
	sessionservice "chronicle/internal/modules/session/service"
	sessionusecase "chronicle/internal/modules/session/usecase"
	"chronicle/internal/platform/clock"
	"chronicle/internal/platform/config"
	"chronicle/internal/platform/id"
	"chronicle/internal/platform/kv"
	"chronicle/internal/platform/logging"
	uiapp "chronicle/internal/ui/app"
)

type App struct {
	CampaignCLI  campaigninadapter.CLIHandler
	SessionCLI   sessioninadapter.CLIHandler
	CharacterCLI characterinadapter.CLIHandler

	Config   config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry

	closers []func() error
}

// New wires the application and bootstraps the campaign collection, so the
// active campaign's timeline and roster are loaded when it returns.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, OutputPath: cfg.LogPath})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	app := &App{Config: cfg, Logger: logger}
	app.closers = append(app.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	clk := clock.SystemClock{}
	store, err := openStore(cfg, clk)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		app.closers = append(app.closers, closer.Close)
	}

	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	model, err := newModel(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	narrativeUC := narrativeusecase.NewInteractor(narrativeservice.NewNarrativeService(
		model,
		cfg.GenerationTimeout,
		narrativeservice.NewMetrics(app.Registry),
		logger.Named("narrative"),
	))

	sessionSvc := sessionservice.NewSessionService(id.UUID{}, sessionoutadapter.NewKVSessionStore(store), logger.Named("session"))
	characterSvc := characterservice.NewCharacterService(id.UUID{}, characteroutadapter.NewKVCharacterStore(store), logger.Named("character"))

	campaignUC := campaignusecase.NewInteractor(
		campaignservice.NewCampaignService(
			clk,
			id.UUID{},
			campaignoutadapter.NewKVCampaignStore(store),
			campaignoutadapter.NewKVWorkspaceStore(store),
			campaignoutadapter.NewKVPartitionStore(store),
			logger.Named("campaign"),
		),
		sessionSvc,
		characterSvc,
	)
	if _, err := campaignUC.Bootstrap(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("bootstrap campaigns: %w", err)
	}

	characterUC := characterusecase.NewInteractor(characterSvc, campaignUC, narrativeUC, logger.Named("character"))
	sessionUC := sessionusecase.NewInteractor(sessionSvc, sessionusecase.Deps{
		Campaigns:  campaignUC,
		Characters: characterUC,
		Narrative:  narrativeUC,
		Exporter:   sessionoutadapter.NewMarkdownExporter(),
		Clock:      clk,
		Logger:     logger.Named("session"),
	})

	app.CampaignCLI = campaigninadapter.NewCLIHandler(campaignUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.CharacterCLI = characterinadapter.NewCLIHandler(characterUC)
	return app, nil
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openStore(cfg config.Config, clk clock.Clock) (kv.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return kv.NewMemoryStore(), nil
	default:
		store, err := kv.NewSQLiteStore(cfg.DBPath, clk)
		if err != nil {
			return nil, fmt.Errorf("open record store: %w", err)
		}
		return store, nil
	}
}

// newModel connects to Gemini when a key is configured. Without one every
// generation degrades to its fallback, and the rest of the app works as
// usual.
func newModel(ctx context.Context, cfg config.Config, logger *zap.Logger) (narrativeout.Model, error) {
	if cfg.APIKey() == "" {
		logger.Warn("no API key configured, generation disabled")
		return narrativeoutadapter.NewUnconfiguredModel(), nil
	}
	model, err := narrativeoutadapter.NewGeminiModel(ctx, cfg.APIKey(), cfg.TextModel, cfg.ImageModel)
	if err != nil {
		return nil, fmt.Errorf("new gemini model: %w", err)
	}
	return model, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CampaignCLI, app.SessionCLI, app.CharacterCLI, app.Config.ExportDir())
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
