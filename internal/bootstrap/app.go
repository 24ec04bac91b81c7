package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/analyses"
	"ats-backend/internal/engine"
	"ats-backend/internal/history"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/server"
	"ats-backend/internal/shared/storage/db"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/suggestions"
	"ats-backend/internal/suggestions/gemini"
	"ats-backend/internal/suggestions/groq"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Engine             *engine.Engine
	HistoryRepo        history.Repo
	HistoryService     *history.Service
	SuggestionsService *suggestions.Service
	AnalysesService    *analyses.Service
	Health             *health.Service
}

// Build wires every dependency and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	tax, err := BuildTaxonomy(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen, err := BuildGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Engine: engine.New(tax),
	}
	storage := "memory"
	if sqlDB != nil {
		storage = "postgres"
		app.HistoryRepo = &history.PGRepo{DB: sqlDB}
	} else {
		app.HistoryRepo = history.NewMemoryRepo()
	}
	app.HistoryService = history.NewService(app.HistoryRepo, cfg.HistoryMaxItems)
	app.SuggestionsService = suggestions.NewService(gen, cfg.SuggestionsMaxChars)
	app.AnalysesService = &analyses.Service{
		Engine:      app.Engine,
		Suggestions: app.SuggestionsService,
		History:     app.HistoryService,
		MaxChars:    cfg.AnalyzeMaxChars,
	}
	app.Health = health.NewService(sqlDB, gen.Name(), app.Engine.Taxonomy().Len())
	app.Router = server.NewRouter(cfg, server.Deps{
		Analyses: analyses.NewHandler(app.AnalysesService, cfg.UploadMaxBytes),
		History:  history.NewHandler(app.HistoryService),
		Health:   app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":                 cfg.Env,
		"storage":             storage,
		"suggestions":         gen.Name(),
		"suggestions_model":   suggestions.ModelOf(gen),
		"taxonomy_categories": app.Engine.Taxonomy().Len(),
	})
	return app, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// BuildTaxonomy loads TAXONOMY_FILE when set, otherwise the built-in catalog.
func BuildTaxonomy(cfg config.Config) (*engine.Taxonomy, error) {
	path := strings.TrimSpace(cfg.TaxonomyFile)
	if path == "" {
		return engine.DefaultTaxonomy()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open taxonomy %s: %w", path, err)
	}
	defer f.Close()
	tax, err := engine.LoadTaxonomy(f)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy %s: %w", path, err)
	}
	return tax, nil
}

// BuildGenerator selects the suggestion provider named by LLM_PROVIDER. A provider without
// credentials degrades to Disabled so analysis keeps working.
func BuildGenerator(ctx context.Context, cfg config.Config) (suggestions.Generator, error) {
	var (
		gen suggestions.Generator
		err error
	)
	switch cfg.LLMProvider {
	case "groq":
		gen, err = groq.NewClient(cfg.GroqAPIKey, cfg.LLMModel, cfg.LLMTimeout, cfg.SuggestionsMaxChars)
	case "gemini":
		gen, err = gemini.NewClient(ctx, cfg.GeminiKey, cfg.LLMModel, cfg.SuggestionsMaxChars)
	case "none", "":
		return suggestions.Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
	if err != nil {
		telemetry.Info("bootstrap.suggestions_disabled", map[string]any{
			"provider": cfg.LLMProvider,
			"error":    err,
		})
		return suggestions.Disabled{}, nil
	}
	return gen, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_storage", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Error("bootstrap.db_connect_failed", map[string]any{"error": err, "fallback": "memory"})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
