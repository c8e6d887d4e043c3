package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/catalog"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/leads"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/pitchdeck"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/pitches"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/recommend"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/services/health"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/config"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/server"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/storage/db"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/storage/object"
	localstore "github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/storage/object/local"
	s3store "github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/storage/object/s3"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/telemetry"
)

// Core holds the dependencies shared by the API server and the CLI.
type Core struct {
	Catalog     *catalog.Catalog
	Decks       object.ObjectStore
	Source      *pitchdeck.StoreSource
	Assembler   *pitchdeck.Assembler
	Recommender *recommend.Service
}

// App holds the API server dependencies.
type App struct {
	Config  config.Config
	Core    *Core
	Router  *gin.Engine
	DB      *sql.DB
	Leads   leads.Recorder
	Pitches *pitches.Service
	Handler *pitches.Handler
}

// BuildCore loads the catalog and opens the deck store.
func BuildCore(ctx context.Context, cfg config.Config) (*Core, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	store, err := BuildDeckStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	source := pitchdeck.NewStoreSource(store)
	return &Core{
		Catalog:     cat,
		Decks:       store,
		Source:      source,
		Assembler:   pitchdeck.NewAssembler(pitchdeck.NewPDFCodec(), source),
		Recommender: recommend.NewService(cat),
	}, nil
}

// Build prepares all dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	core, err := BuildCore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := checkSkeleton(ctx, core, cfg); err != nil {
		return nil, err
	}

	recorder, sqlDB, err := buildLeads(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &pitches.Service{
		Recommender: core.Recommender,
		Assembler:   core.Assembler,
		Decks:       core.Source,
		Leads:       recorder,
		Skeleton:    cfg.SkeletonDeck,
		TempDir:     cfg.TempDir,
	}
	handler := pitches.NewHandler(svc)

	app := &App{
		Config:  cfg,
		Core:    core,
		DB:      sqlDB,
		Leads:   recorder,
		Pitches: svc,
		Handler: handler,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		PitchHandler: handler,
		Health:       health.NewService(core.Catalog),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"products":   len(core.Catalog.Products()),
		"industries": len(core.Catalog.Industries()),
		"deck_store": cfg.DeckStoreType,
		"lead_store": cfg.LeadStore,
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// BuildDeckStore opens the configured deck store.
func BuildDeckStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.DeckStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.S3Endpoint)
	default:
		return localstore.New(cfg.DeckDir), nil
	}
}

// checkSkeleton fails startup on a missing or short skeleton outside dev.
// In dev it only warns, and each generate request reports the problem.
func checkSkeleton(ctx context.Context, core *Core, cfg config.Config) error {
	name := cfg.SkeletonDeck
	_, err := core.Assembler.CheckSkeleton(ctx, name)
	if err == nil {
		return nil
	}
	if isDevLike(cfg.Env) {
		telemetry.Warn("bootstrap.skeleton_invalid", map[string]any{"skeleton": name, "error": err})
		return nil
	}
	return fmt.Errorf("skeleton check: %w", err)
}

func buildLeads(ctx context.Context, cfg config.Config) (leads.Recorder, *sql.DB, error) {
	switch cfg.LeadStore {
	case "none":
		return leads.Nop{}, nil, nil
	case "postgres":
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if sqlDB == nil {
			return leads.NewMemoryRepo(), nil, nil
		}
		return &leads.PGRepo{DB: sqlDB}, sqlDB, nil
	default:
		return leads.NewCSVWriter(cfg.LeadLogPath), nil, nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_url_empty", map[string]any{"fallback": "memory"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required for LEAD_STORE=postgres")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(poolDefaults()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_unavailable", map[string]any{"fallback": "memory", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func poolDefaults() db.Options {
	if db.IsLambdaRuntime() {
		return db.DefaultLambdaOptions()
	}
	return db.DefaultServerOptions()
}
