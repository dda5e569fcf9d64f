package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"finrecon-backend/internal/audit"
	"finrecon-backend/internal/auth"
	"finrecon-backend/internal/documents"
	"finrecon-backend/internal/extraction"
	"finrecon-backend/internal/reconciliations"
	"finrecon-backend/internal/sessions"
	"finrecon-backend/internal/shared/config"
	"finrecon-backend/internal/shared/server"
	"finrecon-backend/internal/shared/storage/db"
	"finrecon-backend/internal/shared/storage/object"
	localstore "finrecon-backend/internal/shared/storage/object/local"
	s3store "finrecon-backend/internal/shared/storage/object/s3"
	"finrecon-backend/internal/stats"
	"finrecon-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersRepo           users.Repo
	DocumentsRepo       documents.DocumentsRepo
	ReconciliationsRepo reconciliations.Repo
	SessionsRepo        sessions.Repo
	AuditStore          audit.Store
	StatsStore          stats.Store

	UsersService           *users.Service
	SessionsService        *sessions.Service
	AuditService           *audit.Service
	StatsService           *stats.Service
	DocumentsService       *documents.Service
	ReconciliationsService *reconciliations.Service

	LocalAuth  *auth.LocalService
	GoogleAuth *auth.GoogleService
	GitHubAuth *auth.GitHubService
}

// Build prepares dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                app.Config,
		LocalAuth:             app.LocalAuth,
		GoogleAuth:            app.GoogleAuth,
		GitHubAuth:            app.GitHubAuth,
		UserHandler:           users.NewHandler(app.UsersService),
		DocumentHandler:       documents.NewHandler(app.DocumentsService),
		ReconciliationHandler: reconciliations.NewHandler(app.ReconciliationsService),
		AuditHandler:          audit.NewHandler(app.AuditService),
		StatsHandler:          stats.NewHandler(app.StatsService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.ReconciliationsRepo = &reconciliations.PGRepo{DB: app.DB}
		app.SessionsRepo = &sessions.PGRepo{DB: app.DB}
		app.AuditStore = &audit.PGStore{DB: app.DB}
		app.StatsStore = &stats.PGStore{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ReconciliationsRepo = reconciliations.NewMemoryRepo()
		app.SessionsRepo = sessions.NewMemoryRepo()
		app.AuditStore = audit.NewMemoryStore()
		app.StatsStore = stats.NewMemoryStore()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.SessionsService = sessions.NewService(app.SessionsRepo)
	app.AuditService = audit.NewService(app.AuditStore)
	app.StatsService = stats.NewService(app.StatsStore)

	parser, extractor := buildExtraction(app.Config)

	app.DocumentsService = &documents.Service{
		Store:     app.Store,
		Repo:      app.DocumentsRepo,
		Parser:    parser,
		Extractor: extractor,
		Audit:     app.AuditService,
		Stats:     app.StatsService,
		Sessions:  app.SessionsService,
	}

	app.ReconciliationsService = &reconciliations.Service{
		Repo:  app.ReconciliationsRepo,
		Docs:  app.DocumentsService,
		Audit: app.AuditService,
		Stats: app.StatsService,
	}

	starter := sessionStarter{svc: app.SessionsService}
	app.LocalAuth = &auth.LocalService{
		Users:    app.UsersService,
		Sessions: starter,
		Ender:    app.SessionsService,
		Audit:    app.AuditService,
	}
	app.GoogleAuth = auth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
		starter,
		app.AuditService,
	)
	app.GitHubAuth = auth.NewGitHubService(
		app.Config.GitHubClientID,
		app.Config.GitHubClientSecret,
		app.Config.GitHubRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
		starter,
		app.AuditService,
	)

	return nil
}

// buildExtraction picks the hosted extraction client when configured, the
// local parser otherwise.
func buildExtraction(cfg config.Config) (extraction.Parser, extraction.Extractor) {
	client, err := extraction.NewClient(cfg.ExtractionAPIKey)
	if err != nil {
		log.Printf("bootstrap: extraction api not configured; using local parser")
		return extraction.LocalParser{}, extraction.NoExtractor{}
	}
	return extraction.WithRetry(client, client, "")
}

type sessionStarter struct {
	svc *sessions.Service
}

func (s sessionStarter) Start(ctx context.Context, userID string) (string, error) {
	session, err := s.svc.Start(ctx, userID)
	if err != nil {
		return "", err
	}
	return session.ID, nil
}
