package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"filemanager-backend/internal/files"
	"filemanager-backend/internal/images"
	"filemanager-backend/internal/shared/config"
	"filemanager-backend/internal/shared/server"
	"filemanager-backend/internal/shared/storage/db"
	"filemanager-backend/internal/shared/storage/object"
	gcsstore "filemanager-backend/internal/shared/storage/object/gcs"
	localstore "filemanager-backend/internal/shared/storage/object/local"
	s3store "filemanager-backend/internal/shared/storage/object/s3"
	"filemanager-backend/internal/shared/telemetry"
)

// App holds shared dependencies and the routed engine.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	Store         object.ObjectStore
	FilesRepo     files.Repo
	FilesService  *files.Service
	ImagesService *images.Service
	FilesHandler  *files.Handler
	ImagesHandler *images.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = config.StoreLocal
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       app.Config,
		FileHandler:  app.FilesHandler,
		ImageHandler: app.ImagesHandler,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"index":        indexKind(sqlDB),
	})
	return app, nil
}

// Close releases the database pool and any store client.
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if closer, ok := a.Store.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_index", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_index", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case config.StoreS3:
		return s3store.New(ctx, s3store.Options{
			Region:   cfg.AWSRegion,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			KMSKeyID: cfg.SSEKMSKeyID,
			Endpoint: cfg.S3Endpoint,
		})
	case config.StoreGCS:
		return gcsstore.New(ctx, cfg.GCSBucket, cfg.GCSPrefix)
	case config.StoreLocal:
		return localstore.New(cfg.LocalStoreDir, cfg.LocalPublicURL), nil
	default:
		return nil, fmt.Errorf("unknown OBJECT_STORE %q", cfg.ObjectStoreType)
	}
}

func buildServices(app *App) error {
	var repo files.Repo
	if app.DB != nil {
		repo = &files.PGRepo{DB: app.DB}
	} else {
		repo = files.NewMemoryRepo()
	}

	limits := app.Config.Files
	app.FilesRepo = repo
	app.FilesService = files.NewService(app.Store, repo, files.Policy{
		FileMaxByteSize: limits.MaxByteSize,
		MaxFileCount:    limits.Count,
		AllowedTypes:    limits.Types,
		QuotaBytes:      limits.QuotaBytes,
		PageMaxSize:     limits.PageMaxSize,
	})
	app.ImagesService = images.NewService(app.Store, app.Config.Images.MaxByteSize)
	app.FilesHandler = files.NewHandler(app.FilesService)
	app.ImagesHandler = images.NewHandler(app.ImagesService)

	if app.FilesHandler == nil || app.ImagesHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}

func indexKind(sqlDB *sql.DB) string {
	if sqlDB == nil {
		return "memory"
	}
	return "postgres"
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
