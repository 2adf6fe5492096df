package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "resumind-backend/internal/auth"
	"resumind-backend/internal/capability"
	"resumind-backend/internal/config"
	"resumind-backend/internal/convert"
	"resumind-backend/internal/llm"
	"resumind-backend/internal/llm/gemini"
	"resumind-backend/internal/llm/openai"
	"resumind-backend/internal/resumes"
	"resumind-backend/internal/server"
	"resumind-backend/internal/shared/storage/db"
	"resumind-backend/internal/shared/storage/kv"
	"resumind-backend/internal/shared/storage/object"
	localstore "resumind-backend/internal/shared/storage/object/local"
	s3store "resumind-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	Store      object.ObjectStore
	Records    *resumes.RecordStore
	Converter  convert.Converter
	LLM        llm.Client
	Service    *resumes.Service
	Handler    *resumes.Handler
	GoogleAuth *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	store, err := buildObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, kvStore, err := buildRecordStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	converter := buildConverter(cfg)
	classifier := capability.New(cfg.CapabilityMode, cfg.CapabilityMaxWidth)

	records := resumes.NewRecordStore(kvStore)
	svc := resumes.NewService(records, store, converter, llmClient, classifier, cfg.ConversionFatal)
	handler := resumes.NewHandler(svc)
	googleAuth := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
	)

	app := &App{
		Config:     cfg,
		DB:         sqlDB,
		Store:      store,
		Records:    records,
		Converter:  converter,
		LLM:        llmClient,
		Service:    svc,
		Handler:    handler,
		GoogleAuth: googleAuth,
	}
	app.Router = server.NewRouter(cfg, handler, googleAuth)
	return app, nil
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildRecordStore selects the key-value backend. In dev-like environments
// an unreachable backend degrades to memory so the API still comes up.
func buildRecordStore(ctx context.Context, cfg config.Config) (*sql.DB, kv.Store, error) {
	switch cfg.RecordStoreType {
	case "redis":
		redisStore, err := kv.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: redis connect failed; using in-memory records: %v", err)
				return nil, kv.NewMemoryStore(), nil
			}
			return nil, nil, err
		}
		return nil, redisStore, nil

	case "postgres":
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: database connect failed; using in-memory records: %v", err)
				return nil, kv.NewMemoryStore(), nil
			}
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return sqlDB, &kv.PGStore{DB: sqlDB}, nil

	default:
		return nil, kv.NewMemoryStore(), nil
	}
}

func buildConverter(cfg config.Config) convert.Converter {
	converter, err := convert.NewHTTPConverter(cfg.ConverterURL)
	if err != nil {
		log.Printf("bootstrap: converter not configured; previews will be skipped or fail per policy")
		return convert.Unconfigured{}
	}
	return converter
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
	case "gemini":
		return gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.LLMModel)
	default:
		return llm.PlaceholderClient{}, nil
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

// Close releases pooled resources.
func (a *App) Close() {
	if a != nil && a.DB != nil {
		_ = a.DB.Close()
	}
}
