// Package bootstrap wires configuration into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"resumebot/internal/ai"
	"resumebot/internal/ai/gemini"
	"resumebot/internal/artifacts"
	"resumebot/internal/config"
	"resumebot/internal/conversation"
	"resumebot/internal/generation"
	"resumebot/internal/jobdesc"
	"resumebot/internal/logger"
	"resumebot/internal/messaging"
	"resumebot/internal/profiles"
	"resumebot/internal/server"
	"resumebot/internal/storage"
	"resumebot/internal/storage/db"
	"resumebot/internal/storage/object"
	localstore "resumebot/internal/storage/object/local"
	s3store "resumebot/internal/storage/object/s3"
	"resumebot/resume/render"
	"resumebot/resume/tailor"
)

// App holds the wired application dependencies.
type App struct {
	Config   config.Config
	Log      *zap.Logger
	Router   *gin.Engine
	DB       *sql.DB
	Store    object.Store
	Gateway  messaging.Gateway
	Machine  *conversation.Machine
	Recorder *artifacts.Recorder
	Cron     *cron.Cron
}

// Build prepares every dependency and returns a runnable App. Missing
// optional backends (database, redis, AI key) degrade to in-process
// implementations so dev setups need no infrastructure.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.Env, cfg.Debug)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(ctx, cfg.DatabaseURL, db.DefaultOptions())
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, database); err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gateway, err := buildGateway(cfg, log)
	if err != nil {
		return nil, err
	}

	convStore, err := buildConversationStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var profileProvider profiles.Provider
	var artifactRepo artifacts.Repo
	if database != nil {
		profileProvider = &profiles.PGRepo{DB: database}
		artifactRepo = &artifacts.PGRepo{DB: database}
	} else {
		log.Warn("no database configured, using in-memory repositories")
		profileProvider = profiles.NewMemoryRepo()
		artifactRepo = artifacts.NewMemoryRepo()
	}

	pipeline := render.NewPipeline(cfg.RemoteRenderURL, cfg.RenderTimeout, log)
	uploader := storage.NewUploader(store, cfg.PublicBaseURL, cfg.UploadBackoffBase, log)

	recorder := artifacts.NewRecorder(artifactRepo, uploader, log)
	if cfg.RetentionPerOwner > 0 {
		recorder.RetentionPerOwner = cfg.RetentionPerOwner
	}
	if cfg.ArtifactTTL > 0 {
		recorder.TTL = cfg.ArtifactTTL
	}

	svc := generation.NewService(
		buildAnalyzer(ctx, cfg, log),
		profileProvider,
		tailor.NewEngine(),
		pipeline,
		uploader,
		recorder,
		gateway,
		log,
	)
	if cfg.UploadMaxAttempts > 0 {
		svc.UploadRetries = cfg.UploadMaxAttempts
	}

	machine := conversation.NewMachine(convStore, gateway, svc, log)
	if cfg.ConversationIdleTTL > 0 {
		machine.IdleTTL = cfg.ConversationIdleTTL
	}

	app := &App{
		Config:   cfg,
		Log:      log,
		DB:       database,
		Store:    store,
		Gateway:  gateway,
		Machine:  machine,
		Recorder: recorder,
	}
	app.Router = server.NewEngine(cfg, machine, recorder, log)
	app.Cron = buildSweeps(cfg, machine, recorder, log)
	return app, nil
}

// Close releases long-lived resources.
func (a *App) Close() {
	if a.Cron != nil {
		a.Cron.Stop()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
	_ = a.Log.Sync()
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func buildGateway(cfg config.Config, log *zap.Logger) (messaging.Gateway, error) {
	if strings.TrimSpace(cfg.ChatAPIURL) == "" {
		log.Warn("CHAT_API_URL empty, outbound messages will be dropped")
		return dropGateway{log: log}, nil
	}
	return messaging.NewHTTPGateway(cfg.ChatAPIURL, cfg.ChatAPIToken, log)
}

func buildConversationStore(ctx context.Context, cfg config.Config, log *zap.Logger) (conversation.Store, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return conversation.NewMemoryStore(), nil
	}
	store, err := conversation.NewRedisStore(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info("using redis conversation store")
	return store, nil
}

func buildAnalyzer(ctx context.Context, cfg config.Config, log *zap.Logger) jobdesc.Analyzer {
	keyword := jobdesc.NewKeywordAnalyzer()
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return keyword
	}
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn("gemini client unavailable, using keyword analyzer only", zap.Error(err))
		return keyword
	}
	log.Info("ai job analysis enabled", zap.String("model", cfg.GeminiModel))
	return ai.NewAnalyzer(client, keyword, log)
}

func buildSweeps(cfg config.Config, machine *conversation.Machine, recorder *artifacts.Recorder, log *zap.Logger) *cron.Cron {
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	c := cron.New()
	spec := fmt.Sprintf("@every %s", interval)
	_, err := c.AddFunc(spec, func() {
		ctx := context.Background()
		machine.SweepIdle(ctx)
		recorder.SweepExpired(ctx)
	})
	if err != nil {
		log.Error("sweep schedule registration failed", zap.Error(err))
	}
	return c
}

// dropGateway swallows messages when no chat API is configured, so local
// development can exercise the webhook without a provider account.
type dropGateway struct {
	log *zap.Logger
}

func (g dropGateway) SendText(ctx context.Context, identity, text string) error {
	g.log.Info("dropping outbound text", zap.String("identity", identity), zap.String("text", text))
	return nil
}

func (g dropGateway) SendDocument(ctx context.Context, identity, url, caption string) error {
	g.log.Info("dropping outbound document", zap.String("identity", identity), zap.String("url", url))
	return nil
}
