package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/chat"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/realtime"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := cfg.Validate(); err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := timezone.ShopClock(cfg.ShopTimezone)

	// ======================================================
	// STORE
	// ======================================================
	repo, err := openStore(cfg, zlog, clock)
	if err != nil {
		zlog.Fatal("failed to open store", zap.Error(err))
	}

	if err := seedAdmin(ctx, cfg, repo, zlog); err != nil {
		zlog.Fatal("failed to seed admin user", zap.Error(err))
	}

	// ======================================================
	// REDIS (OPTIONAL)
	// ======================================================
	var (
		barbers  domain.BarberRegistry = repo
		sessions chat.SessionStore
	)
	if cfg.RedisEnabled() {
		client, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()

		kv := cache.NewRedisKV(client)
		barbers = cache.NewBarberRegistry(repo, kv, cfg.BarberCacheTTL, zlog)
		sessions = chat.NewRedisSessionStore(kv, cfg.ChatSessionTTL, clock)
		zlog.Info("redis enabled", zap.String("addr", cfg.RedisAddr))
	} else {
		mem := chat.NewMemorySessionStore(cfg.ChatSessionTTL, clock)
		go mem.RunJanitor(ctx, time.Minute)
		sessions = mem
	}

	// ======================================================
	// OBJECT STORAGE
	// ======================================================
	var objects storage.ObjectStore
	if cfg.S3Enabled() {
		objects = storage.NewS3Store(storage.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
			AccessKey:     cfg.AWSAccessKey,
			SecretKey:     cfg.AWSSecretKey,
		})
	} else {
		objects = storage.NewMemoryStore(routes.AvatarPath)
	}

	// ======================================================
	// BACKGROUND WORKERS
	// ======================================================
	dispatcher := audit.NewDispatcher(audit.New(repo), zlog)

	hub := realtime.NewHub(zlog, clock)
	go hub.Run(ctx)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Log:          zlog,
		Clock:        clock,
		Barbers:      barbers,
		Appointments: repo,
		Users:        repo,
		AuditLogs:    repo,
		Sessions:     sessions,
		Objects:      objects,
		Audit:        dispatcher,
		Hub:          hub,
		Metrics:      metrics.New(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("store", cfg.StoreBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	dispatcher.Close()
}

func openStore(cfg *config.Config, zlog *zap.Logger, clock timezone.Clock) (domain.Repository, error) {
	if cfg.StoreBackend == config.BackendMemory {
		zlog.Warn("using in-memory store with demo data; nothing is persisted")
		return memory.NewSeeded(clock), nil
	}

	db, err := dbpkg.NewDB(cfg, zlog)
	if err != nil {
		return nil, err
	}
	return infraRepo.NewGormRepository(db), nil
}

// seedAdmin creates the first panel account from the environment when the
// store has none.
func seedAdmin(ctx context.Context, cfg *config.Config, users domain.UserStore, zlog *zap.Logger) error {
	n, err := users.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := users.CreateUser(ctx, &models.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
	}); err != nil {
		return err
	}

	zlog.Info("admin user created", zap.String("email", cfg.AdminEmail))
	return nil
}
