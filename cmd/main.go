package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ipdr-analysis/auth-server/config"
	"github.com/ipdr-analysis/auth-server/internal/container"
	"github.com/ipdr-analysis/auth-server/internal/infrastructure/jsonfile"
	"github.com/ipdr-analysis/auth-server/internal/interface/middleware"
	"github.com/ipdr-analysis/auth-server/internal/router"
	"github.com/ipdr-analysis/auth-server/pkg/helpers"
	"github.com/ipdr-analysis/auth-server/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	if err := checkSecrets(cfg, jwtManager, logger); err != nil {
		logger.WithError(err).Fatal("refusing to start with these JWT secrets")
	}

	// Flat JSON documents, created as [] on first boot
	for _, p := range []string{cfg.UsersPath(), cfg.LoginsPath()} {
		if err := jsonfile.EnsureDocument(p); err != nil {
			logger.WithError(err).WithField("path", p).Fatal("failed to prepare data file")
		}
	}

	ctx := context.Background()

	// Redis (rate limiting), optional
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis unreachable; rate limits fail open until it recovers")
		}
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	}

	// RabbitMQ (lockout emails), optional
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; lockout notifications disabled")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Elasticsearch (audit mirror), optional
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed; audit mirror disabled")
		} else {
			container.SetES(es)
		}
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(jwtManager)
	container.SetUserRepo(jsonfile.NewUserRepository(cfg.UsersPath()))
	container.SetLoginLogRepo(jsonfile.NewLoginLogRepository(cfg.LoginsPath()))

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithField("data_dir", cfg.DataDir).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// checkSecrets fails on unusable secrets and always reports the built-in
// fallbacks, louder outside development.
func checkSecrets(cfg *config.Config, m *helpers.JWTManager, logger *logrus.Logger) error {
	if err := m.CheckSecrets(); err != nil {
		return err
	}
	if !cfg.UsesDefaultSecrets() {
		return nil
	}
	entry := logger.WithField("env", cfg.Env)
	if cfg.Env == "development" {
		entry.Warn("JWT_SECRET / JWT_REFRESH_SECRET are unset; using built-in development secrets")
	} else {
		entry.Error("JWT_SECRET / JWT_REFRESH_SECRET are unset outside development; tokens are signed with public secrets")
	}
	return nil
}
