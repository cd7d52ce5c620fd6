package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightpath/site-backend/handlers"
	"github.com/brightpath/site-backend/internal/config"
	"github.com/brightpath/site-backend/internal/content"
	"github.com/brightpath/site-backend/internal/database"
	"github.com/brightpath/site-backend/internal/media"
	"github.com/brightpath/site-backend/internal/notify"
	"github.com/brightpath/site-backend/internal/session"
	"github.com/brightpath/site-backend/pkg/logger"
	"github.com/brightpath/site-backend/pkg/metrics"
	"github.com/brightpath/site-backend/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "BrightPath site backend",
	Long: `Content and admin API for the BrightPath company site.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(os.Getenv("LOG_LEVEL"))
		logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default configuration documents and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return seed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openCatalog loads config and returns the catalog over a lazily connected Mongo.
func openCatalog() (*config.Config, *content.Catalog, *database.Lazy[*mongo.Client], error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	client := database.NewLazyMongo(cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	catalog := content.NewCatalog(content.NewMongoBackend(client, cfg.MongoDB.Database), nil)
	return cfg, catalog, client, nil
}

func seed(ctx context.Context) error {
	_, catalog, client, err := openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close(context.Background()) }()

	for _, typ := range catalog.SingletonTypes() {
		rec, err := catalog.MustSingleton(typ).Get(ctx)
		if err != nil {
			return fmt.Errorf("seed %s: %w", typ, err)
		}
		logger.Infof("seed: %s ready (id=%s)", typ, rec.ID())
	}
	return nil
}

func serve(ctx context.Context) error {
	cfg, catalog, client, err := openCatalog()
	if err != nil {
		return err
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v minio=%v resend=%v",
		cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Addr() != "",
		cfg.MinIO.Endpoint != "", cfg.Notify.ResendAPIKey != "")

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	checks := map[string]func(context.Context) error{}

	// Redis is optional: gate storage and the limiter fall back to memory.
	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s not reachable yet: %v", addr, err)
		}
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var store session.Storage
	if rdb != nil {
		store = session.NewRedisStorage(rdb, "gate:", cfg.Session.TTL)
		logger.Infof("using Redis for admin gate storage")
	} else {
		store = session.NewMemoryStorage(cfg.Session.TTL)
		logger.Warnf("using in-memory admin gate storage; logins do not survive restarts")
	}
	secret, err := session.NewSecret(cfg.Admin.Password, cfg.Admin.PasswordHash)
	if err != nil {
		return fmt.Errorf("admin secret: %w", err)
	}
	gates := session.NewGates(store, secret, cfg.Admin.LoginDelay)

	// forms and login get independent budgets
	newLimiter := func(scope string) gin.HandlerFunc {
		if !cfg.RateLimit.Enabled {
			return nil
		}
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			return middleware.RedisRateLimitMiddleware(rdb, scope, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		}
		return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notify.ResendAPIKey != "" {
		n, err := notify.NewResendNotifier(cfg.Notify.ResendAPIKey, cfg.Notify.From, cfg.Notify.To)
		if err != nil {
			logger.Warnf("notifications disabled: %v", err)
		} else {
			notifier = n
		}
	}

	var mediaStore media.Store
	if cfg.MinIO.Endpoint != "" {
		m, err := media.NewMinIOStore(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("media uploads disabled: %v", err)
		} else {
			mediaStore = m
		}
	}

	if cfg.Server.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handlers.NewRouter(handlers.Deps{
		Catalog: catalog,
		Gates:   gates,
		Cookie: middleware.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secret: []byte(cfg.Session.Secret),
			TTL:    cfg.Session.TTL,
			Secure: cfg.Server.Production(),
		},
		Notifier: notifier,
		Media:    mediaStore,
		Limit:      newLimiter("forms"),
		LoginLimit: newLimiter("login"),
		Checks:     checks,
	}, cors(), gin.Logger(), gin.Recovery())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting site backend on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if err := client.Close(shutdownCtx); err != nil {
		logger.Warnf("mongo disconnect: %v", err)
	}
	return nil
}

// cors answers preflight requests for the public API.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
