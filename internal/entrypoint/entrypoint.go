package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lexibazaar/marketplace/internal/access"
	"github.com/lexibazaar/marketplace/internal/audit"
	"github.com/lexibazaar/marketplace/internal/auth"
	"github.com/lexibazaar/marketplace/internal/config"
	"github.com/lexibazaar/marketplace/internal/covers"
	"github.com/lexibazaar/marketplace/internal/database"
	dbaudit "github.com/lexibazaar/marketplace/internal/database/audit"
	"github.com/lexibazaar/marketplace/internal/database/dictionaries"
	"github.com/lexibazaar/marketplace/internal/database/progress"
	"github.com/lexibazaar/marketplace/internal/database/purchases"
	"github.com/lexibazaar/marketplace/internal/database/users"
	"github.com/lexibazaar/marketplace/internal/database/words"
	"github.com/lexibazaar/marketplace/internal/demo"
	http_controllers "github.com/lexibazaar/marketplace/internal/http"
	"github.com/lexibazaar/marketplace/internal/images"
	"github.com/lexibazaar/marketplace/internal/logging"
	"github.com/lexibazaar/marketplace/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()), zap.Duration("timeout", timeout))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Runs after in-flight requests finish so nothing they use is closed early.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	logger.Info("server exited")
	return nil
}

func Run(cfg *config.Config, version string) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting marketplace", zap.String("version", version))

	var demoMiddleware *demo.Middleware
	if cfg.Demo.Enabled {
		logger.Warn("demo mode enabled, write operations will be blocked", zap.String("db_path", cfg.Demo.DBPath))
		demoMiddleware = demo.NewMiddleware(true)
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = cfg.Demo.DBPath
	}

	if cfg.Auth.SecretKey == "" {
		secret, err := auth.GenerateSecret()
		if err != nil {
			return fmt.Errorf("failed to generate token secret: %w", err)
		}
		cfg.Auth.SecretKey = secret
		logger.Warn("AUTH_SECRET_KEY is not set, generated a random one; tokens will not survive a restart")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", zap.Error(err))
		}
	}()
	logger.Info("database ready", zap.String("driver", string(cfg.Database.Driver)))

	coverStore, err := covers.NewStore(cfg.Media.Root, cfg.Media.MaxUploadBytes)
	if err != nil {
		return fmt.Errorf("failed to initialize media root: %w", err)
	}

	var finder services.ImageFinder = images.NoopFinder{}
	if cfg.Images.UnsplashAccessKey != "" {
		finder = images.NewUnsplashClient(images.Config{
			AccessKey:  cfg.Images.UnsplashAccessKey,
			BaseURL:    cfg.Images.UnsplashBaseURL,
			Timeout:    cfg.Images.LookupTimeout,
			MaxRetries: uint(cfg.Images.MaxRetries),
		})
	} else {
		logger.Warn("UNSPLASH_ACCESS_KEY is not set, cover image lookup is disabled")
	}

	userRepo := users.NewRepository(db.DB)
	purchaseRepo := purchases.NewRepository(db.DB)
	auditor := audit.NewService(dbaudit.NewRepository(db.DB), logger.Named("audit"))

	deps := services.Dependencies{
		Dictionaries: dictionaries.NewRepository(db.DB),
		Words:        words.NewRepository(db.DB),
		Purchases:    purchaseRepo,
		Progress:     progress.NewRepository(db.DB),
		Users:        userRepo,
		Policy:       access.NewPolicy(purchaseRepo),
		Images:       finder,
		Covers:       coverStore,
		Auditor:      auditor,
		Logger:       logger.Named("services"),
		PurchaseCode: cfg.Purchase.Code,
	}

	tokens := auth.NewTokens(cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})

	if gin.Mode() == gin.DebugMode && cfg.Logging.Format == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:           db,
		Logger:             logger.Named("http"),
		Auditor:            auditor,
		AuthService:        auth.NewService(userRepo, tokens, cfg.Auth.BcryptCost),
		AuthMiddleware:     auth.NewMiddleware(tokens, userRepo),
		RateLimiter:        rateLimiter,
		Dictionaries:       services.NewDictionaryService(deps),
		Marketplace:        services.NewMarketplaceService(deps),
		Words:              services.NewWordService(deps),
		Purchases:          services.NewPurchaseService(deps),
		Progress:           services.NewProgressService(deps),
		Profiles:           services.NewProfileService(deps),
		MediaRoot:          coverStore.Root(),
		MaxUploadBytes:     cfg.Media.MaxUploadBytes,
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		DemoMiddleware:     demoMiddleware,
		Version:            version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		rateLimiter.Stop()
	}

	return Serve(router, cfg, logger, onShutdown)
}
