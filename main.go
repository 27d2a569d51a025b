package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"escapenote-server/auth"
	"escapenote-server/cache"
	"escapenote-server/config"
	"escapenote-server/db"
	"escapenote-server/externals"
	"escapenote-server/handlers"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// retrieve configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// get port from flag, the environment is the default
	port := flag.String("port", cfg.Port, "Port on which the server listens")
	flag.Parse()
	cfg.Port = *port

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// init db
	database, err := db.InitDB(cfg)
	if err != nil || database == nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}
	defer func() {
		err := db.CloseDBConnection(database)
		if err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}
	}()
	err = db.Migrate(database)
	if err != nil {
		logger.Fatal("Error migrating database", zap.Error(err))
	}

	deps := handlers.Dependencies{
		Config: cfg,
		Logger: logger,
		DB:     database,
		Tokens: auth.NewTokenIssuer(cfg),
		Mailer: externals.NewLogSender(logger),
		SMS:    externals.NewLogSender(logger),
	}
	err = initExternals(ctx, cfg, logger, &deps)
	if err != nil {
		logger.Fatal("Error initializing external services", zap.Error(err))
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer func() {
			_ = client.Close()
		}()
		deps.RecommendCache = cache.NewRecommendCache(client, cache.RecommendExpiration)
	}

	server := SetupServer(cfg, handlers.NewHandler(deps))
	go func() {
		logger.Info("Server listening", zap.String("addr", server.Addr), zap.String("env", cfg.AppEnv), zap.String("testMode", cfg.TestMode))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("Error shutting down server", zap.Error(err))
	}
}

// initExternals replaces the log senders and fakes with the real services.
// In test mode social logins are faked and nothing leaves the process.
func initExternals(ctx context.Context, cfg config.Config, logger *zap.Logger, deps *handlers.Dependencies) error {
	if cfg.SMTPHost != "" {
		deps.Mailer = externals.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}

	if cfg.IsTestMode() {
		logger.Warn("Test mode, social logins are not verified")
		deps.Social = externals.FakeVerifier{}
		deps.Images = externals.NewLogSender(logger)
		return nil
	}

	app, err := externals.InitializeFirebase(ctx, cfg.FirebaseCredentialsFile, cfg.StorageBucket)
	if err != nil {
		return err
	}
	deps.Social = externals.NewFirebaseVerifier(app)
	deps.Images, err = externals.NewFirebaseImageStore(ctx, app)
	if err != nil {
		return err
	}

	deps.SMS, err = externals.NewSNSSender(ctx, cfg.AWSRegion)
	return err
}
