package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/secure-profile-hub/internal/config"
	"github.com/AnshRaj112/secure-profile-hub/internal/database"
	"github.com/AnshRaj112/secure-profile-hub/internal/handlers"
	"github.com/AnshRaj112/secure-profile-hub/internal/logger"
	"github.com/AnshRaj112/secure-profile-hub/internal/middleware"
	"github.com/AnshRaj112/secure-profile-hub/internal/routes"
	"github.com/AnshRaj112/secure-profile-hub/internal/services"
	"github.com/AnshRaj112/secure-profile-hub/internal/store"
	"github.com/AnshRaj112/secure-profile-hub/pkg/utils"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		log.Printf("server exited: %v", err)
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Every early return passes through the
// deferred cleanups, so main is the only place that exits.
func run(ctx context.Context, logOutput io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	appLogger, err := logger.New(logOutput, cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		appLogger.Info("generate an encryption key with: openssl rand -base64 32")
		return fmt.Errorf("invalid configuration: %w", err)
	}

	users, closeStore, err := openUserStore(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("open %s user store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	key, _ := cfg.EncryptionKeyBytes()
	cipher, err := utils.NewSecretCipher(key)
	if err != nil {
		return fmt.Errorf("initialise cipher: %w", err)
	}
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	hasher := utils.NewPasswordHasher(utils.DefaultArgon2Params())

	credentials, err := services.NewCredentialService(users, hasher, cipher, tokens, appLogger)
	if err != nil {
		return fmt.Errorf("initialise credential service: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(appLogger, cfg.TrustProxy))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	if cfg.IsProduction() {
		r.Use(middleware.StrictTransportSecurity)
	}

	routes.SetupRoutes(r, handlers.NewAuthHandler(credentials, appLogger), tokens, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("secure-profile-hub backend running", "port", cfg.Port, "store", cfg.StoreDriver, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func openUserStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.UserStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := database.ConnectPostgres(ctx, cfg.PostgresURI, logger)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresUserStore(db), func() { _ = db.Close() }, nil

	case config.StoreMemory:
		logger.Warn("using in-memory user store; data is lost on restart")
		return store.NewMemoryUserStore(), func() {}, nil

	default:
		client, err := database.Connect(ctx, cfg.MongoURI, logger)
		if err != nil {
			return nil, nil, err
		}
		users := store.NewMongoUserStore(client.Database(database.DatabaseName(cfg.MongoURI, cfg.MongoDatabase)))
		if err := users.EnsureIndexes(ctx); err != nil {
			_ = database.Disconnect(client)
			return nil, nil, err
		}
		logger.Info("MongoDB user indexes ensured")
		return users, func() { _ = database.Disconnect(client) }, nil
	}
}
