package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"shree-admin/internal/audit"
	"shree-admin/internal/auth"
	"shree-admin/internal/backend"
	"shree-admin/internal/config"
	"shree-admin/internal/gate"
	"shree-admin/internal/http"
	"shree-admin/internal/media"
	"shree-admin/internal/notify"
	"shree-admin/internal/session"

	"github.com/joho/godotenv"
	glog "github.com/labstack/gommon/log"
)

const (
	envFilePath      = ".env"
	serverAddrPrefix = ":"
	signalBufferSize = 1
	logOutputFlags   = log.LstdFlags | log.Lshortfile
	loggerPrefix     = "shree-admin"
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	if err := godotenv.Load(envFilePath); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(logOutputFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Configuration loaded successfully")

	logger := glog.New(loggerPrefix)
	logger.SetLevel(glog.INFO)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	client := backend.New(cfg.Backend, logger)
	if !client.Configured() {
		log.Println("Warning: API_BASE_URL not set, backend calls will fail until it is configured")
	}

	var tokens *auth.TokenService
	var authenticator auth.Authenticator = client
	if cfg.Auth.LocalLoginEnabled() {
		tokens = auth.NewTokenService(cfg.Auth.Secret, cfg.Session.IdleTTL)
		authenticator = auth.NewLocalAuthenticator(cfg.Auth.Username, cfg.Auth.PasswordHash, tokens)
		log.Println("Local admin login enabled")
	}

	var uploader media.Uploader = media.DataURIUploader{}
	if cfg.Assets.S3Enabled() {
		s3Uploader, err := media.NewS3Uploader(cfg.Assets)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
		uploader = s3Uploader
		log.Println("S3 asset uploads enabled")
	}

	var recorder audit.Recorder = audit.Nop{}
	if cfg.Audit.Enabled() {
		pool, err := audit.Connect(ctx, cfg.Audit.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to audit database: %v", err)
		}
		defer pool.Close()
		recorder = audit.NewLogger(pool, tokens.Subject)
		log.Println("Audit database connection established")
	}

	scheduler := notify.NewScheduler()
	scheduler.Start()
	defer scheduler.Stop()

	store := session.NewStore(ctx, client, scheduler, cfg.Backend.PollInterval, cfg.Session.IdleTTL, logger)
	defer store.Stop()

	server := http.NewServer(&http.ServerDependencies{
		Config:        cfg,
		Gate:          gate.Default(),
		Authenticator: authenticator,
		Workspaces:    store,
		Uploader:      uploader,
		AuditLogger:   recorder,
		Logger:        logger,
	})

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
