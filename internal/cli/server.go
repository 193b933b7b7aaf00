package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Sobaasvini/online-quiz-application/internal/app"
	"github.com/Sobaasvini/online-quiz-application/internal/config"
	"github.com/Sobaasvini/online-quiz-application/internal/infra/memory"
	infrapg "github.com/Sobaasvini/online-quiz-application/internal/infra/postgres"
	infraredis "github.com/Sobaasvini/online-quiz-application/internal/infra/redis"
	transport "github.com/Sobaasvini/online-quiz-application/internal/transport/http"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
	snapshotTTL := config.TTLDuration(cfg.Quiz.SnapshotTTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	// Catalog: postgres behind a TTL snapshot cache when configured,
	// otherwise the in-memory reference store.
	var quizRepo app.QuizRepository = memory.NewQuizRepository()
	if pool != nil {
		quizRepo = memory.NewCachingQuizRepository(infrapg.NewQuizRepository(pool), snapshotTTL)
	}

	var ledger app.AttemptLedger = memory.NewAttemptLedger()
	switch {
	case pool != nil:
		ledger = infrapg.NewAttemptLedger(pool)
	case redisClient != nil:
		ledger = infraredis.NewAttemptLedger(redisClient)
	}

	var credentials app.CredentialStore = memory.NewCredentialStore()
	if redisClient != nil {
		credentials = infraredis.NewCredentialStore(redisClient)
	}

	var sessionStore app.SessionStore = memory.NewSessionStore()
	if redisClient != nil {
		sessionStore = infraredis.NewSessionStore(redisClient, sessionTTL)
	}

	identity := app.NewIdentityService(credentials, app.BcryptVerifier{Cost: cfg.Auth.BcryptCost})
	catalog := app.NewCatalogService(quizRepo)
	sessions := app.NewSessionManager(catalog, sessionStore, ledger)
	history := app.NewHistoryService(ledger)

	adminUser := cfg.Auth.AdminUsername
	if adminUser == "" {
		adminUser = defaultAdminUsername
	}
	adminPass := cfg.Auth.AdminPassword
	if adminPass == "" {
		adminPass = defaultAdminPassword
	}
	if err := identity.SeedAdmin(ctx, adminUser, adminPass); err != nil {
		return err
	}

	wsHandler := transport.NewWSHandler(identity, catalog, sessions, history)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz server on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
