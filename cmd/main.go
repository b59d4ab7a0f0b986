package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/golang-cz/devslog"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/quillside/weblog/internal/config"
	"github.com/quillside/weblog/internal/core"
)

type application struct {
	config   *config.Config
	logger   *slog.Logger
	core     *core.Core
	sessions *scs.SessionManager
	wg       sync.WaitGroup
}

func main() {
	logger := configLogger()
	logger.Info("Starting application...")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Error loading configuration", "error", err)
		os.Exit(1)
	}

	db, err := openDBConnection(cfg)
	if err != nil {
		logger.Error("Error opening database connection", "error", err)
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("Database connection established successfully")

	coreService := core.NewCore(db, logger)
	if err := coreService.EnsureSchema(context.Background()); err != nil {
		logger.Error("Error installing database schema", "error", err)
		os.Exit(1)
	}

	sessions, err := newSessionManager(db, cfg)
	if err != nil {
		logger.Error("Error installing session store", "error", err)
		os.Exit(1)
	}

	app := application{
		config:   cfg,
		logger:   logger,
		core:     coreService,
		sessions: sessions,
		wg:       sync.WaitGroup{},
	}

	if err := app.serve(); err != nil {
		logger.Error("Error starting server", "error", err)
		os.Exit(1)
	}
}

func configLogger() *slog.Logger {
	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			NewLineAfterLog: false,
		})

	logger := slog.New(handler)
	return logger
}

func openDBConnection(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	// sqlite is a single-writer embedded store.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func newSessionManager(db *sqlx.DB, cfg *config.Config) (*scs.SessionManager, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry);`)
	if err != nil {
		return nil, err
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db.DB)
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	return sessionManager, nil
}
