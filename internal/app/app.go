package app

import (
	"fmt"
	"strings"
	"time"

	"printerstore/internal/mail"
	"printerstore/internal/storage"
	"printerstore/internal/usertoken"
	"printerstore/pkg/store"
)

const defaultUploadDir = "uploads"

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	CatalogCacheTTL time.Duration
	SalesEmail      string
	UploadDir       string

	Store  store.Store
	Images storage.ImageStore
	Mailer mail.Sender
	Tokens *usertoken.Authority
}

// App is the core application service wiring storage, image files, mail
// and token issuing together.
type App struct {
	store      store.Store
	images     storage.ImageStore
	mailer     mail.Sender
	tokens     *usertoken.Authority
	cache      *catalogCache
	salesEmail string
}

// New constructs the application. Store, image store and mailer fall
// back to database, local-disk and log-only defaults when not injected.
func New(cfg Config) (*App, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token authority required")
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	images := cfg.Images
	if images == nil {
		dir := cfg.UploadDir
		if dir == "" {
			dir = defaultUploadDir
		}
		var err error
		images, err = storage.NewFileStore(dir)
		if err != nil {
			return nil, fmt.Errorf("init image store: %w", err)
		}
	}

	mailer := cfg.Mailer
	if mailer == nil {
		mailer = mail.LogSender{}
	}

	var cache *catalogCache
	if strings.TrimSpace(cfg.RedisAddr) != "" && cfg.CatalogCacheTTL > 0 {
		cache = newCatalogCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CatalogCacheTTL)
	}

	return &App{
		store:      dataStore,
		images:     images,
		mailer:     mailer,
		tokens:     cfg.Tokens,
		cache:      cache,
		salesEmail: strings.TrimSpace(cfg.SalesEmail),
	}, nil
}

// Images returns the configured image store, for the HTTP upload-serving
// route.
func (a *App) Images() storage.ImageStore {
	return a.images
}
