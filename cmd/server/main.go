package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"printerstore/internal/app"
	"printerstore/internal/config"
	"printerstore/internal/mail"
	"printerstore/internal/server"
	"printerstore/internal/storage"
	"printerstore/internal/usertoken"
	"printerstore/internal/util"
)

func main() {
	// optional; env vars win over both .env and config.yaml
	_ = godotenv.Load()

	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	jwtTTL, err := config.ParseJWTTTL(cfg.JWTTTL)
	if err != nil {
		log.Fatalf("failed to parse JWT TTL: %v", err)
	}
	jwtLeeway, err := config.ParseJWTLeeway(cfg.JWTLeeway)
	if err != nil {
		log.Fatalf("failed to parse JWT leeway: %v", err)
	}
	cacheTTL, err := config.ParseCatalogCacheTTL(cfg.CatalogCacheTTL)
	if err != nil {
		log.Fatalf("failed to parse catalog cache TTL: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	tokens, err := usertoken.NewAuthority(usertoken.Config{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      jwtTTL,
		Leeway:   jwtLeeway,
	})
	if err != nil {
		log.Fatalf("failed to init token authority: %v", err)
	}

	var images storage.ImageStore
	if cfg.MinioEndpoint != "" {
		images, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("failed to init object store: %v", err)
		}
	}

	var mailer mail.Sender = mail.LogSender{}
	if cfg.SMTPHost != "" {
		mailer, err = mail.NewSMTPSender(mail.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			log.Fatalf("failed to init mailer: %v", err)
		}
	}

	appCore, err := app.New(app.Config{
		DatabaseURL:     cfg.DatabaseURL,
		RedisAddr:       cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		CatalogCacheTTL: cacheTTL,
		SalesEmail:      cfg.SalesEmail,
		UploadDir:       cfg.UploadDir,
		Images:          images,
		Mailer:          mailer,
		Tokens:          tokens,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}
	if err := appCore.SeedAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	trustedProxies, err := util.NewTrustedProxies(config.ParseTrustedProxyCIDRs(cfg.TrustedProxyCIDRs))
	if err != nil {
		log.Fatalf("failed to parse trusted proxies: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:                        appCore,
		RedisAddr:                  cfg.RedisAddr,
		RedisPassword:              cfg.RedisPassword,
		LoginRateLimitPerMinute:    cfg.LoginRateLimitPerMinute,
		RegisterRateLimitPerMinute: cfg.RegisterRateLimitPerMinute,
		ContactRateLimitPerMinute:  cfg.ContactRateLimitPerMinute,
		MaxUploadBytes:             int64(cfg.MaxUploadMB) * 1024 * 1024,
		MaxUploadFiles:             cfg.MaxUploadFiles,
		TrustedProxies:             trustedProxies,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
