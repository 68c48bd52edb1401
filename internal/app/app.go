package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"tourismBooking/internal/app/server"
	"tourismBooking/internal/auth"
	"tourismBooking/internal/catalog"
	"tourismBooking/internal/config"
	"tourismBooking/internal/db"
	grpcserver "tourismBooking/internal/grpc"
	"tourismBooking/internal/web"
	"tourismBooking/models"
	"tourismBooking/pkg/logger"
)

// Credentials builds the role -> connection parameters table from cfg. Every
// role shares host and database and differs only in its login.
func Credentials(cfg *config.Config) (*db.Router, error) {
	byRole := make(map[models.Role]db.Params, len(models.Roles()))
	for _, r := range models.Roles() {
		c := cfg.Database.Credential(r)
		byRole[r] = db.Params{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     c.User,
			Password: c.Password,
			Database: cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		}
	}
	return db.NewRouter(byRole)
}

// SessionStore returns the configured session backend and a function that
// releases it.
func SessionStore(cfg *config.Config) (auth.Store, func() error, error) {
	opts := auth.CookieOptions{Name: cfg.Session.CookieName, TTL: cfg.Session.TTL, Secure: cfg.Session.Secure}
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		return auth.NewRedisStore(client, opts), client.Close, nil
	case "cookie":
		st, err := auth.NewCookieStore(cfg.Session.Secret, opts)
		if err != nil {
			return nil, nil, err
		}
		return st, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unsupported session backend %q", cfg.Session.Backend)
}

// Migrate applies pending migrations with the admin credentials, or with
// rollback set reverts only the last recorded one.
func Migrate(cfg *config.Config, rollback bool) error {
	creds, err := Credentials(cfg)
	if err != nil {
		return err
	}
	dsn := db.NewConnector(cfg.Database.Driver).DSN(creds.Resolve(string(models.RoleAdmin)))
	d, err := db.Connect(cfg.Database.Driver, dsn)
	if err != nil {
		return err
	}
	defer d.Close()
	if rollback {
		return db.RollbackLast(d, cfg.Database.Driver)
	}
	return db.Migrate(d, cfg.Database.Driver)
}

// Run wires every component from cfg and serves until SIGINT/SIGTERM or a
// listener failure.
func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: "+cfg.Env, "config", cfg.String())

	if cfg.Database.Migrate {
		if err := Migrate(cfg, false); err != nil {
			log.FatalErr("failed to apply migrations", err)
		}
	}

	creds, err := Credentials(cfg)
	if err != nil {
		log.FatalErr("invalid database credentials", err)
	}

	var connOpts []db.Option
	if cfg.Database.Pooled {
		connOpts = append(connOpts, db.WithPool(cfg.Database.MaxOpenConns))
	}
	connector := db.NewConnector(cfg.Database.Driver, connOpts...)
	defer func() {
		if err := connector.Close(); err != nil {
			log.ErrorErr("failed to close connection pools", err)
		}
	}()

	store, closeStore, err := SessionStore(cfg)
	if err != nil {
		log.FatalErr("failed to create session store", err)
	}
	defer func() { _ = closeStore() }()

	packages := catalog.New(web.CatalogLoader(connector, creds.Resolve(string(models.RoleAdmin))), cfg.Catalog.TTL)
	if err := packages.Refresh(context.Background()); err != nil {
		log.Warn("initial package catalog load failed", "error", err.Error())
	}

	h := web.NewHandler(web.Options{
		Log:               log,
		Credentials:       creds,
		Opener:            connector,
		Driver:            cfg.Database.Driver,
		Catalog:           packages,
		Throttle:          auth.NewLoginThrottle(cfg.Auth.LoginRate, cfg.Auth.LoginBurst),
		StrictRoles:       cfg.Database.StrictRoles,
		AllowRegistration: cfg.Auth.AllowRegistration,
	})
	r := web.NewRouter(log, h, store, web.RouterOptions{
		Templates:      cfg.HTTP.Templates,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	})

	var stopGRPC func(context.Context) error
	if cfg.GRPC.Address != "" {
		stopGRPC, err = grpcserver.StartGRPC(cfg.GRPC.Address, h.Probe, log)
		if err != nil {
			log.FatalErr("failed to start grpc health server", err)
		}
		log.Info("gRPC health server listening", "address", cfg.GRPC.Address)
	}

	srv := server.New(cfg.HTTP.Address, cfg.HTTP.Timeout, cfg.HTTP.IdleTimeout, r)
	srv.Start()
	log.Info("HTTP server listening", "address", cfg.HTTP.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("http server failed", err)
	}

	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("http shutdown failed", err)
	}
	if stopGRPC != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stopGRPC(ctx); err != nil {
			log.ErrorErr("grpc shutdown failed", err)
		}
	}
}
