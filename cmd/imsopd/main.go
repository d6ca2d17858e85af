// Command imsopd serves the IMSOP dashboard backend: the auth API, the
// operations endpoints, and telemetry ingest, backed by Postgres.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/imsop/hybridauth"
	gormstores "github.com/imsop/hybridauth/stores/gorm"
)

// demoSeed mirrors the client side demo roster so the canned accounts also
// work against a real backend.
var demoSeed = []struct {
	email, password, name, role string
}{
	{"admin@imsop.io", "admin123", "Admin User", hybridauth.RoleAdmin},
	{"engineer@imsop.io", "engineer123", "Engineer User", hybridauth.RoleEngineer},
	{"analyst@imsop.io", "analyst123", "Analyst User", hybridauth.RoleAnalyst},
	{"demo@imsop.io", "demo123", "Demo User", hybridauth.RoleUser},
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres dbname=imsop sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := gormstores.AutoMigrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	srv := hybridauth.New("imsop")
	srv.UserStore = gormstores.NewUserStore(db)
	srv.TokenStore = gormstores.NewTokenStore(db)
	srv.Shipments = gormstores.NewShipmentStore(db)
	srv.Orders = gormstores.NewOrderStore(db)
	srv.Telemetry = gormstores.NewTelemetryStore(db)

	seedDemoUsers(srv.UserStore)

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("imsopd listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("imsopd stopped")
}

// seedDemoUsers creates the demo accounts if they do not exist yet. Existing
// accounts are left untouched.
func seedDemoUsers(users hybridauth.UserStore) {
	for _, seed := range demoSeed {
		if _, err := users.GetUserByEmail(seed.email); err == nil {
			continue
		}
		if _, err := users.CreateUser(seed.email, seed.password, seed.name, seed.role); err != nil {
			slog.Warn("failed to seed demo user", "email", seed.email, "error", err)
			continue
		}
		slog.Info("seeded demo user", "email", seed.email)
	}
}
