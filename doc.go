// Package hybridauth implements the authentication backend for the IMSOP
// operations dashboard and the storage contracts it depends on.
//
// The package exposes a small REST API under /api/auth (login, register,
// current user, password reset, profile and password updates) plus the
// dashboard's operations and telemetry endpoints. Tokens are HS256 JWTs
// carried as bearer credentials; browser clients additionally get a cookie
// session so they survive without re-sending the header.
//
// # Layout
//
// Stores are interfaces (UserStore, TokenStore, ShipmentStore, OrderStore,
// TelemetryStore) so the server can be backed by anything; the GORM
// implementations live in stores/gorm. The interactive client half of the
// system - the hybrid demo/remote session layer consumed by the dashboard
// UI - lives in the client subpackage.
//
// # Basic Usage
//
//	db, _ := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	gormstores.AutoMigrate(db)
//
//	srv := hybridauth.New("imsop")
//	srv.UserStore = gormstores.NewUserStore(db)
//	srv.TokenStore = gormstores.NewTokenStore(db)
//	srv.Shipments = gormstores.NewShipmentStore(db)
//	srv.Orders = gormstores.NewOrderStore(db)
//	srv.Telemetry = gormstores.NewTelemetryStore(db)
//
//	http.ListenAndServe(":3001", srv.Handler())
package hybridauth
