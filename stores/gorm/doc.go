// Package gorm provides GORM-backed implementations of the hybridauth store
// interfaces: users, password reset tokens, and the dashboard's shipments,
// orders and telemetry tables.
//
// Works with any GORM driver (PostgreSQL in production, sqlite in tests).
// Call AutoMigrate once at startup to create or update the schema.
package gorm
