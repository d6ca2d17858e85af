// Package client implements the hybrid authentication layer consumed by the
// IMSOP dashboard UI.
//
// Two identity providers implement the same Provider contract: a demo
// provider backed by a fixed in-memory roster (offline demos, canned
// accounts) and a remote provider backed by the dashboard's REST API. A
// Selector decides which provider owns an operation - by email pattern at
// login time, by stored token prefix afterwards - and the Session facade is
// the single entry point UI code talks to.
//
// Credentials live in a small key/value Store. The Fallback wrapper probes
// the persistent store once and silently reroutes to an in-memory store when
// persistence is unavailable (private browsing and similar environments).
//
//	store := client.NewFallback(persistent)
//	session := client.New(client.Config{Store: store, BaseURL: apiURL})
//	res := session.Login("admin@imsop.io", "admin123")
package client
