package client

import "sync"

// Well-known credential store keys. The token key is shared by both
// providers; the cached user lives under a per-provider key so an
// unconditional logout can sweep everything.
const (
	TokenKey      = "imsop_token"
	DemoUserKey   = "imsop_session"
	RemoteUserKey = "imsop_user"
)

// Store is a minimal key/value credential store. All methods are total:
// implementations swallow I/O failures rather than surfacing them, matching
// the browser-storage contract the dashboard was built against. Get returns
// "" for absent keys.
type Store interface {
	Get(key string) string
	Set(key, value string)
	Remove(key string)
}

// Memory is a map-backed Store. It is the fallback target when persistent
// storage is unavailable, and handy in tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
