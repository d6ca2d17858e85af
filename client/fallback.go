package client

import "sync"

const (
	probeKey   = "__storage_probe__"
	probeValue = "probe"
)

// Fallback wraps a persistent Store and reroutes all traffic to an internal
// in-memory store when the wrapped store does not actually retain writes
// (private browsing blocks persistent storage while keeping the API
// callable).
//
// Detection is a single sentinel write/read/delete cycle, performed on first
// access and memoized for the lifetime of the process. Probing per call
// would hammer the storage layer for no benefit; once a store fails the
// probe it stays failed.
type Fallback struct {
	primary Store
	memory  *Memory
	once    sync.Once
	usable  bool
}

func NewFallback(primary Store) *Fallback {
	return &Fallback{primary: primary, memory: NewMemory()}
}

// active returns the store all reads and writes go to.
func (f *Fallback) active() Store {
	f.once.Do(func() {
		f.primary.Set(probeKey, probeValue)
		echoed := f.primary.Get(probeKey)
		f.primary.Remove(probeKey)
		f.usable = echoed == probeValue
	})
	if f.usable {
		return f.primary
	}
	return f.memory
}

func (f *Fallback) Get(key string) string {
	return f.active().Get(key)
}

func (f *Fallback) Set(key, value string) {
	f.active().Set(key, value)
}

func (f *Fallback) Remove(key string) {
	f.active().Remove(key)
}
