package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := New(path, "")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if got := store.Get("imsop_token"); got != "" {
		t.Errorf(`Get() on empty store = %q, want ""`, got)
	}

	store.Set("imsop_token", "jwt-1")
	store.Set("imsop_user", `{"id":"u-1"}`)

	if got := store.Get("imsop_token"); got != "jwt-1" {
		t.Errorf("Get() = %q, want %q", got, "jwt-1")
	}

	store.Remove("imsop_token")
	if got := store.Get("imsop_token"); got != "" {
		t.Errorf("Get() after Remove = %q, want \"\"", got)
	}
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := New(path, "")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	first.Set("imsop_token", "jwt-1")

	second, err := New(path, "")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got := second.Get("imsop_token"); got != "jwt-1" {
		t.Errorf("reopened Get() = %q, want %q", got, "jwt-1")
	}
}

func TestStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store, err := New(path, "")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	store.Set("imsop_token", "jwt-1")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}
}

func TestStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := New(path, ""); err == nil {
		t.Fatal("New() must fail on a corrupt session file")
	}
}

func TestStoreDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store, err := New("", "imsop-test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if filepath.Base(store.Path()) != "session.json" {
		t.Errorf("default path = %q, want a session.json", store.Path())
	}
	if filepath.Base(filepath.Dir(store.Path())) != "imsop-test" {
		t.Errorf("default path = %q, want an imsop-test directory", store.Path())
	}
}
