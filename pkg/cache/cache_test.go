package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "listing:/simple/"); hit || err != nil {
		t.Fatalf("Get() on empty cache = %v, %v; want miss", hit, err)
	}

	page := []byte(`<a href="/simple/a/">a</a>`)
	if err := c.Set(ctx, "listing:/simple/", page, time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, hit, err := c.Get(ctx, "listing:/simple/")
	if err != nil || !hit {
		t.Fatalf("Get() = %v, %v; want hit", hit, err)
	}
	if string(got) != string(page) {
		t.Errorf("Get() = %q, want %q", got, page)
	}

	if err := c.Delete(ctx, "listing:/simple/"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "listing:/simple/"); hit {
		t.Error("Get() after Delete should miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "key", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("Get() of expired entry = %v, %v; want miss", hit, err)
	}
}

func TestFileCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	fc := c.(*FileCache)

	path := fc.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("Get() of corrupt entry = %v, %v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCache_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for i := 0; i < 5; i++ {
		if err := c.Set(ctx, "same", []byte("v"), 0); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
	}

	var files int
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files++
		}
		return nil
	})
	if files != 1 {
		t.Errorf("found %d files, want 1", files)
	}
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	base, _ := NewFileCache(t.TempDir())

	pypi := Namespace(base, "pypi.org:")
	mirror := Namespace(base, "mirror:")

	if err := pypi.Set(ctx, "/simple/", []byte("pypi"), 0); err != nil {
		t.Fatal(err)
	}
	if err := mirror.Set(ctx, "/simple/", []byte("mirror"), 0); err != nil {
		t.Fatal(err)
	}

	got, _, _ := pypi.Get(ctx, "/simple/")
	if string(got) != "pypi" {
		t.Errorf("pypi namespace = %q", got)
	}
	got, _, _ = base.Get(ctx, "mirror:/simple/")
	if string(got) != "mirror" {
		t.Errorf("base lookup of prefixed key = %q", got)
	}

	nested := Namespace(pypi, "listing:")
	if err := nested.Set(ctx, "k", []byte("n"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := base.Get(ctx, "pypi.org:listing:k"); !hit {
		t.Error("nested namespace should concatenate prefixes")
	}

	if Namespace(base, "") != base {
		t.Error("empty prefix should return the cache unchanged")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}
