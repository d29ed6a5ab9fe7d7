package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	// Get always misses
	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("NullCache.Get should always miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set is a no-op
	if err := c.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Still misses after Set
	_, ok, _ = c.Get(ctx, "key")
	if ok {
		t.Error("NullCache should not store values")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	// Miss before Set
	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected miss before Set")
	}

	// Set then Get
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("data = %q, want %q", data, "value")
	}

	// Delete then miss
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, ok, _ = c.Get(ctx, "key")
	if ok {
		t.Error("expected miss after Delete")
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected miss after expiration")
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("data = %q, want %q", data, "value")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, ok, _ = c.Get(ctx, "key")
	if ok {
		t.Error("expected miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key failed: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	h3 := Hash([]byte("world"))

	if h1 != h2 {
		t.Error("same input should produce same hash")
	}
	if h1 == h3 {
		t.Error("different input should produce different hash")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 (sha256 hex)", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	t.Run("HTTPKey", func(t *testing.T) {
		key := k.HTTPKey("editservice", "abc123")
		if key != "http:editservice:abc123" {
			t.Errorf("HTTPKey = %q", key)
		}
	})

	t.Run("EditKey", func(t *testing.T) {
		base := k.EditKey("remove background", []string{"h1"}, EditKeyOpts{Model: "v2"})

		// Deterministic
		if again := k.EditKey("remove background", []string{"h1"}, EditKeyOpts{Model: "v2"}); again != base {
			t.Error("same inputs should produce same key")
		}

		// Sensitive to each input
		if k.EditKey("blur background", []string{"h1"}, EditKeyOpts{Model: "v2"}) == base {
			t.Error("different instruction should produce different key")
		}
		if k.EditKey("remove background", []string{"h2"}, EditKeyOpts{Model: "v2"}) == base {
			t.Error("different image hash should produce different key")
		}
		if k.EditKey("remove background", []string{"h1", "h2"}, EditKeyOpts{Model: "v2"}) == base {
			t.Error("additional image hash should produce different key")
		}
		if k.EditKey("remove background", []string{"h1"}, EditKeyOpts{Model: "v3"}) == base {
			t.Error("different model should produce different key")
		}
	})

	t.Run("ArtifactKey", func(t *testing.T) {
		base := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "png"})

		if again := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "png"}); again != base {
			t.Error("same inputs should produce same key")
		}
		if k.ArtifactKey("hash2", ArtifactKeyOpts{Format: "png"}) == base {
			t.Error("different content hash should produce different key")
		}
		if k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "jpeg"}) == base {
			t.Error("different format should produce different key")
		}
	})
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "ws:abc:")

	httpKey := scoped.HTTPKey("editservice", "key1")
	if httpKey != "ws:abc:"+inner.HTTPKey("editservice", "key1") {
		t.Errorf("HTTPKey not prefixed: %q", httpKey)
	}

	editKey := scoped.EditKey("crop", []string{"h1"}, EditKeyOpts{})
	if editKey != "ws:abc:"+inner.EditKey("crop", []string{"h1"}, EditKeyOpts{}) {
		t.Errorf("EditKey not prefixed: %q", editKey)
	}

	artifactKey := scoped.ArtifactKey("hash1", ArtifactKeyOpts{Format: "png"})
	if artifactKey != "ws:abc:"+inner.ArtifactKey("hash1", ArtifactKeyOpts{Format: "png"}) {
		t.Errorf("ArtifactKey not prefixed: %q", artifactKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	key := scoped.HTTPKey("ns", "k")
	if key != "p:http:ns:k" {
		t.Errorf("HTTPKey = %q, want %q", key, "p:http:ns:k")
	}
}

func TestRetryableError(t *testing.T) {
	base := errors.New("boom")

	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}

	wrapped := Retryable(base)
	if !IsRetryable(wrapped) {
		t.Error("wrapped error should be retryable")
	}
	if IsRetryable(base) {
		t.Error("unwrapped error should not be retryable")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("non-retryable fails immediately", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return errors.New("permanent")
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("success on first attempt", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("transient"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
