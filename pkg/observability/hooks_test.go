package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Studio hooks
	s := NoopStudioHooks{}
	s.OnImport(ctx, 3, 1)
	s.OnExtract(ctx, "asset-1", 400, 200)
	s.OnPromote(ctx, "asset-2")
	s.OnHistoryMove(ctx, "undo", 2)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "edit")
	c.OnCacheMiss(ctx, "edit")
	c.OnCacheSet(ctx, "edit", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "api.example.com", "/v1/edits")
	h.OnResponse(ctx, "POST", "api.example.com", "/v1/edits", 200, time.Second)
	h.OnError(ctx, "POST", "api.example.com", "/v1/edits", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Studio().(NoopStudioHooks); !ok {
		t.Error("Studio() should return NoopStudioHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customStudio := &testStudioHooks{}
	SetStudioHooks(customStudio)
	if Studio() != customStudio {
		t.Error("SetStudioHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Studio().(NoopStudioHooks); !ok {
		t.Error("Reset() should restore NoopStudioHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testStudioHooks{}
	SetStudioHooks(custom)

	// Setting nil should be ignored
	SetStudioHooks(nil)

	if Studio() != custom {
		t.Error("SetStudioHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testStudioHooks struct{ NoopStudioHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
