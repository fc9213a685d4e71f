package flowstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func exerciseBackend(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()
	a := For(backend, "terminal-a")
	b := For(backend, "terminal-b")

	if _, ok, err := a.Load(ctx); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	if err := a.Save(ctx, []byte(`{"selectedRoomType":"DELUXE"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := a.Save(ctx, []byte(`{"selectedRoomType":"FAMILY"}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	payload, ok, err := a.Load(ctx)
	if err != nil || !ok || string(payload) != `{"selectedRoomType":"FAMILY"}` {
		t.Fatalf("load: %q ok=%v err=%v", payload, ok, err)
	}
	if _, ok, _ := b.Load(ctx); ok {
		t.Fatal("terminals must not share snapshots")
	}
	if err := a.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, err := a.Load(ctx); err != nil || ok {
		t.Fatalf("after clear: ok=%v err=%v", ok, err)
	}
	if err := a.Clear(ctx); err != nil {
		t.Fatalf("clearing twice should be fine: %v", err)
	}
	if _, _, err := backend.Get(ctx, "  "); err == nil {
		t.Fatal("blank key should be rejected")
	}
}

func TestKeyFor(t *testing.T) {
	if KeyFor("") != "walkInFlowState" {
		t.Fatalf("unexpected bare key %q", KeyFor(""))
	}
	if KeyFor(" t1 ") != "walkInFlowState:t1" {
		t.Fatalf("unexpected terminal key %q", KeyFor(" t1 "))
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestMemoryCopiesPayload(t *testing.T) {
	m := NewMemory()
	payload := []byte("abc")
	if err := m.Put(context.Background(), "k", payload); err != nil {
		t.Fatalf("put: %v", err)
	}
	payload[0] = 'x'
	got, _, _ := m.Get(context.Background(), "k")
	if string(got) != "abc" {
		t.Fatalf("stored payload was aliased: %q", got)
	}
}

func TestSQLiteBackend(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "flow.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	exerciseBackend(t, store)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := For(store, "t1").Save(context.Background(), []byte(`{"includeBreakfast":true}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	payload, ok, err := For(reopened, "t1").Load(context.Background())
	if err != nil || !ok || string(payload) != `{"includeBreakfast":true}` {
		t.Fatalf("after reopen: %q ok=%v err=%v", payload, ok, err)
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite(" "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestRedisBackend(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	store := NewRedis(client, time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	exerciseBackend(t, store)
}
