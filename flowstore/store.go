// Package flowstore persists the walk-in flow snapshot of each front-desk terminal.
package flowstore

import (
	"context"
	"fmt"
	"strings"
)

// SnapshotKey is the key the flow snapshot lives under.
const SnapshotKey = "walkInFlowState"

// Backend is a small key/value store for opaque snapshot payloads.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// KeyFor returns the snapshot key of a terminal. An empty terminal gets the bare key.
func KeyFor(terminal string) string {
	terminal = strings.TrimSpace(terminal)
	if terminal == "" {
		return SnapshotKey
	}
	return SnapshotKey + ":" + terminal
}

// Scoped binds a backend to one terminal's snapshot key.
type Scoped struct {
	backend Backend
	key     string
}

func For(backend Backend, terminal string) *Scoped {
	return &Scoped{backend: backend, key: KeyFor(terminal)}
}

func (s *Scoped) Key() string { return s.key }

func (s *Scoped) Load(ctx context.Context) ([]byte, bool, error) {
	return s.backend.Get(ctx, s.key)
}

func (s *Scoped) Save(ctx context.Context, payload []byte) error {
	return s.backend.Put(ctx, s.key, payload)
}

func (s *Scoped) Clear(ctx context.Context) error {
	return s.backend.Delete(ctx, s.key)
}

func requireKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("snapshot key is required")
	}
	return key, nil
}
