package repos_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"smartx/internal/store"
)

// flakyMedium accepts the probe and reads but can be told to fail writes.
type flakyMedium struct {
	mu        sync.Mutex
	doc       []byte
	failWrite bool
}

func (m *flakyMedium) Name() string { return "flaky" }

func (m *flakyMedium) Probe(ctx context.Context) error { return nil }

func (m *flakyMedium) Read(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil, store.ErrNoSnapshot
	}
	return append([]byte(nil), m.doc...), nil
}

func (m *flakyMedium) Write(ctx context.Context, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return errors.New("medium unwritable")
	}
	m.doc = append([]byte(nil), doc...)
	return nil
}

func (m *flakyMedium) setFailWrite(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = v
}

// tickingClock advances one second on every call so timestamps differ.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t0 = t0.Add(time.Second)
		return t0
	}
}

func newCache(t *testing.T, m store.Medium) *store.Cache {
	t.Helper()
	return store.NewCache(store.NewHybridStore(m), store.WithClock(tickingClock()))
}
