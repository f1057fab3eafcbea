package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"smartx/internal/domain"
	applog "smartx/internal/log"
	"smartx/internal/metrics"
)

type Mode string

const (
	ModeUninitialized Mode = "uninitialized"
	ModeDurable       Mode = "durable"
	ModeMemoryOnly    Mode = "memory_only"
)

// Result reports what happened to a write. Accepted means the change is in
// memory; Persisted means it also reached the durable medium.
type Result struct {
	Accepted  bool `json:"accepted"`
	Persisted bool `json:"persisted"`
}

// Op is a single keyed mutation of a snapshot.
type Op func(s *domain.Snapshot)

type Status struct {
	Mode             Mode          `json:"mode"`
	Durable          bool          `json:"durable"`
	HasSnapshot      bool          `json:"hasSnapshot"`
	Medium           string        `json:"medium"`
	Counts           domain.Counts `json:"counts"`
	Digest           string        `json:"digest,omitempty"`
	LastPersistAt    string        `json:"lastPersistAt,omitempty"`
	LastPersistError string        `json:"lastPersistError,omitempty"`
}

type Option func(*HybridStore)

func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(h *HybridStore) { h.metrics = m }
}

// HybridStore holds the snapshot in memory and mirrors it to an optional
// durable medium. The first access probes the medium; the outcome decides the
// mode for the lifetime of the store. Medium failures never reach callers.
type HybridStore struct {
	mu      sync.Mutex
	medium  Medium
	mode    Mode
	snap    *domain.Snapshot
	metrics *metrics.StoreMetrics

	lastPersistAt time.Time
	lastErr       error
}

// NewHybridStore returns an uninitialized store. A nil medium means
// memory-only.
func NewHybridStore(m Medium, opts ...Option) *HybridStore {
	h := &HybridStore{medium: m, mode: ModeUninitialized}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *HybridStore) event() applog.StoreEvent {
	return applog.StoreEvent{Medium: h.mediumName(), Mode: string(h.mode)}
}

func (h *HybridStore) mediumName() string {
	if h.medium == nil {
		return "memory"
	}
	return h.medium.Name()
}

// ensureMode runs the one-time probe. Caller holds h.mu.
func (h *HybridStore) ensureMode() {
	if h.mode != ModeUninitialized {
		return
	}
	if h.medium == nil {
		h.mode = ModeMemoryOnly
		h.event().Info("store.init.memory_only", nil)
		h.metrics.SetDurable(false)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := h.medium.Probe(ctx); err != nil {
		h.mode = ModeMemoryOnly
		h.event().Warn("store.init.memory_only", err, nil)
		h.metrics.SetDurable(false)
		return
	}
	h.mode = ModeDurable
	h.event().Info("store.init.durable", nil)
	h.metrics.SetDurable(true)
}

func (h *HybridStore) read() (domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	b, err := h.medium.Read(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	var s domain.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.Snapshot{}, err
	}
	return s, nil
}

// loadLocked returns the held snapshot, filling it on first use.
func (h *HybridStore) loadLocked() *domain.Snapshot {
	h.ensureMode()
	if h.snap != nil {
		return h.snap
	}
	s := Seed()
	if h.mode == ModeDurable {
		loaded, err := h.read()
		switch {
		case err == nil:
			s = loaded
		case errors.Is(err, ErrNoSnapshot):
			h.event().Info("store.load.seed", nil)
		default:
			h.event().Warn("store.load.fail", err, map[string]any{"fallback": "seed"})
		}
	}
	h.snap = &s
	h.metrics.ObserveCounts(s.Counts())
	return h.snap
}

// persistLocked writes s to the medium in durable mode and reports whether it
// landed. Caller holds h.mu.
func (h *HybridStore) persistLocked(s domain.Snapshot) bool {
	if h.mode != ModeDurable {
		return false
	}
	b, err := json.Marshal(s)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		start := time.Now()
		err = h.medium.Write(ctx, b)
		cancel()
		h.metrics.ObservePersist(h.medium.Name(), time.Since(start).Seconds(), err)
	}
	if err != nil {
		h.lastErr = err
		h.event().Error("store.persist.fail", err, map[string]any{"bytes": len(b)})
		return false
	}
	h.lastErr = nil
	h.lastPersistAt = time.Now().UTC()
	return true
}

// Load returns the current snapshot. It never fails: on any read problem the
// seed snapshot is used.
func (h *HybridStore) Load() domain.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadLocked().Clone()
}

// CurrentSnapshot returns a copy of what is in memory, loading first if
// nothing is.
func (h *HybridStore) CurrentSnapshot() domain.Snapshot {
	return h.Load()
}

// Save replaces the snapshot wholesale and mirrors it to the medium.
func (h *HybridStore) Save(s domain.Snapshot) Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureMode()
	c := s.Clone()
	h.snap = &c
	h.metrics.ObserveCounts(c.Counts())
	return Result{Accepted: true, Persisted: h.persistLocked(c)}
}

// Apply runs op against the held snapshot and saves the result.
func (h *HybridStore) Apply(op Op) Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.loadLocked().Clone()
	op(&s)
	h.snap = &s
	h.metrics.ObserveCounts(s.Counts())
	return Result{Accepted: true, Persisted: h.persistLocked(s)}
}

// Reload drops the in-memory snapshot and reads the medium again. A medium
// holding no document yields the seed; any other read failure keeps the
// previous snapshot. In memory-only mode it is a plain Load.
func (h *HybridStore) Reload() domain.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureMode()
	if h.mode != ModeDurable {
		return h.loadLocked().Clone()
	}
	s, err := h.read()
	switch {
	case errors.Is(err, ErrNoSnapshot):
		s = Seed()
	case err != nil:
		h.event().Warn("store.reload.fail", err, map[string]any{"fallback": "memory"})
		return h.loadLocked().Clone()
	}
	h.snap = &s
	h.metrics.ObserveCounts(s.Counts())
	return s.Clone()
}

func (h *HybridStore) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	st := Status{
		Mode:        h.mode,
		Durable:     h.mode == ModeDurable,
		HasSnapshot: h.snap != nil,
		Medium:      h.mediumName(),
	}
	if h.snap != nil {
		st.Counts = h.snap.Counts()
		st.Digest = Digest(*h.snap)
	}
	if !h.lastPersistAt.IsZero() {
		st.LastPersistAt = domain.Timestamp(h.lastPersistAt)
	}
	if h.lastErr != nil {
		st.LastPersistError = h.lastErr.Error()
	}
	return st
}

// Digest is a BLAKE2b-256 fingerprint of the encoded snapshot.
func Digest(s domain.Snapshot) string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
