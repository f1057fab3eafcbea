package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoSnapshot is returned by Medium.Read when nothing has been written yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// opTimeout bounds every call into a medium.
const opTimeout = 5 * time.Second

// Medium is the durable backing for the snapshot document. Implementations
// store the encoded document as a single opaque blob.
type Medium interface {
	Name() string
	// Probe makes sure the medium exists and accepts writes.
	Probe(ctx context.Context) error
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, doc []byte) error
}

type MediumConfig struct {
	Kind          string // file | sqlite | redis | postgres | memory
	DataDir       string
	SQLiteDSN     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
	PostgresDSN   string
}

// OpenMedium builds the medium named by cfg.Kind. The memory kind returns a
// nil medium, which puts the store in memory-only mode.
func OpenMedium(cfg MediumConfig) (Medium, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", "file":
		return NewFileMedium(cfg.DataDir), nil
	case "sqlite":
		return OpenSQLiteMedium(cfg.SQLiteDSN)
	case "redis":
		return NewRedisMedium(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisKey), nil
	case "postgres":
		return OpenPostgresMedium(cfg.PostgresDSN)
	case "memory":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown durable medium %q", cfg.Kind)
	}
}
