package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const fileName = "db.json"

// FileMedium keeps the document in <dir>/db.json.
type FileMedium struct {
	dir  string
	path string
}

func NewFileMedium(dir string) *FileMedium {
	if dir == "" {
		dir = "./data"
	}
	return &FileMedium{dir: dir, path: filepath.Join(dir, fileName)}
}

func (m *FileMedium) Name() string { return "file" }

func (m *FileMedium) Path() string { return m.path }

func (m *FileMedium) Probe(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	test := filepath.Join(m.dir, ".write-test")
	if err := os.WriteFile(test, []byte(time.Now().UTC().Format(time.RFC3339)), 0o644); err != nil {
		return fmt.Errorf("test write: %w", err)
	}
	return os.Remove(test)
}

func (m *FileMedium) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	return b, err
}

// Write replaces the document through a temp file so readers never see a
// partial write.
func (m *FileMedium) Write(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(m.dir, "db-*.json.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), m.path)
}
