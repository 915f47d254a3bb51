package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

// Repository defines the interface for lead storage
type Repository interface {
	Append(ctx context.Context, lead *Lead) error
	ListAll(ctx context.Context) ([]Lead, error)
}

// FileRepository persists the lead collection as a pretty-printed JSON array
// in a single file. Every append rewrites the whole file; the mutex
// serializes the read-modify-write so concurrent submissions cannot drop
// records.
type FileRepository struct {
	mu     sync.Mutex
	path   string
	logger *logging.Logger
}

// NewFileRepository creates a repository backed by the file at path. The
// file and its directory are created on the first append.
func NewFileRepository(path string, logger *logging.Logger) *FileRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FileRepository{path: path, logger: logger}
}

// Append durably adds one lead to the store.
func (r *FileRepository) Append(ctx context.Context, lead *Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("leads: create storage dir: %w", err)
		}
	}

	all := append(r.readAll(), *lead)
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("leads: encode store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("leads: write %s: %w", r.path, err)
	}
	return nil
}

// ListAll returns every stored lead in insertion order. Reads fail open: a
// missing or unparsable file yields an empty collection, never an error.
func (r *FileRepository) ListAll(ctx context.Context) ([]Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll(), nil
}

func (r *FileRepository) readAll() []Lead {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("leads file unreadable, treating as empty", "path", r.path, "error", err)
		}
		return []Lead{}
	}

	var all []Lead
	if err := json.Unmarshal(data, &all); err != nil {
		r.logger.Warn("leads file unparsable, treating as empty", "path", r.path, "error", err)
		return []Lead{}
	}
	if all == nil {
		all = []Lead{}
	}
	return all
}
