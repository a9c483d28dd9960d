package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"CryptoDigest/internal/ports"
)

// FileStore persists the seen-id set as a sorted JSON array. Load fails
// open: a missing or corrupt file yields an empty set. Save writes a
// temp file in the same directory and renames it over the target so the
// snapshot is replaced atomically.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ ports.DedupStore = (*FileStore)(nil)

// NewFileStore wires the snapshot path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the persisted id set.
func (s *FileStore) Load(ctx context.Context) (map[string]struct{}, error) {
	ids := map[string]struct{}{}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.warn("dedup store unreadable, starting empty", "path", s.path, "error", err)
		}
		return ids, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		s.warn("dedup store corrupt, starting empty", "path", s.path, "error", err)
		return ids, nil
	}

	for _, id := range list {
		ids[id] = struct{}{}
	}
	return ids, nil
}

// Save persists a deterministic sorted snapshot via atomic overwrite.
func (s *FileStore) Save(ctx context.Context, ids map[string]struct{}) error {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dedup snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dedup dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "seen-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}

func (s *FileStore) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
