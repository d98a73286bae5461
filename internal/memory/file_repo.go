package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileRepository keeps the memory mapping in a single YAML file, one
// document with a top-level user-id -> record mapping.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) Load() (map[string]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := os.ReadFile(r.path)
	if err != nil {
		// missing file -> start fresh
		return map[string]Record{}, nil
	}
	var records map[string]Record
	if err := yaml.Unmarshal(data, &records); err != nil || records == nil {
		// empty or malformed -> start fresh
		return map[string]Record{}, nil
	}
	return records, nil
}

func (r *FileRepository) Save(records map[string]Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
