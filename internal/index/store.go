package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkorolev/crossfoot/internal/model"
)

// ErrStoreMissing is returned when a persisted store is absent.
var ErrStoreMissing = errors.New("index: persisted store not found")

const (
	// IndexFile holds the vector index within a store directory
	IndexFile = "index.bin"
	// ContextsFile holds the ordered context records
	ContextsFile = "contexts.json"
)

// Store pairs the vector index with its context records. Position i in
// the index corresponds to Records[i]; neither half is meaningful alone.
type Store struct {
	Index   *Flat
	Records []model.CellContext
}

// Save persists both halves of the store under dir
func (s *Store) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	if err := s.Index.Save(filepath.Join(dir, IndexFile)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.Records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal contexts: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ContextsFile), data, 0644); err != nil {
		return fmt.Errorf("write contexts: %w", err)
	}

	return nil
}

// Load reads a store persisted by Save. A missing file reports
// ErrStoreMissing so callers can tell absence from corruption.
func Load(dir string) (*Store, error) {
	indexPath := filepath.Join(dir, IndexFile)
	contextsPath := filepath.Join(dir, ContextsFile)

	for _, path := range []string{indexPath, contextsPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrStoreMissing, path)
		}
	}

	flat, err := LoadFlat(indexPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(contextsPath)
	if err != nil {
		return nil, fmt.Errorf("read contexts: %w", err)
	}
	var records []model.CellContext
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse contexts: %w", err)
	}

	if flat.Len() != len(records) {
		return nil, fmt.Errorf("index: %d vectors for %d records in %s", flat.Len(), len(records), dir)
	}

	return &Store{Index: flat, Records: records}, nil
}
