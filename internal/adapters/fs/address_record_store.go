package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// AddressRecordStore implements AddressRecordRepository on a JSON file
type AddressRecordStore struct {
	path string
}

// NewAddressRecordStore creates a store for the configured record path
func NewAddressRecordStore(cfg *config.RuntimeConfig) *AddressRecordStore {
	return &AddressRecordStore{path: cfg.RecordPath}
}

// NewAddressRecordStoreAt creates a store for an explicit path
func NewAddressRecordStoreAt(path string) *AddressRecordStore {
	return &AddressRecordStore{path: path}
}

// Load reads the record. A missing file is an error; the record is expected
// to exist before the first run.
func (s *AddressRecordStore) Load(ctx context.Context) (*models.AddressRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, s.path)
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", domain.ErrRecordIO, s.path, err)
	}

	record := models.NewAddressRecord()
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrRecordMalformed, s.path, err)
	}

	return record, nil
}

// Save replaces the whole file with the serialized record. The content is
// written to a temporary sibling of the resolved target and renamed into
// place, so a symlinked record keeps its link.
func (s *AddressRecordStore) Save(ctx context.Context, record *models.AddressRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal record: %w", domain.ErrRecordIO, err)
	}
	data = append(data, '\n')

	target, err := s.target()
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %w", domain.ErrRecordIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to write %s: %w", domain.ErrRecordIO, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", domain.ErrRecordIO, tmpPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("%w: failed to chmod %s: %w", domain.ErrRecordIO, tmpPath, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %w", domain.ErrRecordIO, target, err)
	}

	return nil
}

// target resolves symlinks in the record path. A path that does not exist
// yet is written as is.
func (s *AddressRecordStore) target() (string, error) {
	resolved, err := filepath.EvalSymlinks(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.path, nil
		}
		return "", fmt.Errorf("%w: failed to resolve %s: %w", domain.ErrRecordIO, s.path, err)
	}
	return resolved, nil
}

// GetPath returns the path to the record file
func (s *AddressRecordStore) GetPath() string {
	return s.path
}

// Ensure AddressRecordStore implements AddressRecordRepository
var _ usecase.AddressRecordRepository = (*AddressRecordStore)(nil)
