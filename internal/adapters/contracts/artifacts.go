package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// ArtifactRepository indexes compiled Hardhat or Foundry artifacts by contract name
type ArtifactRepository struct {
	dir     string
	byName  map[string][]*models.Artifact // key: contract name
	byFQN   map[string]*models.Artifact   // key: "source:Name"
	log     *slog.Logger
	mu      sync.RWMutex
	indexed bool
}

// NewArtifactRepository creates a repository over the configured artifacts directory
func NewArtifactRepository(cfg *config.RuntimeConfig, log *slog.Logger) *ArtifactRepository {
	return NewArtifactRepositoryAt(cfg.ArtifactsDir, log)
}

// NewArtifactRepositoryAt creates a repository over dir
func NewArtifactRepositoryAt(dir string, log *slog.Logger) *ArtifactRepository {
	return &ArtifactRepository{
		dir:    dir,
		byName: make(map[string][]*models.Artifact),
		byFQN:  make(map[string]*models.Artifact),
		log:    log.With("component", "ArtifactRepository"),
	}
}

// Index walks the artifacts directory once
func (r *ArtifactRepository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.dir); err != nil {
		return fmt.Errorf("artifacts directory %s not found (compile the contracts first): %w", r.dir, err)
	}

	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts in %s: %w", r.dir, err)
	}

	r.log.Debug("indexed artifacts", "dir", r.dir, "contracts", len(r.byName))
	r.indexed = true
	return nil
}

// processArtifact reads one file, skipping anything that is not a deployable artifact
func (r *ArtifactRepository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		r.log.Debug("skipping unreadable artifact", "path", path, "error", err)
		return nil
	}
	if len(artifact.ABI) == 0 {
		return nil
	}

	if artifact.ContractName == "" {
		// Foundry layout: out/<Source>.sol/<Name>.json
		artifact.ContractName = strings.TrimSuffix(filepath.Base(path), ".json")
		if artifact.SourceName == "" {
			artifact.SourceName = filepath.Base(filepath.Dir(path))
		}
	}
	artifact.Path = path

	a := &artifact
	r.byName[a.ContractName] = append(r.byName[a.ContractName], a)
	r.byFQN[a.SourceName+":"+a.ContractName] = a
	return nil
}

// GetArtifact returns the artifact for name, which is either a bare contract
// name or "source:Name".
func (r *ArtifactRepository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.Contains(name, ":") {
		if a, ok := r.byFQN[name]; ok {
			return a, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}

	candidates := lo.Filter(r.byName[name], func(a *models.Artifact, _ int) bool {
		code := strings.TrimSpace(a.Bytecode.Object)
		return code != "" && code != "0x"
	})
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s (looked in %s)", domain.ErrArtifactNotFound, name, r.dir)
	case 1:
		return candidates[0], nil
	default:
		sources := lo.Map(candidates, func(a *models.Artifact, _ int) string {
			return a.SourceName + ":" + a.ContractName
		})
		return nil, fmt.Errorf("multiple artifacts named %s, use one of: %s", name, strings.Join(sources, ", "))
	}
}

// Ensure ArtifactRepository implements ArtifactRepository
var _ usecase.ArtifactRepository = (*ArtifactRepository)(nil)
