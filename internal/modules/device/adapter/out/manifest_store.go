package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"serene/internal/modules/device/domain"
	deviceout "serene/internal/modules/device/port/out"
)

// FileManifestStore reads <plugins>/plugins.json. Relative binary paths are
// resolved against the plugins directory.
type FileManifestStore struct {
	dir  string
	path string
}

func NewFileManifestStore(pluginsDir string) deviceout.ManifestStore {
	return &FileManifestStore{dir: pluginsDir, path: filepath.Join(pluginsDir, "plugins.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read driver manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode driver manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.dir, manifests[i].Binary))
		}
	}
	return manifests, nil
}
