package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/healtrip/backend/internal/catalog"
)

// WriteCatalog persists the normalized listings for a domain.
func WriteCatalog(dir, domain string, listings []catalog.Listing) error {
	return writeJSON(filepath.Join(dir, domain, CatalogFile), listings)
}

// WriteSimilarity persists a fitted text index.
func WriteSimilarity(dir, domain string, artifact SimilarityArtifact) error {
	return writeJSON(filepath.Join(dir, domain, SimilarityFile), artifact)
}

// WriteEncoders persists fitted categorical encodings.
func WriteEncoders(dir, domain string, classes map[string]map[string]int) error {
	return writeJSON(filepath.Join(dir, domain, EncodersFile), classes)
}

func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}
