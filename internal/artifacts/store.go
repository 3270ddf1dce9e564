package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/healtrip/backend/internal/catalog"
	"github.com/healtrip/backend/internal/pricing"
	"github.com/healtrip/backend/internal/ranking"
)

// ErrArtifactUnavailable marks a domain whose artifacts did not load; the
// service refuses to serve that domain rather than fabricate results.
var ErrArtifactUnavailable = errors.New("artifacts unavailable")

// Artifact file names inside each domain directory.
const (
	CatalogFile    = "catalog.json"
	SimilarityFile = "tfidf.json"
	EncodersFile   = "encoders.json"
	PriceModelFile = "price_model.json"
)

// SimilarityArtifact is the on-disk form of a fitted text index.
type SimilarityArtifact struct {
	Vocabulary map[string]int        `json:"vocabulary"`
	IDF        []float64             `json:"idf"`
	Rows       []ranking.SparseVector `json:"rows"`
}

// Bundle is everything loaded for one domain. Catalog is always present;
// the other pieces exist only for domains whose training collaborator
// produced them.
type Bundle struct {
	Domain     string
	Catalog    *catalog.Catalog
	Index      *ranking.SimilarityIndex
	Encoder    *pricing.CategoricalEncoder
	PriceModel *pricing.PriceModel
}

// RequireIndex returns the similarity index or ErrArtifactUnavailable.
func (b *Bundle) RequireIndex() (*ranking.SimilarityIndex, error) {
	if b.Index == nil {
		return nil, fmt.Errorf("%w: %s has no similarity index", ErrArtifactUnavailable, b.Domain)
	}
	return b.Index, nil
}

// RequirePriceModel returns the regression artifact or
// ErrArtifactUnavailable.
func (b *Bundle) RequirePriceModel() (*pricing.PriceModel, error) {
	if b.PriceModel == nil {
		return nil, fmt.Errorf("%w: %s has no price model", ErrArtifactUnavailable, b.Domain)
	}
	return b.PriceModel, nil
}

// RequireEncoder returns the categorical encoder or ErrArtifactUnavailable.
func (b *Bundle) RequireEncoder() (*pricing.CategoricalEncoder, error) {
	if b.Encoder == nil {
		return nil, fmt.Errorf("%w: %s has no encoders", ErrArtifactUnavailable, b.Domain)
	}
	return b.Encoder, nil
}

// Store holds the loaded bundles for all domains. It is built once before
// the server accepts requests and is immutable afterwards, so request
// handling needs no locking.
type Store struct {
	bundles map[string]*Bundle
}

// Load reads every domain directory under dir. A domain directory that is
// missing entirely is skipped with a warning (the domain answers 503); a
// malformed artifact is a hard error so startup fails fast instead of
// serving partial state.
func Load(dir string, domains []string, logger *logrus.Logger) (*Store, error) {
	store := &Store{bundles: make(map[string]*Bundle, len(domains))}

	for _, domain := range domains {
		domainDir := filepath.Join(dir, domain)
		if _, err := os.Stat(domainDir); os.IsNotExist(err) {
			logger.WithField("domain", domain).Warn("No artifacts directory, domain will be unavailable")
			continue
		}

		bundle, err := loadBundle(domainDir, domain)
		if err != nil {
			return nil, fmt.Errorf("loading %s artifacts: %w", domain, err)
		}

		logger.WithFields(logrus.Fields{
			"domain":      domain,
			"listings":    bundle.Catalog.Len(),
			"has_index":   bundle.Index != nil,
			"has_model":   bundle.PriceModel != nil,
			"has_encoder": bundle.Encoder != nil,
		}).Info("Artifacts loaded")

		store.bundles[domain] = bundle
	}

	if len(store.bundles) == 0 {
		return nil, fmt.Errorf("%w: no domain artifacts found under %s", ErrArtifactUnavailable, dir)
	}
	return store, nil
}

func loadBundle(dir, domain string) (*Bundle, error) {
	var listings []catalog.Listing
	if err := readJSON(filepath.Join(dir, CatalogFile), &listings); err != nil {
		return nil, err
	}
	cat, err := catalog.NewCatalog(domain, listings)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{Domain: domain, Catalog: cat}

	var sim SimilarityArtifact
	switch err := readJSON(filepath.Join(dir, SimilarityFile), &sim); {
	case err == nil:
		// The index and catalog are validated together: a row-count
		// mismatch means the artifacts are from different training runs.
		index, err := ranking.NewSimilarityIndex(sim.Vocabulary, sim.IDF, sim.Rows, cat.Len())
		if err != nil {
			return nil, err
		}
		bundle.Index = index
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	var classes map[string]map[string]int
	switch err := readJSON(filepath.Join(dir, EncodersFile), &classes); {
	case err == nil:
		bundle.Encoder = pricing.NewCategoricalEncoder(classes)
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	var model pricing.PriceModel
	switch err := readJSON(filepath.Join(dir, PriceModelFile), &model); {
	case err == nil:
		if err := model.Validate(); err != nil {
			return nil, err
		}
		bundle.PriceModel = &model
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	return bundle, nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Bundle returns the loaded bundle for a domain.
func (s *Store) Bundle(domain string) (*Bundle, error) {
	b, ok := s.bundles[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrArtifactUnavailable, domain)
	}
	return b, nil
}

// Domains lists the domains with loaded artifacts.
func (s *Store) Domains() []string {
	out := make([]string, 0, len(s.bundles))
	for _, d := range catalog.Domains {
		if _, ok := s.bundles[d]; ok {
			out = append(out, d)
		}
	}
	return out
}
