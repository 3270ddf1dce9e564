package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/healtrip/backend/internal/artifacts"
	"github.com/healtrip/backend/internal/catalog"
	"github.com/healtrip/backend/internal/config"
	"github.com/healtrip/backend/internal/database"
	"github.com/healtrip/backend/internal/models"
	"github.com/healtrip/backend/internal/ranking"
	"github.com/healtrip/backend/internal/repository"
	"github.com/healtrip/backend/pkg/utils"
)

// encoderAttributes lists, per domain, which listing attributes the price
// model encodes. Domains absent here ship no encoder artifact.
var encoderAttributes = map[string][]string{
	catalog.DomainHotels: {"city"},
	catalog.DomainMental: {"city", "type"},
	catalog.DomainYoga:   {"city", "style"},
}

func main() {
	var (
		dataDir      = flag.String("data", "./data", "Directory with per-domain CSV files")
		artifactsDir = flag.String("artifacts", "./artifacts", "Output directory for fitted artifacts")
		domainsFlag  = flag.String("domains", strings.Join(catalog.Domains, ","), "Comma-separated domains to seed")
		dryRun       = flag.Bool("dry-run", false, "Fit artifacts without writing anything")
		skipDB       = flag.Bool("skip-db", false, "Do not record catalog metadata in PostgreSQL")
		verbose      = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	godotenv.Load()
	utils.InitLogger()
	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	var metadataRepo models.CatalogMetadataRepository
	if !*skipDB && !*dryRun {
		cfg, err := config.Load()
		if err != nil {
			logger.WithError(err).Fatal("Failed to load configuration")
		}
		dbManager, err := database.NewManager(&database.Config{
			DatabaseURL: cfg.Database.URL,
			RedisURL:    cfg.Redis.URL,
		}, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to database")
		}
		defer dbManager.Close()
		if err := dbManager.Migrate(); err != nil {
			logger.WithError(err).Fatal("Failed to run migrations")
		}
		metadataRepo = repository.NewCatalogMetadataRepository(dbManager.DB)
	}

	failed := 0
	for _, domain := range strings.Split(*domainsFlag, ",") {
		domain = strings.TrimSpace(domain)
		if domain == "" {
			continue
		}
		if err := seedDomain(domain, *dataDir, *artifactsDir, *dryRun, metadataRepo, logger); err != nil {
			logger.WithError(err).WithField("domain", domain).Error("Seeding failed")
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
	logger.Info("Seeding complete")
}

func seedDomain(domain, dataDir, artifactsDir string, dryRun bool, metadataRepo models.CatalogMetadataRepository, logger *logrus.Logger) error {
	sourceFile := filepath.Join(dataDir, domain+".csv")
	raw, err := os.ReadFile(sourceFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourceFile, err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", sourceFile, err)
	}
	if len(records) < 2 {
		return fmt.Errorf("%s has no data rows", sourceFile)
	}

	adapter := catalog.NewAdapter(records[0], catalog.DefaultNumericPolicy(), logger)
	listings := make([]catalog.Listing, 0, len(records)-1)
	for i, record := range records[1:] {
		listings = append(listings, adapter.Adapt(i, record))
	}

	documents := make([]string, len(listings))
	for i, l := range listings {
		documents[i] = documentText(l)
	}
	vocabulary, idf, rows := ranking.FitSimilarityIndex(documents)

	logger.WithFields(logrus.Fields{
		"domain":     domain,
		"rows":       len(listings),
		"vocabulary": len(vocabulary),
		"columns":    adapter.ResolvedFields(),
	}).Info("Fitted domain artifacts")

	if dryRun {
		return nil
	}

	if err := artifacts.WriteCatalog(artifactsDir, domain, listings); err != nil {
		return err
	}
	if err := artifacts.WriteSimilarity(artifactsDir, domain, artifacts.SimilarityArtifact{
		Vocabulary: vocabulary,
		IDF:        idf,
		Rows:       rows,
	}); err != nil {
		return err
	}

	if attrs, ok := encoderAttributes[domain]; ok {
		if err := artifacts.WriteEncoders(artifactsDir, domain, fitEncoders(listings, attrs)); err != nil {
			return err
		}
	}

	if metadataRepo != nil {
		if err := recordMetadata(metadataRepo, domain, sourceFile, raw, listings, vocabulary, adapter, artifactsDir); err != nil {
			return err
		}
	}

	return nil
}

// documentText is the text the similarity index is fitted on. Datasets
// without a dedicated description column fall back to the descriptive
// fields joined together.
func documentText(l catalog.Listing) string {
	if l.Text != "" {
		return l.Text
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{l.Name, l.City, l.Category, l.Cluster} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// fitEncoders assigns each distinct attribute value an index in sorted
// order, matching how the price models were fitted.
func fitEncoders(listings []catalog.Listing, attrs []string) map[string]map[string]int {
	classes := make(map[string]map[string]int, len(attrs))
	for _, attr := range attrs {
		seen := make(map[string]bool)
		for _, l := range listings {
			v := strings.ToLower(strings.TrimSpace(attributeValue(l, attr)))
			if v != "" {
				seen[v] = true
			}
		}

		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)

		index := make(map[string]int, len(values))
		for i, v := range values {
			index[v] = i
		}
		classes[attr] = index
	}
	return classes
}

func attributeValue(l catalog.Listing, attr string) string {
	switch attr {
	case "city":
		return catalog.NormalizeCity(l.City)
	case "type", "style":
		return l.Category
	default:
		return ""
	}
}

func recordMetadata(repo models.CatalogMetadataRepository, domain, sourceFile string, raw []byte, listings []catalog.Listing, vocabulary map[string]int, adapter *catalog.Adapter, artifactsDir string) error {
	_, statErr := os.Stat(filepath.Join(artifactsDir, domain, artifacts.PriceModelFile))

	now := time.Now()
	meta := &models.CatalogMetadata{
		Domain:          domain,
		SourceFile:      sourceFile,
		ContentHash:     utils.MD5Hash(string(raw)),
		RowCount:        len(listings),
		VocabularySize:  len(vocabulary),
		ResolvedColumns: models.StringArray(adapter.ResolvedFields()),
		HasPriceModel:   statErr == nil,
		SeededAt:        &now,
		SeedStatus:      "completed",
	}

	existing, err := repo.GetByDomain(domain)
	if err == nil && existing != nil {
		meta.ID = existing.ID
		meta.CreatedAt = existing.CreatedAt
		return repo.Update(meta)
	}
	return repo.Create(meta)
}
