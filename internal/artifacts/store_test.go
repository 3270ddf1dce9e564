package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healtrip/backend/internal/catalog"
	"github.com/healtrip/backend/internal/ranking"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func writeDomain(t *testing.T, dir, domain string, listings []catalog.Listing, withIndex bool) {
	t.Helper()
	require.NoError(t, WriteCatalog(dir, domain, listings))

	if withIndex {
		documents := make([]string, len(listings))
		for i, l := range listings {
			documents[i] = l.Text
		}
		vocabulary, idf, rows := ranking.FitSimilarityIndex(documents)
		require.NoError(t, WriteSimilarity(dir, domain, SimilarityArtifact{
			Vocabulary: vocabulary,
			IDF:        idf,
			Rows:       rows,
		}))
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeDomain(t, dir, catalog.DomainHotels, []catalog.Listing{
		{Row: 0, Name: "Sea View", City: "Mumbai", Price: 4500, Text: "beach hotel"},
		{Row: 1, Name: "Hill Stay", City: "Shimla", Price: 3000, Text: "mountain cabin"},
	}, true)

	store, err := Load(dir, []string{catalog.DomainHotels}, quietLogger())
	require.NoError(t, err)

	bundle, err := store.Bundle(catalog.DomainHotels)
	require.NoError(t, err)

	assert.Equal(t, 2, bundle.Catalog.Len())
	assert.Equal(t, "Sea View", bundle.Catalog.Listings[0].Name)

	index, err := bundle.RequireIndex()
	require.NoError(t, err)
	assert.Equal(t, 2, index.Rows())
}

func TestLoad_MissingDomainIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDomain(t, dir, catalog.DomainHotels, []catalog.Listing{
		{Row: 0, Name: "Sea View"},
	}, false)

	store, err := Load(dir, []string{catalog.DomainHotels, catalog.DomainYoga}, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{catalog.DomainHotels}, store.Domains())

	_, err = store.Bundle(catalog.DomainYoga)
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
}

func TestLoad_NoDomainsAtAllFails(t *testing.T) {
	_, err := Load(t.TempDir(), []string{catalog.DomainHotels}, quietLogger())
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
}

func TestLoad_RowCountMismatchFails(t *testing.T) {
	dir := t.TempDir()

	listings := []catalog.Listing{
		{Row: 0, Text: "one"},
		{Row: 1, Text: "two"},
	}
	require.NoError(t, WriteCatalog(dir, catalog.DomainHotels, listings))

	// An index fitted on a different catalog size must not load.
	vocabulary, idf, rows := ranking.FitSimilarityIndex([]string{"one"})
	require.NoError(t, WriteSimilarity(dir, catalog.DomainHotels, SimilarityArtifact{
		Vocabulary: vocabulary,
		IDF:        idf,
		Rows:       rows,
	}))

	_, err := Load(dir, []string{catalog.DomainHotels}, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows")
}

func TestLoad_MalformedCatalogFails(t *testing.T) {
	dir := t.TempDir()
	domainDir := filepath.Join(dir, catalog.DomainHotels)
	require.NoError(t, os.MkdirAll(domainDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(domainDir, CatalogFile), []byte("{not json"), 0o644))

	_, err := Load(dir, []string{catalog.DomainHotels}, quietLogger())
	require.Error(t, err)
}

func TestBundle_MissingOptionalArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeDomain(t, dir, catalog.DomainHospitals, []catalog.Listing{
		{Row: 0, Name: "Apex"},
	}, false)

	store, err := Load(dir, []string{catalog.DomainHospitals}, quietLogger())
	require.NoError(t, err)

	bundle, err := store.Bundle(catalog.DomainHospitals)
	require.NoError(t, err)

	_, err = bundle.RequireIndex()
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
	_, err = bundle.RequirePriceModel()
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
	_, err = bundle.RequireEncoder()
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
}
