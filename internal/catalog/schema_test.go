package catalog

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestAdapter_ResolvesSynonymColumns(t *testing.T) {
	header := []string{"Hotel_Name", "Location", "Hotel_Price", "Hotel_Rating", "Amenities_Count", "Description"}
	a := NewAdapter(header, DefaultNumericPolicy(), testLogger())

	l := a.Adapt(0, []string{"Sea View", "Mumbai", "4500", "4.2", "7", "pool and spa"})

	assert.Equal(t, "Sea View", l.Name)
	assert.Equal(t, "Mumbai", l.City)
	assert.Equal(t, 4500.0, l.Price)
	assert.Equal(t, 4.2, l.Rating)
	assert.Equal(t, 7, l.AmenitiesCount)
	assert.Equal(t, "pool and spa", l.Text)
}

func TestAdapter_MalformedNumericsFallBack(t *testing.T) {
	header := []string{"name", "price", "rating", "duration"}
	a := NewAdapter(header, DefaultNumericPolicy(), testLogger())

	l := a.Adapt(3, []string{"Broken Row", "n/a", "", "??"})

	assert.Equal(t, 0.0, l.Price)
	assert.Equal(t, 0.0, l.Rating)
	assert.Equal(t, 150, l.DurationMinutes)
}

func TestAdapter_TextualStops(t *testing.T) {
	header := []string{"airline", "stops"}
	a := NewAdapter(header, DefaultNumericPolicy(), testLogger())

	assert.Equal(t, 0, a.Adapt(0, []string{"IndiGo", "zero"}).Stops)
	assert.Equal(t, 1, a.Adapt(1, []string{"IndiGo", "one"}).Stops)
	assert.Equal(t, 2, a.Adapt(2, []string{"IndiGo", "two_or_more"}).Stops)
	assert.Equal(t, 2, a.Adapt(3, []string{"IndiGo", "2"}).Stops)
	assert.Equal(t, 0, a.Adapt(4, []string{"IndiGo", "sometimes"}).Stops)
}

func TestAdapter_DestinationCountrySuffix(t *testing.T) {
	header := []string{"airline", "destination", "destination_country"}
	a := NewAdapter(header, DefaultNumericPolicy(), testLogger())

	l := a.Adapt(0, []string{"Emirates", "Dubai", "UAE"})
	assert.Equal(t, "Dubai, UAE", l.Destination)
}

func TestAdapter_ShortRecordsAreSafe(t *testing.T) {
	header := []string{"name", "city", "price"}
	a := NewAdapter(header, DefaultNumericPolicy(), testLogger())

	l := a.Adapt(0, []string{"Only Name"})
	assert.Equal(t, "Only Name", l.Name)
	assert.Equal(t, "", l.City)
	assert.Equal(t, 0.0, l.Price)
}

func TestAdapter_ResolvedFields(t *testing.T) {
	header := []string{"name", "city", "price"}
	a := NewAdapter(header, DefaultNumericPolicy(), testLogger())

	fields := a.ResolvedFields()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "city")
	assert.Contains(t, fields, "price")
	assert.NotContains(t, fields, "duration")
}

func TestNormalizeDurationMinutes(t *testing.T) {
	// Hours convert, minutes pass through.
	assert.Equal(t, 150, NormalizeDurationMinutes(2.5))
	assert.Equal(t, 90, NormalizeDurationMinutes(1.5))
	assert.Equal(t, 90, NormalizeDurationMinutes(90))
	assert.Equal(t, 48, NormalizeDurationMinutes(48))
	assert.Equal(t, 2820, NormalizeDurationMinutes(47)) // 47h itinerary
	assert.Equal(t, 0, NormalizeDurationMinutes(0))
	assert.Equal(t, 0, NormalizeDurationMinutes(-10))
}

func TestNewCatalog_EnforcesRowOrder(t *testing.T) {
	_, err := NewCatalog(DomainHotels, []Listing{
		{Row: 0, Name: "ok"},
		{Row: 5, Name: "bad"},
	})
	require.Error(t, err)
}

func TestCatalog_Maxima(t *testing.T) {
	cat, err := NewCatalog(DomainHospitals, []Listing{
		{Row: 0, Rating: 4.2, ReviewCount: 10},
		{Row: 1, Rating: 4.9, ReviewCount: 900},
	})
	require.NoError(t, err)

	assert.Equal(t, 900, cat.MaxReviewCount())
	assert.Equal(t, 4.9, cat.MaxRating())
	assert.Equal(t, 2, cat.Len())
}
