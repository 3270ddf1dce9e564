package catalog

import "fmt"

// Recommendation domains served by the catalog store.
const (
	DomainFlights   = "flights"
	DomainHotels    = "hotels"
	DomainHospitals = "hospitals"
	DomainMental    = "mental"
	DomainYoga      = "yoga"
)

// Domains lists every domain a catalog may be loaded for.
var Domains = []string{DomainFlights, DomainHotels, DomainHospitals, DomainMental, DomainYoga}

// Listing is the fixed record shape every source dataset is normalized into.
// Fields that a domain does not carry stay at their zero value. Row is the
// positional id and matches the row of the similarity matrix.
type Listing struct {
	Row             int     `json:"row"`
	Name            string  `json:"name"`
	City            string  `json:"city,omitempty"`
	Category        string  `json:"category,omitempty"`
	Cluster         string  `json:"cluster,omitempty"`
	Origin          string  `json:"origin,omitempty"`
	Destination     string  `json:"destination,omitempty"`
	Price           float64 `json:"price,omitempty"`
	Rating          float64 `json:"rating,omitempty"`
	ReviewCount     int     `json:"review_count,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	Stops           int     `json:"stops,omitempty"`
	AmenitiesCount  int     `json:"amenities_count,omitempty"`
	Text            string  `json:"text,omitempty"`
}

// Catalog is the immutable, ordered set of listings for one domain. It is
// built once at startup and never mutated afterwards, so it can be shared
// across requests without locking.
type Catalog struct {
	Domain   string
	Listings []Listing

	maxReviewCount int
	maxRating      float64
}

// NewCatalog validates row numbering and precomputes the catalog-wide
// maxima used for score normalization.
func NewCatalog(domain string, listings []Listing) (*Catalog, error) {
	for i := range listings {
		if listings[i].Row != i {
			return nil, fmt.Errorf("catalog %s: listing at position %d has row id %d", domain, i, listings[i].Row)
		}
	}

	c := &Catalog{Domain: domain, Listings: listings}
	for _, l := range listings {
		if l.ReviewCount > c.maxReviewCount {
			c.maxReviewCount = l.ReviewCount
		}
		if l.Rating > c.maxRating {
			c.maxRating = l.Rating
		}
	}
	return c, nil
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	return len(c.Listings)
}

// MaxReviewCount is the maximum review count across the full catalog. It is
// the popularity normalizer, deliberately taken over the whole catalog and
// not a filtered subset so scores stay comparable across queries.
func (c *Catalog) MaxReviewCount() int {
	return c.maxReviewCount
}

// MaxRating is the maximum rating observed across the full catalog.
func (c *Catalog) MaxRating() float64 {
	return c.maxRating
}
