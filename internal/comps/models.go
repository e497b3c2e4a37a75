// Package comps provides comparable-sales resolution: interchangeable data
// providers behind a retry wrapper, normalization into a single record
// schema, geographic filtering, and market statistics.
package comps

import (
	"time"
)

// Record is a normalized comparable sale. Optional attributes use pointers
// or zero values; downstream filters pass records through when the relevant
// field is absent.
type Record struct {
	Address       string     `json:"address"`
	Price         float64    `json:"price"`
	Sqft          float64    `json:"sqft,omitempty"`
	Beds          int        `json:"beds,omitempty"`
	Baths         float64    `json:"baths,omitempty"`
	PropertyType  string     `json:"property_type,omitempty"`
	SaleDate      *time.Time `json:"sale_date,omitempty"`
	Condition     string     `json:"condition,omitempty"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	DistanceMiles *float64   `json:"distance_miles,omitempty"`
}

// Query describes the subject property a comp lookup is anchored to.
type Query struct {
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	Sqft         float64  `json:"sqft,omitempty"`
	Beds         int      `json:"beds,omitempty"`
	Baths        float64  `json:"baths,omitempty"`
	RadiusMiles  float64  `json:"radius_miles,omitempty"`
}

// Result is the outcome of a comp resolution. An empty comp list with a
// non-empty Notice is a valid degraded state, not an error: callers fall
// back to a purchase-price-based ARV estimate.
type Result struct {
	Comps     []Record `json:"comps"`
	Source    string   `json:"source"`
	FromCache bool     `json:"from_cache"`
	Notice    string   `json:"notice,omitempty"`
}

// Filters refines a comp set. Each filter is pass-through when the comp
// lacks the relevant field.
type Filters struct {
	MaxAgeMonths     int      `json:"max_age_months,omitempty"`
	MaxDistanceMiles float64  `json:"max_distance_miles,omitempty"`
	SubjectLat       *float64 `json:"subject_lat,omitempty"`
	SubjectLng       *float64 `json:"subject_lng,omitempty"`
	PropertyType     string   `json:"property_type,omitempty"`
	MinBeds          int      `json:"min_beds,omitempty"`
	MinBaths         float64  `json:"min_baths,omitempty"`
	MinSqft          float64  `json:"min_sqft,omitempty"`
	MaxSqft          float64  `json:"max_sqft,omitempty"`
}

// normalize drops records that fail the post-mapping validity filter.
// Price must be positive for a record to reach the calculators.
func normalize(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Price <= 0 {
			continue
		}
		out = append(out, rec)
	}
	return out
}
