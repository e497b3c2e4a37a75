package comps

import (
	"math"
	"strings"
	"time"
)

// earthRadiusMiles is the haversine Earth radius.
const earthRadiusMiles = 3959.0

// Filter applies the configured predicates sequentially. Each predicate is
// pass-through when a comp lacks the relevant field, so sparse provider data
// narrows the set only where it can. Distance from the subject is attached
// to every surviving comp that has coordinates.
func Filter(records []Record, filters Filters) []Record {
	now := time.Now()

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !passesAge(rec, filters, now) {
			continue
		}
		rec, ok := passesDistance(rec, filters)
		if !ok {
			continue
		}
		if !passesPropertyType(rec, filters) {
			continue
		}
		if !passesBedsBaths(rec, filters) {
			continue
		}
		if !passesSqft(rec, filters) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func passesAge(rec Record, filters Filters, now time.Time) bool {
	if filters.MaxAgeMonths <= 0 || rec.SaleDate == nil {
		return true
	}
	cutoff := now.AddDate(0, -filters.MaxAgeMonths, 0)
	return !rec.SaleDate.Before(cutoff)
}

// passesDistance checks the great-circle distance and attaches it to the
// record when both subject and comp have coordinates.
func passesDistance(rec Record, filters Filters) (Record, bool) {
	if filters.SubjectLat == nil || filters.SubjectLng == nil ||
		rec.Latitude == nil || rec.Longitude == nil {
		return rec, true
	}

	dist := Haversine(*filters.SubjectLat, *filters.SubjectLng, *rec.Latitude, *rec.Longitude)
	rec.DistanceMiles = &dist

	if filters.MaxDistanceMiles > 0 && dist > filters.MaxDistanceMiles {
		return rec, false
	}
	return rec, true
}

func passesPropertyType(rec Record, filters Filters) bool {
	if filters.PropertyType == "" || rec.PropertyType == "" {
		return true
	}
	return strings.EqualFold(rec.PropertyType, filters.PropertyType)
}

func passesBedsBaths(rec Record, filters Filters) bool {
	if filters.MinBeds > 0 && rec.Beds > 0 && rec.Beds < filters.MinBeds {
		return false
	}
	if filters.MinBaths > 0 && rec.Baths > 0 && rec.Baths < filters.MinBaths {
		return false
	}
	return true
}

func passesSqft(rec Record, filters Filters) bool {
	if rec.Sqft <= 0 {
		return true
	}
	if filters.MinSqft > 0 && rec.Sqft < filters.MinSqft {
		return false
	}
	if filters.MaxSqft > 0 && rec.Sqft > filters.MaxSqft {
		return false
	}
	return true
}

// Haversine returns the great-circle distance in miles between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
