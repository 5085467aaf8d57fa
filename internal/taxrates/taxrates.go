// Package taxrates maps Arkansas ZIP codes to counties and effective
// property-tax rates. The tables are static reference data compiled into the
// binary; see data.go.
package taxrates

import "strings"

// ZipCountyRecord ties a postal code to its city and county.
type ZipCountyRecord struct {
	Zip    string `json:"zip"`
	City   string `json:"city"`
	County string `json:"county"`
}

// Result is a successful rate lookup.
type Result struct {
	County  string  `json:"county"`
	City    string  `json:"city"`
	TaxRate float64 `json:"tax_rate"`
}

// Lookup resolves a ZIP code to its county and tax rate. It returns false
// when the ZIP is unknown or the county has no configured rate — callers
// must treat that as "no rate available", not as an invalid ZIP.
func Lookup(zip string) (*Result, bool) {
	rec, ok := zipIndex[zip]
	if !ok {
		return nil, false
	}
	rate, ok := countyRates[rec.County]
	if !ok {
		return nil, false
	}
	return &Result{County: rec.County, City: rec.City, TaxRate: rate}, true
}

// Search returns up to limit records matching the query for autocomplete.
// ZIP-prefix matches come first in table order, followed by case-insensitive
// city substring matches not already included. The two-tier ordering is what
// ranks exact ZIP typing above fuzzy city matches.
func Search(query string, limit int) []ZipCountyRecord {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	var results []ZipCountyRecord
	seen := make(map[string]bool)

	for _, rec := range zipTable {
		if len(results) >= limit {
			return results
		}
		if strings.HasPrefix(rec.Zip, query) {
			results = append(results, rec)
			seen[rec.Zip] = true
		}
	}

	lower := strings.ToLower(query)
	for _, rec := range zipTable {
		if len(results) >= limit {
			break
		}
		if seen[rec.Zip] {
			continue
		}
		if strings.Contains(strings.ToLower(rec.City), lower) {
			results = append(results, rec)
		}
	}
	return results
}

// Records returns the full ZIP table in table order.
func Records() []ZipCountyRecord {
	out := make([]ZipCountyRecord, len(zipTable))
	copy(out, zipTable)
	return out
}

// CountyRate returns the configured rate for a county.
func CountyRate(county string) (float64, bool) {
	rate, ok := countyRates[county]
	return rate, ok
}

var zipIndex = func() map[string]ZipCountyRecord {
	idx := make(map[string]ZipCountyRecord, len(zipTable))
	for _, rec := range zipTable {
		idx[rec.Zip] = rec
	}
	return idx
}()
