package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Snapshot is an immutable view of the forecast table. Zip codes are keyed as
// zero-padded 5-digit strings; non-numeric codes never match any row.
type Snapshot struct {
	scores map[string]*float64
}

func NewSnapshot(rows []ZipForecast) *Snapshot {
	scores := make(map[string]*float64, len(rows))
	for _, row := range rows {
		zip, ok := NormalizeZip(row.ZipCode)
		if !ok {
			continue
		}
		scores[zip] = row.ForecastScore
	}
	return &Snapshot{scores: scores}
}

// NormalizeZip zero-pads a numeric zip code to 5 digits. Non-numeric input
// reports false and is treated everywhere as "no data".
func NormalizeZip(zip string) (string, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(zip))
	if err != nil || value < 0 {
		return "", false
	}
	return fmt.Sprintf("%05d", value), true
}

// Has reports whether the table carries a row for the zip code.
func (s *Snapshot) Has(zip string) bool {
	normalized, ok := NormalizeZip(zip)
	if !ok {
		return false
	}
	_, ok = s.scores[normalized]
	return ok
}

// DesirableZipCodes returns every zip code whose forecast score is at or
// above the risk threshold, zero-padded. Rows with no score are never
// desirable.
func (s *Snapshot) DesirableZipCodes(threshold float64) []string {
	out := make([]string, 0, len(s.scores))
	for zip, score := range s.scores {
		if score != nil && *score >= threshold {
			out = append(out, zip)
		}
	}
	sort.Strings(out)
	return out
}

// Undesirable reports whether the zip code has forecast data and falls below
// the risk threshold. Unknown or malformed zip codes report false: the gate
// deliberately fails open when there is no data.
func (s *Snapshot) Undesirable(zip string, threshold float64) bool {
	normalized, ok := NormalizeZip(zip)
	if !ok {
		return false
	}
	score, ok := s.scores[normalized]
	if !ok {
		return false
	}
	return score == nil || *score < threshold
}

// Len reports the number of zip codes with forecast data.
func (s *Snapshot) Len() int { return len(s.scores) }
