// Package eligibility vets inquiry submissions against geographic rules and
// maps rejections to the opaque outcome slugs used in outcome URLs.
package eligibility

import (
	"strings"

	"github.com/hearthshare/inquiry/internal/config"
	forecastdomain "github.com/hearthshare/inquiry/internal/forecast/domain"
)

// Category identifies a vetting rejection. Keys carry a leading ordinal that
// matches the outcome ID in the product team's outcome sheet.
type Category string

const (
	CategoryNone           Category = ""
	CategoryOtherState     Category = "1_other_states"
	CategoryExpansionState Category = "2_expansion_states"
	CategoryUndesirableZip Category = "3_undesirable_zip_code"
)

// Message derives the display message from the category key: drop the leading
// ordinal token and join the remaining words.
func (c Category) Message() string {
	if c == CategoryNone {
		return ""
	}
	parts := strings.Split(string(c), "_")
	return "rejected " + strings.Join(parts[1:], " ")
}

// Rules holds the state sets and the zip risk threshold. States in neither
// set are operational.
type Rules struct {
	otherStates     map[string]struct{}
	expansionStates map[string]struct{}
	riskValue       float64
}

func NewRules(cfg config.Config) Rules {
	return Rules{
		otherStates:     stateSet(cfg.OtherStates),
		expansionStates: stateSet(cfg.ExpansionStates),
		riskValue:       cfg.ZipRiskValue,
	}
}

func stateSet(states []string) map[string]struct{} {
	set := make(map[string]struct{}, len(states))
	for _, state := range states {
		set[strings.ToUpper(strings.TrimSpace(state))] = struct{}{}
	}
	return set
}

// Classify returns the rejection category for a (state, zip code) pair, or
// CategoryNone when the submission is accepted. Zip codes with no forecast
// data are accepted: the zip gate fails open by design of the risk model.
func (r Rules) Classify(state, zipCode string, snapshot *forecastdomain.Snapshot) (Category, string) {
	normalized := strings.ToUpper(strings.TrimSpace(state))
	if _, ok := r.otherStates[normalized]; ok {
		return CategoryOtherState, CategoryOtherState.Message()
	}
	if _, ok := r.expansionStates[normalized]; ok {
		return CategoryExpansionState, CategoryExpansionState.Message()
	}

	// Operational state: the zip code decides.
	if snapshot != nil && snapshot.Undesirable(zipCode, r.riskValue) {
		return CategoryUndesirableZip, CategoryUndesirableZip.Message()
	}
	return CategoryNone, ""
}

// RiskValue exposes the configured forecast hurdle.
func (r Rules) RiskValue() float64 { return r.riskValue }
