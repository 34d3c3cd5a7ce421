package eligibility

import (
	"testing"

	"github.com/hearthshare/inquiry/internal/config"
	forecastdomain "github.com/hearthshare/inquiry/internal/forecast/domain"
)

func testRules() Rules {
	return NewRules(config.Config{
		OtherStates:     []string{"TX", "AZ"},
		ExpansionStates: []string{"CA", "FL"},
		ZipRiskValue:    0.5,
	})
}

func score(v float64) *float64 { return &v }

func testSnapshot() *forecastdomain.Snapshot {
	return forecastdomain.NewSnapshot([]forecastdomain.ZipForecast{
		{ZipCode: "02108", ForecastScore: score(0.9)},
		{ZipCode: "02109", ForecastScore: score(0.2)},
		{ZipCode: "2110", ForecastScore: nil},
	})
}

func TestClassify(t *testing.T) {
	rules := testRules()
	snapshot := testSnapshot()

	tests := []struct {
		name     string
		state    string
		zip      string
		category Category
		message  string
	}{
		{"other state", "TX", "02108", CategoryOtherState, "rejected other states"},
		{"expansion state", "CA", "02108", CategoryExpansionState, "rejected expansion states"},
		{"operational state desirable zip", "MA", "02108", CategoryNone, ""},
		{"operational state undesirable zip", "MA", "02109", CategoryUndesirableZip, "rejected undesirable zip code"},
		{"nil score counts as undesirable", "MA", "02110", CategoryUndesirableZip, "rejected undesirable zip code"},
		{"unknown zip fails open", "MA", "99999", CategoryNone, ""},
		{"malformed zip fails open", "MA", "ABCDE", CategoryNone, ""},
		{"state check wins over zip check", "TX", "02109", CategoryOtherState, "rejected other states"},
		{"lowercase state", "tx", "02108", CategoryOtherState, "rejected other states"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			category, message := rules.Classify(tc.state, tc.zip, snapshot)
			if category != tc.category {
				t.Fatalf("expected category %q, got %q", tc.category, category)
			}
			if message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, message)
			}
		})
	}
}

func TestClassifyNilSnapshotFailsOpen(t *testing.T) {
	category, _ := testRules().Classify("MA", "02109", nil)
	if category != CategoryNone {
		t.Fatalf("expected acceptance without forecast data, got %q", category)
	}
}

func TestRegistryResolvesEveryCategory(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	want := map[Category]string{
		CategoryOtherState:     SlugOtherState,
		CategoryExpansionState: SlugExpansionState,
		CategoryUndesirableZip: SlugUndesirableZip,
	}
	for category, slug := range want {
		got, ok := registry.Resolve(category)
		if !ok {
			t.Fatalf("category %q has no slug", category)
		}
		if got != slug {
			t.Fatalf("category %q: expected slug %q, got %q", category, slug, got)
		}

		context, err := registry.ContextFor(got)
		if err != nil {
			t.Fatalf("slug %q: %v", got, err)
		}
		if context.Message == "" {
			t.Fatalf("slug %q has an empty message", got)
		}
	}
}

func TestRegistryUnknownSlug(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if _, err := registry.ContextFor("nope"); err != ErrOutcomeNotFound {
		t.Fatalf("expected ErrOutcomeNotFound, got %v", err)
	}
	// Category keys are internal; they must never work as slugs.
	if _, err := registry.ContextFor(string(CategoryOtherState)); err != ErrOutcomeNotFound {
		t.Fatalf("expected ErrOutcomeNotFound for category key, got %v", err)
	}
}

func TestCategoryMessage(t *testing.T) {
	if got := CategoryUndesirableZip.Message(); got != "rejected undesirable zip code" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := CategoryNone.Message(); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
}
