package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func score(v float64) *float64 { return &v }

func TestNormalizeZip(t *testing.T) {
	tests := []struct {
		in   string
		out  string
		ok   bool
	}{
		{"02108", "02108", true},
		{"2108", "02108", true},
		{" 2108 ", "02108", true},
		{"12345", "12345", true},
		{"ABCDE", "", false},
		{"", "", false},
		{"-1", "", false},
	}
	for _, tc := range tests {
		out, ok := NormalizeZip(tc.in)
		if ok != tc.ok || out != tc.out {
			t.Fatalf("NormalizeZip(%q) = (%q, %v), expected (%q, %v)", tc.in, out, ok, tc.out, tc.ok)
		}
	}
}

func TestSnapshotUndesirable(t *testing.T) {
	snapshot := NewSnapshot([]ZipForecast{
		{ZipCode: "02108", ForecastScore: score(0.9)},
		{ZipCode: "02109", ForecastScore: score(0.2)},
		{ZipCode: "2110", ForecastScore: nil},
	})

	assert.False(t, snapshot.Undesirable("02108", 0.5), "score above threshold")
	assert.True(t, snapshot.Undesirable("02109", 0.5), "score below threshold")
	assert.True(t, snapshot.Undesirable("02110", 0.5), "nil score")
	assert.False(t, snapshot.Undesirable("99999", 0.5), "no row fails open")
	assert.False(t, snapshot.Undesirable("junk", 0.5), "malformed fails open")

	// Threshold is inclusive on the desirable side.
	assert.False(t, snapshot.Undesirable("02108", 0.9))
}

func TestSnapshotDesirableZipCodes(t *testing.T) {
	snapshot := NewSnapshot([]ZipForecast{
		{ZipCode: "2110", ForecastScore: nil},
		{ZipCode: "02109", ForecastScore: score(0.2)},
		{ZipCode: "02108", ForecastScore: score(0.9)},
		{ZipCode: "108", ForecastScore: score(0.7)},
	})

	assert.Equal(t, []string{"00108", "02108"}, snapshot.DesirableZipCodes(0.5))
	assert.Equal(t, 4, snapshot.Len())
}

func TestSnapshotHas(t *testing.T) {
	snapshot := NewSnapshot([]ZipForecast{{ZipCode: "2108", ForecastScore: nil}})
	assert.True(t, snapshot.Has("02108"))
	assert.False(t, snapshot.Has("02109"))
	assert.False(t, snapshot.Has("bad"))
}
