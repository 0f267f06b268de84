package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"history-analyzer/internal/models"
)

func sampleRecords() []models.VideoRecord {
	return []models.VideoRecord{
		{ID: "a", Title: "Go Concurrency Patterns", ChannelName: "Google for Developers", Progress: models.Progress{Watched: true, Percent: 100}},
		{ID: "b", Title: "Rust in 100 seconds", ChannelName: "Fireship", Progress: models.Progress{Watched: true, Percent: 30}},
		{ID: "c", Title: "Cooking pasta", ChannelName: "Chef GO", Progress: models.Progress{}},
		{ID: "d", Title: "Lecture 1", ChannelName: "MIT OpenCourseWare", Progress: models.Progress{Watched: true, Percent: 95}},
	}
}

func ids(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func TestVisible(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name     string
		query    string
		hide     bool
		expected []string
	}{
		{"Empty query matches all", "", false, []string{"a", "b", "c", "d"}},
		{"Whitespace query matches all", "   \t", false, []string{"a", "b", "c", "d"}},
		{"Title substring, case-insensitive", "CONCURRENCY", false, []string{"a"}},
		{"Channel substring", "fire", false, []string{"b"}},
		{"Title or channel", "go", false, []string{"a", "c"}},
		{"Query is trimmed", "  pasta ", false, []string{"c"}},
		{"No match", "haskell", false, []string{}},
		{"Hide fully watched", "", true, []string{"b", "c"}},
		{"Hide narrows text match", "go", true, []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.expected, ids(Visible(records, tt.query, tt.hide)))
		})
	}
}

func TestVisibleIdempotent(t *testing.T) {
	records := sampleRecords()
	first := Visible(records, "", false)
	second := Visible(records, "", false)

	assert.Len(t, first, len(records))
	assert.Equal(t, first, second)
}

func TestVisibleHideRuleComposition(t *testing.T) {
	records := []models.VideoRecord{
		{ID: "x", Title: "Matching title", ChannelName: "Any", Progress: models.Progress{Watched: true, Percent: 100}},
	}

	assert.Contains(t, Visible(records, "matching", false), "x")
	assert.NotContains(t, Visible(records, "matching", true), "x")
}

func TestApplyKeepsOrder(t *testing.T) {
	out := Apply(sampleRecords(), models.FilterState{Query: "o"})

	got := make([]string, 0, len(out))
	for _, r := range out {
		got = append(got, r.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)

	out = Apply(sampleRecords(), models.FilterState{HideFullyWatched: true})
	assert.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
}

func TestByChannel(t *testing.T) {
	state := ByChannel("Fireship", false)
	out := Apply(sampleRecords(), state)

	assert.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)
}
