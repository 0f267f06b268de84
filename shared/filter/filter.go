// Package filter decides which materialized records are visible for a given
// text query and hide toggle.
package filter

import (
	"strings"

	"history-analyzer/internal/models"
)

// Visible returns the set of IDs that pass the query and the hide rule.
// An empty or whitespace-only query matches everything.
func Visible(records []models.VideoRecord, query string, hideFullyWatched bool) map[string]struct{} {
	visible := make(map[string]struct{}, len(records))
	q := normalize(query)
	for _, record := range records {
		if matches(record, q, hideFullyWatched) {
			visible[record.ID] = struct{}{}
		}
	}
	return visible
}

// Apply returns the visible records in their original order.
func Apply(records []models.VideoRecord, state models.FilterState) []models.VideoRecord {
	visible := Visible(records, state.Query, state.HideFullyWatched)
	out := make([]models.VideoRecord, 0, len(visible))
	for _, record := range records {
		if _, ok := visible[record.ID]; ok {
			out = append(out, record)
		}
	}
	return out
}

// ByChannel is the filter state produced by picking a channel name.
func ByChannel(channel string, hideFullyWatched bool) models.FilterState {
	return models.FilterState{Query: channel, HideFullyWatched: hideFullyWatched}
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// matches expects an already normalized query. The hide rule runs after the
// text match and can only narrow the result.
func matches(record models.VideoRecord, query string, hideFullyWatched bool) bool {
	if query != "" &&
		!strings.Contains(strings.ToLower(record.Title), query) &&
		!strings.Contains(strings.ToLower(record.ChannelName), query) {
		return false
	}
	if hideFullyWatched && record.Progress.FullyWatched() {
		return false
	}
	return true
}
