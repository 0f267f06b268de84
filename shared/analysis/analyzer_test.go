package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"history-analyzer/internal/models"
)

func record(id, channel string, watched bool, percent float64) models.VideoRecord {
	return models.VideoRecord{
		ID:          id,
		ChannelName: channel,
		Progress:    models.Progress{Watched: watched, Percent: percent},
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		records  []models.VideoRecord
		expected models.AnalysisSummary
	}{
		{
			name:    "Empty collection",
			records: nil,
			expected: models.AnalysisSummary{
				UniqueChannels: []string{},
			},
		},
		{
			name: "Mixed progress",
			records: []models.VideoRecord{
				record("a", "One", true, 100),
				record("b", "Two", true, 100),
				record("c", "One", true, 40),
				record("d", "Three", false, 0),
			},
			expected: models.AnalysisSummary{
				Total:                   4,
				WatchedCount:            3,
				FullyWatchedCount:       2,
				PartiallyWatchedCount:   1,
				FullyWatchedPercent:     50,
				PartiallyWatchedPercent: 25,
				UniqueChannels:          []string{"One", "Two", "Three"},
			},
		},
		{
			name: "Threshold boundary",
			records: []models.VideoRecord{
				record("a", "C", true, 95),
				record("b", "C", true, 94.9),
			},
			expected: models.AnalysisSummary{
				Total:                   2,
				WatchedCount:            2,
				FullyWatchedCount:       1,
				PartiallyWatchedCount:   1,
				FullyWatchedPercent:     50,
				PartiallyWatchedPercent: 50,
				UniqueChannels:          []string{"C"},
			},
		},
		{
			name: "Unwatched records are excluded regardless of percent",
			records: []models.VideoRecord{
				record("a", "C", false, 100),
				record("b", "C", false, 50),
			},
			expected: models.AnalysisSummary{
				Total:          2,
				UniqueChannels: []string{"C"},
			},
		},
		{
			name: "Rounded percentages",
			records: []models.VideoRecord{
				record("a", "C", true, 100),
				record("b", "C", true, 10),
				record("c", "C", true, 20),
			},
			expected: models.AnalysisSummary{
				Total:                   3,
				WatchedCount:            3,
				FullyWatchedCount:       1,
				PartiallyWatchedCount:   2,
				FullyWatchedPercent:     33,
				PartiallyWatchedPercent: 67,
				UniqueChannels:          []string{"C"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Analyze(tt.records))
		})
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	records := []models.VideoRecord{
		record("a", "One", true, 100),
		record("b", "Two", true, 12),
	}
	assert.Equal(t, Analyze(records), Analyze(records))
}

func TestUniqueChannels(t *testing.T) {
	records := []models.VideoRecord{
		record("a", "B", false, 0),
		record("b", "A", false, 0),
		record("c", "B", false, 0),
		record("d", models.UnknownChannel, false, 0),
	}
	assert.Equal(t, []string{"B", "A", models.UnknownChannel}, UniqueChannels(records))
}
