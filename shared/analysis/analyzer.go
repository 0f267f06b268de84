package analysis

import (
	"math"

	"history-analyzer/internal/models"
)

// Analyze computes the summary of a full record collection. It is recomputed
// wholesale on every call; an empty collection yields all zeros.
func Analyze(records []models.VideoRecord) models.AnalysisSummary {
	summary := models.AnalysisSummary{
		Total:          len(records),
		UniqueChannels: UniqueChannels(records),
	}

	for _, record := range records {
		// Percent only means something once the video is marked watched.
		if !record.Progress.Watched {
			continue
		}
		summary.WatchedCount++
		if record.Progress.FullyWatched() {
			summary.FullyWatchedCount++
		} else {
			summary.PartiallyWatchedCount++
		}
	}

	summary.FullyWatchedPercent = percentOf(summary.FullyWatchedCount, summary.Total)
	summary.PartiallyWatchedPercent = percentOf(summary.PartiallyWatchedCount, summary.Total)

	return summary
}

// UniqueChannels lists channel names in first-seen order.
func UniqueChannels(records []models.VideoRecord) []string {
	seen := make(map[string]bool)
	channels := []string{}
	for _, record := range records {
		if seen[record.ChannelName] {
			continue
		}
		seen[record.ChannelName] = true
		channels = append(channels, record.ChannelName)
	}
	return channels
}

func percentOf(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}
