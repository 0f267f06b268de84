package models

import (
	"fmt"
	"math"
	"time"
)

const (
	// NotAvailable is used for display fields missing from the payload.
	NotAvailable = "N/A"
	// UnknownChannel is used when no owner text could be recovered.
	UnknownChannel = "Unknown channel"
	// DefaultThumbnailURL is shown for records without a thumbnail.
	DefaultThumbnailURL = "https://i.ytimg.com/vi/default/mqdefault.jpg"

	// FullyWatchedThreshold is the percent at which a video counts as fully watched.
	// The value is a heuristic carried over as-is; it is not literal completion.
	FullyWatchedThreshold = 95.0
)

// Progress describes how much of a video has been watched.
type Progress struct {
	Watched bool    `json:"watched"`
	Percent float64 `json:"percent"`
}

// FullyWatched reports whether the percent reaches FullyWatchedThreshold.
func (p Progress) FullyWatched() bool {
	return p.Percent >= FullyWatchedThreshold
}

// ClampPercent bounds a percent to [0,100].
func ClampPercent(percent float64) float64 {
	switch {
	case math.IsNaN(percent):
		return 0
	case percent < 0:
		return 0
	case percent > 100:
		return 100
	}
	return percent
}

// VideoRecord is one watch-history entry extracted from the page payload.
type VideoRecord struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	ViewCount     string   `json:"view_count"`
	Duration      string   `json:"duration"`
	ChannelName   string   `json:"channel_name"`
	ChannelURL    *string  `json:"channel_url"`
	PublishedTime string   `json:"published_time"`
	Progress      Progress `json:"progress"`
}

// WatchURL links to the video on youtube.com.
func (v VideoRecord) WatchURL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID)
}

// Thumbnail returns the extracted thumbnail or DefaultThumbnailURL.
func (v VideoRecord) Thumbnail() string {
	if v.ThumbnailURL == "" {
		return DefaultThumbnailURL
	}
	return v.ThumbnailURL
}

// AnalysisSummary holds the counts and rounded percentages for a record set.
type AnalysisSummary struct {
	Total                   int      `json:"total"`
	WatchedCount            int      `json:"watched_count"`
	FullyWatchedCount       int      `json:"fully_watched_count"`
	PartiallyWatchedCount   int      `json:"partially_watched_count"`
	FullyWatchedPercent     int      `json:"fully_watched_percent"`
	PartiallyWatchedPercent int      `json:"partially_watched_percent"`
	UniqueChannels          []string `json:"unique_channels"`
}

// FilterState is the ephemeral text query and hide toggle of a viewer.
type FilterState struct {
	Query            string `json:"query"`
	HideFullyWatched bool   `json:"hide_fully_watched"`
}

// HistoryReport is what a sink receives after a successful pass.
type HistoryReport struct {
	Date    time.Time       `json:"date"`
	Records []VideoRecord   `json:"records"`
	Summary AnalysisSummary `json:"summary"`
}
