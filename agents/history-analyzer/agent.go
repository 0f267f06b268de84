package historyanalyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"history-analyzer/internal/models"
	"history-analyzer/shared/config"
	"history-analyzer/shared/email"
	"history-analyzer/shared/export"
	"history-analyzer/shared/extractor"
	"history-analyzer/shared/logger"
	"history-analyzer/shared/scheduler"
	"history-analyzer/shared/session"
	"history-analyzer/shared/source"
	"history-analyzer/shared/storage"
)

// Status lines handed to sinks instead of a report.
const (
	StatusAnalyzing          = "Analyzing your YouTube history..."
	StatusPayloadUnavailable = "Error: Could not find YouTube data. Please refresh the page and try again."
	StatusEmpty              = "No videos found in your history. Try scrolling down to load more videos."
)

// ErrEmptyResult marks a pass that parsed fine but produced no videos. It is
// delivered through AgentEvents.OnEmpty, never returned from RunOnce.
var ErrEmptyResult = errors.New("no videos found in history")

// PayloadSource supplies the raw ytInitialData document.
type PayloadSource interface {
	Load(ctx context.Context) ([]byte, error)
}

// Sink receives either a report or a human-readable status.
type Sink interface {
	Present(ctx context.Context, report *models.HistoryReport) error
	Status(ctx context.Context, message string)
}

// HistoryMetrics implements scheduler.Metrics for one pass.
type HistoryMetrics struct {
	VideosFound      int  `json:"videos_found"`
	FullyWatched     int  `json:"fully_watched"`
	PartiallyWatched int  `json:"partially_watched"`
	Channels         int  `json:"channels"`
	Exported         bool `json:"exported"`
}

func (m HistoryMetrics) GetSummary() string {
	summary := fmt.Sprintf("found %d unique videos (%d fully watched, %d partially watched) across %d channels",
		m.VideosFound, m.FullyWatched, m.PartiallyWatched, m.Channels)
	if m.Exported {
		summary += ", csv exported"
	}
	return summary
}

// HistoryAgent implements the scheduler.Agent interface
type HistoryAgent struct {
	config  *config.Config
	session *session.Session
	source  PayloadSource
	sinks   []Sink
}

func NewHistoryAgent(cfg *config.Config, sess *session.Session) *HistoryAgent {
	return &HistoryAgent{
		config:  cfg,
		session: sess,
	}
}

func (h *HistoryAgent) Name() string {
	return "YouTube History Analyzer"
}

func (h *HistoryAgent) Initialize() error {
	log := logger.WithComponent("agent")
	log.Infof("Initializing %s...", h.Name())

	if h.session == nil {
		h.session = session.New()
	}

	if h.source == nil {
		if h.config.Source.Location == "" {
			return fmt.Errorf("no history source configured")
		}
		h.source = source.NewSource(&h.config.Source)
		log.Infof("Payload source initialized (%s)", h.config.Source.Location)
	}

	if len(h.sinks) == 0 {
		h.sinks = append(h.sinks, newLogSink(h.config.Filter))
		if h.config.Email.Enabled() {
			h.sinks = append(h.sinks, email.NewSender(&h.config.Email))
			log.Info("Email sink initialized")
		}
	}

	return nil
}

// RunOnce performs one extraction pass. Every pass starts from a new store
// and replaces the session's records wholesale.
func (h *HistoryAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()
	log := logger.WithComponent("agent")

	log.Info(StatusAnalyzing)

	payload, err := h.source.Load(ctx)
	if err != nil {
		h.status(ctx, StatusPayloadUnavailable)
		return fmt.Errorf("failed to load history payload: %w", err)
	}

	store := storage.NewVideoStore()
	extractor.ExtractVideos(payload, store)
	records := store.Values()

	summary := h.session.Replace(records)

	if len(records) == 0 {
		log.Warn(StatusEmpty)
		h.status(ctx, StatusEmpty)
		events.OnEmpty(ErrEmptyResult, time.Since(startTime))
		return nil
	}

	log.Infof("Extracted %d unique videos", len(records))

	report := h.session.Report()
	for _, sink := range h.sinks {
		if err := sink.Present(ctx, report); err != nil {
			log.Warnf("Failed to present report: %v", err)
			events.OnPartialFailure(fmt.Errorf("present report: %w", err), time.Since(startTime))
		}
	}

	metrics := HistoryMetrics{
		VideosFound:      summary.Total,
		FullyWatched:     summary.FullyWatchedCount,
		PartiallyWatched: summary.PartiallyWatchedCount,
		Channels:         len(summary.UniqueChannels),
	}

	if h.config.Export.Enabled {
		if err := export.WriteFile(h.config.Export.Path, report.Records); err != nil {
			events.OnPartialFailure(fmt.Errorf("export csv: %w", err), time.Since(startTime))
		} else {
			metrics.Exported = true
			log.Infof("Exported %d videos to %s", len(report.Records), h.config.Export.Path)
		}
	}

	events.OnSuccess(metrics, time.Since(startTime))
	return nil
}

func (h *HistoryAgent) status(ctx context.Context, message string) {
	for _, sink := range h.sinks {
		sink.Status(ctx, message)
	}
}
