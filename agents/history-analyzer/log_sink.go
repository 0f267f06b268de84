package historyanalyzer

import (
	"context"

	"github.com/sirupsen/logrus"

	"history-analyzer/internal/models"
	"history-analyzer/shared/config"
	"history-analyzer/shared/filter"
	"history-analyzer/shared/logger"
)

// logSink prints the summary and the records visible under the configured
// filter.
type logSink struct {
	filter models.FilterState
	log    *logrus.Entry
}

func newLogSink(cfg config.FilterConfig) *logSink {
	return &logSink{
		filter: models.FilterState{Query: cfg.Query, HideFullyWatched: cfg.HideFullyWatched},
		log:    logger.WithComponent("report"),
	}
}

func (l *logSink) Present(ctx context.Context, report *models.HistoryReport) error {
	s := report.Summary
	l.log.WithFields(logrus.Fields{
		"total":             s.Total,
		"fully_watched":     s.FullyWatchedCount,
		"partially_watched": s.PartiallyWatchedCount,
		"channels":          len(s.UniqueChannels),
	}).Infof("Total Unique Videos: %d | Fully Watched: %d (%d%%) | Partially Watched: %d (%d%%)",
		s.Total, s.FullyWatchedCount, s.FullyWatchedPercent, s.PartiallyWatchedCount, s.PartiallyWatchedPercent)

	visible := filter.Apply(report.Records, l.filter)
	l.log.Infof("%d videos visible (query %q, hide fully watched %t)", len(visible), l.filter.Query, l.filter.HideFullyWatched)

	for _, record := range visible {
		l.log.WithFields(logrus.Fields{
			"id":       record.ID,
			"channel":  record.ChannelName,
			"duration": record.Duration,
			"views":    record.ViewCount,
			"progress": record.Progress.Percent,
		}).Debug(record.Title)
	}
	return nil
}

func (l *logSink) Status(ctx context.Context, message string) {
	l.log.Info(message)
}
