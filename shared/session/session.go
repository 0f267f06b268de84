// Package session holds the records of the latest extraction pass for the
// presentation layer. Filtering, removal and export read from an explicit
// Session instead of process-wide state.
package session

import (
	"io"
	"sync"
	"time"

	"history-analyzer/internal/models"
	"history-analyzer/shared/analysis"
	"history-analyzer/shared/export"
	"history-analyzer/shared/filter"
)

type Session struct {
	mu        sync.RWMutex
	records   []models.VideoRecord
	summary   models.AnalysisSummary
	updatedAt time.Time
}

func New() *Session {
	return &Session{summary: analysis.Analyze(nil)}
}

// Replace swaps in the records of a new pass. Nothing from the previous pass
// is kept.
func (s *Session) Replace(records []models.VideoRecord) models.AnalysisSummary {
	held := make([]models.VideoRecord, len(records))
	copy(held, records)
	summary := analysis.Analyze(held)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = held
	s.summary = summary
	s.updatedAt = time.Now()
	return summary
}

// Records returns a copy of the held records in display order.
func (s *Session) Records() []models.VideoRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.VideoRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Session) Summary() models.AnalysisSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Report bundles the held records and summary for a presentation sink.
func (s *Session) Report() *models.HistoryReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.VideoRecord, len(s.records))
	copy(records, s.records)
	return &models.HistoryReport{
		Date:    s.updatedAt,
		Records: records,
		Summary: s.summary,
	}
}

// Visible runs the filter engine over the held records.
func (s *Session) Visible(state models.FilterState) []models.VideoRecord {
	return filter.Apply(s.Records(), state)
}

// Remove drops one record by ID and recomputes the summary. It reports
// whether the ID was held.
func (s *Session) Remove(videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, record := range s.records {
		if record.ID != videoID {
			continue
		}
		remaining := make([]models.VideoRecord, 0, len(s.records)-1)
		remaining = append(remaining, s.records[:i]...)
		remaining = append(remaining, s.records[i+1:]...)
		s.records = remaining
		s.summary = analysis.Analyze(remaining)
		return true
	}
	return false
}

// Export writes the held records as CSV.
func (s *Session) Export(w io.Writer) error {
	return export.WriteCSV(w, s.Records())
}
