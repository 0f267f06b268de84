package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"history-analyzer/internal/models"
)

// DefaultFileName is used when no export path is configured.
const DefaultFileName = "youtube_history.csv"

var header = []string{"Video ID", "Title", "Channel", "Duration", "View Count", "Progress (%)"}

// WriteCSV writes a header row and one row per record, in order. Fields that
// contain a comma, a quote or a newline are quoted and inner quotes doubled.
func WriteCSV(w io.Writer, records []models.VideoRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.ID,
			record.Title,
			record.ChannelName,
			record.Duration,
			record.ViewCount,
			formatPercent(record.Progress.Percent),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", record.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteFile exports records to path, creating parent directories as needed.
func WriteFile(path string, records []models.VideoRecord) error {
	if path == "" {
		path = DefaultFileName
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

func formatPercent(percent float64) string {
	return strconv.FormatFloat(models.ClampPercent(percent), 'f', -1, 64)
}
