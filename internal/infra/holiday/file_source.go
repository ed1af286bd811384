package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"pick_day_bot/internal/domain/calendar"

	"github.com/sirupsen/logrus"
)

// FileSource serves holidays from an offline-converted JSON dataset
// (government office calendar converted ahead of deployment). The file is
// read per call so a redeployed dataset is picked up without a restart.
type FileSource struct {
	path   string
	logger *logrus.Entry
}

func NewFileSource(path string, logger *logrus.Entry) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// ListHolidays loads the dataset. Entries without a date are dropped rather
// than rejected; the feed is external and dirty by nature. A missing file is
// an empty feed, not an error.
func (s *FileSource) ListHolidays(ctx context.Context) ([]calendar.Holiday, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("path", s.path).Warn("Holiday file missing; continuing with no holidays")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read holiday file %s: %w", s.path, err)
	}

	var entries []calendar.Holiday
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode holiday file %s: %w", s.path, err)
	}

	holidays := entries[:0]
	for _, h := range entries {
		if h.Date == "" {
			s.logger.WithField("name", h.Name).Debug("Skipping holiday entry without a date")
			continue
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}
