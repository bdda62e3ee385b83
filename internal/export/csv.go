package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/studyflow/internal/store"
)

func ToCSV(sessions []store.StudySession, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Subject", "Date", "Duration (min)", "Duration", "Completed", "Notes"}); err != nil {
		return err
	}

	for _, s := range sessions {
		row := []string{
			s.ID,
			s.Subject,
			s.Date,
			fmt.Sprintf("%d", s.Duration),
			formatMinutes(s.Duration),
			fmt.Sprintf("%t", s.Completed),
			s.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}
