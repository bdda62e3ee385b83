package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studyflow/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Date        string `json:"date"`
	DurationMin int    `json:"duration_minutes"`
	Duration    string `json:"duration"`
	Completed   bool   `json:"completed"`
	Notes       string `json:"notes,omitempty"`
}

func ToJSON(sessions []store.StudySession, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		export.Sessions = append(export.Sessions, jsonSession{
			ID:          s.ID,
			Subject:     s.Subject,
			Date:        s.Date,
			DurationMin: s.Duration,
			Duration:    formatMinutes(s.Duration),
			Completed:   s.Completed,
			Notes:       s.Notes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
