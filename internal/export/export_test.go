package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sadopc/studyflow/internal/store"
)

func sampleSessions() []store.StudySession {
	return []store.StudySession{
		{
			ID:        "s1",
			UserID:    "u1",
			Subject:   "Math",
			Duration:  90,
			Date:      "2025-03-05T10:00:00Z",
			Notes:     "integrals, with a \"tricky\" comma, here",
			Completed: true,
			CreatedAt: "2025-03-05T10:00:00Z",
		},
		{
			ID:        "s2",
			UserID:    "u1",
			Subject:   "History",
			Duration:  45,
			Date:      "2025-03-04T19:30:00Z",
			Completed: true,
			CreatedAt: "2025-03-04T19:30:00Z",
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := ToCSV(sampleSessions(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][3] != "Duration (min)" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Math" || rows[1][3] != "90" || rows[1][4] != "1h 30m" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[1][6] != "integrals, with a \"tricky\" comma, here" {
		t.Fatalf("notes not preserved through quoting: %q", rows[1][6])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ToJSON(sampleSessions(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if got.Count != 2 || len(got.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got count=%d len=%d", got.Count, len(got.Sessions))
	}
	if got.ExportedAt == "" {
		t.Fatal("exported_at should be set")
	}
	if got.Sessions[0].Subject != "Math" || got.Sessions[0].Duration != "1h 30m" {
		t.Fatalf("unexpected first session: %+v", got.Sessions[0])
	}
	if got.Sessions[1].Notes != "" {
		t.Fatalf("empty notes should stay empty, got %q", got.Sessions[1].Notes)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "0h 00m"},
		{5, "0h 05m"},
		{60, "1h 00m"},
		{90, "1h 30m"},
		{125, "2h 05m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.mins); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}
