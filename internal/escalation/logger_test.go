package escalation

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"supportsphere/internal/vectorstore"
)

func readLog(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}
	return records
}

func sampleDocs() []vectorstore.Document {
	rowID := int64(3)
	return []vectorstore.Document{
		{Question: "How do I reset my password?", Answer: "Open settings.", RowID: &rowID, Score: 0.9},
	}
}

func TestLogCreatesFreshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "escalations.csv")
	logger := NewLogger(path)

	err := logger.Log("I can't log in", "1. Try resetting.", "User clicked escalate button.", sampleDocs(), "user@example.com")
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	records := readLog(t, path)
	if len(records) != 2 {
		t.Fatalf("log has %d records, want header + 1 row", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(header, ",") {
		t.Errorf("header = %v, want %v", records[0], header)
	}
	if records[1][2] != "I can't log in" {
		t.Errorf("user_question = %q", records[1][2])
	}
	if records[1][1] != "user@example.com" {
		t.Errorf("user_email = %q", records[1][1])
	}
}

func TestLogTopDocsProjection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalations.csv")
	logger := NewLogger(path)

	if err := logger.Log("q", "a", "r", sampleDocs(), ""); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	records := readLog(t, path)
	var docs []map[string]any
	if err := json.Unmarshal([]byte(records[1][5]), &docs); err != nil {
		t.Fatalf("top_docs cell is not valid JSON: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("top_docs has %d entries, want 1", len(docs))
	}
	if docs[0]["question"] != "How do I reset my password?" {
		t.Errorf("top_docs question = %v", docs[0]["question"])
	}
	// Row and chunk ids are deliberately not part of the projection.
	if _, ok := docs[0]["row_id"]; ok {
		t.Error("top_docs projection should not include row_id")
	}
}

func TestLogAppendsSecondRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalations.csv")
	logger := NewLogger(path)

	if err := logger.Log("first question", "a1", "r1", nil, ""); err != nil {
		t.Fatalf("first Log() error = %v", err)
	}
	if err := logger.Log("second question", "a2", "r2", nil, ""); err != nil {
		t.Fatalf("second Log() error = %v", err)
	}

	records := readLog(t, path)
	if len(records) != 3 {
		t.Fatalf("log has %d records, want header + 2 rows", len(records))
	}
	if records[1][2] != "first question" || records[2][2] != "second question" {
		t.Errorf("rows out of order: %q then %q", records[1][2], records[2][2])
	}
}

func TestLogSurvivesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalations.csv")
	// Unbalanced quote makes this unparseable as CSV.
	if err := os.WriteFile(path, []byte("not,a\"valid\ncsv\"file,\"x"), 0644); err != nil {
		t.Fatalf("failed to seed corrupt log: %v", err)
	}

	logger := NewLogger(path)
	if err := logger.Log("rescued question", "a", "r", nil, ""); err != nil {
		t.Fatalf("Log() on corrupt file error = %v, want nil", err)
	}

	records := readLog(t, path)
	if len(records) != 2 {
		t.Fatalf("log has %d records, want header + 1 row", len(records))
	}
	if records[1][2] != "rescued question" {
		t.Errorf("user_question = %q, want the newly logged row", records[1][2])
	}
}

func TestLogZeroLengthFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalations.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to create empty file: %v", err)
	}

	logger := NewLogger(path)
	if err := logger.Log("q", "a", "r", nil, ""); err != nil {
		t.Fatalf("Log() on empty file error = %v", err)
	}

	records := readLog(t, path)
	if len(records) != 2 {
		t.Fatalf("log has %d records, want header + 1 row", len(records))
	}
}

func TestLogTimestampFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalations.csv")
	logger := NewLogger(path)

	if err := logger.Log("q", "a", "r", nil, ""); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	records := readLog(t, path)
	ts := records[1][0]
	if len(ts) != len(timestampLayout) {
		t.Errorf("timestamp %q does not match layout %q", ts, timestampLayout)
	}
}
