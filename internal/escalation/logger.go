// Package escalation appends unresolved queries to a durable CSV log for
// human follow-up.
package escalation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"supportsphere/internal/vectorstore"
)

// header is the fixed column order of the escalation log.
var header = []string{"timestamp", "user_email", "user_question", "model_answer", "reason", "top_docs"}

const timestampLayout = "2006-01-02 15:04:05"

// docProjection is the compact per-document shape serialized into the
// top_docs cell. Row and chunk ids are dropped on purpose: the log is for
// human agents, not for re-retrieval.
type docProjection struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float32 `json:"score"`
}

// Logger appends escalation records to a header-having CSV file.
//
// Appending is a read-modify-write of the whole file, matching the log's
// consumers which re-read it in full. The mutex serializes writers within
// this process; concurrent escalations from separate processes can still
// race and lose an update. Single-writer deployment is assumed.
type Logger struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewLogger creates a Logger writing to the given path. The file and its
// parent directory are created on first Log call.
func NewLogger(path string) *Logger {
	return &Logger{
		path: path,
		now:  time.Now,
	}
}

// Log appends one escalation record with a server-local timestamp.
//
// A missing or zero-length log file is created with the header and the new
// row. An existing file that cannot be parsed as CSV is treated as if it had
// no rows: the new event is never dropped because prior content was corrupt.
func (l *Logger) Log(userQuestion, modelAnswer, reason string, topDocs []vectorstore.Document, userEmail string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	projections := make([]docProjection, 0, len(topDocs))
	for _, d := range topDocs {
		projections = append(projections, docProjection{
			Question: d.Question,
			Answer:   d.Answer,
			Score:    d.Score,
		})
	}
	topDocsJSON, err := json.Marshal(projections)
	if err != nil {
		return fmt.Errorf("failed to serialize top docs: %w", err)
	}

	row := []string{
		l.now().Format(timestampLayout),
		userEmail,
		userQuestion,
		modelAnswer,
		reason,
		string(topDocsJSON),
	}

	rows := l.readExistingRows()
	rows = append(rows, row)

	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("failed to open escalation log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush escalation log: %w", err)
	}

	return nil
}

// readExistingRows returns the data rows of the current log file, or nil if
// the file is missing, empty, or not parseable as CSV.
func (l *Logger) readExistingRows() [][]string {
	info, err := os.Stat(l.path)
	if err != nil || info.Size() == 0 {
		return nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		// Corrupt log: keep the new event, discard unreadable history.
		return nil
	}

	// First record is the header.
	return records[1:]
}
