// Package audit keeps a file trail of catalog changes, one JSON document per event.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mrlokans/bookshelf/internal/logging"
)

// Action names a recorded catalog change.
type Action string

const (
	ActionRegister Action = "book_register"
	ActionReplace  Action = "book_replace"
	ActionDelete   Action = "book_delete"
)

// Event is what gets written to disk.
type Event struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	BookID    string    `json:"book_id,omitempty"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// Record writes one event. A nil Auditor records nothing.
func (a *Auditor) Record(action Action, bookID string, payload any, opErr error) {
	if a == nil {
		return
	}
	event := Event{
		ID:        uuid.New().String(),
		Action:    action,
		BookID:    bookID,
		Status:    "success",
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if opErr != nil {
		event.Status = "failed"
		event.Error = opErr.Error()
	}
	if _, err := a.save(event.ID, event); err != nil {
		logging.Warn().Err(err).Str("action", string(action)).Msg("audit event not saved")
	}
}

// SaveJSON saves data to a file named after a fresh UUID and returns the file name.
func (a *Auditor) SaveJSON(data any) (string, error) {
	return a.save(uuid.New().String(), data)
}

func (a *Auditor) save(id string, data any) (string, error) {
	if err := os.MkdirAll(a.AuditDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audit directory: %w", err)
	}

	filename := id + ".json"
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	logging.Debug().Str("file", path).Msg("audit file saved")
	return filename, nil
}
