package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a download task row.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// DownloadTask records one download request made through the web UI. It is
// history for the UI only; the sentinel file inside the session directory
// remains the pipeline's sole completion signal.
type DownloadTask struct {
	ID        string
	URL       string
	Name      string
	SessionID string
	Status    TaskStatus
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDownloadTask creates a pending task for a requested session URL.
func NewDownloadTask(url, name string) *DownloadTask {
	now := time.Now()
	return &DownloadTask{
		ID:        uuid.NewString(),
		URL:       url,
		Name:      name,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
