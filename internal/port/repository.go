package port

import "github.com/vertextoedge/bbb-archive/internal/domain"

// TaskRepository persists download task history for the web UI.
type TaskRepository interface {
	// CreateTask inserts a new task row
	CreateTask(task *domain.DownloadTask) error

	// UpdateTaskStatus moves a task to a new status, recording the error
	// message for failed tasks (empty otherwise)
	UpdateTaskStatus(id string, status domain.TaskStatus, errMsg string) error

	// AssignTaskSession records the resolved session id on a task
	AssignTaskSession(id, sessionID string) error

	// RecentTasks returns up to limit tasks, newest first
	RecentTasks(limit int) ([]*domain.DownloadTask, error)
}

// Store is the persistence boundary consumed by the application.
type Store interface {
	TaskRepository

	// Ping checks connectivity for health reporting
	Ping() error

	// Close releases the underlying database
	Close() error
}
