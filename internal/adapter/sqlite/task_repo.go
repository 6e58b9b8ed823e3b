package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/vertextoedge/bbb-archive/internal/domain"
)

// CreateTask inserts a new download task row
func (s *Store) CreateTask(task *domain.DownloadTask) error {
	query := `
		INSERT INTO download_tasks (id, url, name, session_id, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		task.ID, task.URL, task.Name, task.SessionID,
		string(task.Status), task.Error, task.CreatedAt, task.UpdatedAt)
	return err
}

// UpdateTaskStatus moves a task to a new status, recording the error
// message for failed tasks
func (s *Store) UpdateTaskStatus(id string, status domain.TaskStatus, errMsg string) error {
	query := `
		UPDATE download_tasks
		SET status = ?, error = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.Exec(query, string(status), errMsg, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// AssignTaskSession records the resolved session id on a task
func (s *Store) AssignTaskSession(id, sessionID string) error {
	query := `
		UPDATE download_tasks
		SET session_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.Exec(query, sessionID, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// RecentTasks returns up to limit tasks, newest first
func (s *Store) RecentTasks(limit int) ([]*domain.DownloadTask, error) {
	query := `
		SELECT id, url, name, session_id, status, error, created_at, updated_at
		FROM download_tasks
		ORDER BY created_at DESC, id
		LIMIT ?
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.DownloadTask
	for rows.Next() {
		task := &domain.DownloadTask{}
		var status string
		if err := rows.Scan(&task.ID, &task.URL, &task.Name, &task.SessionID,
			&status, &task.Error, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		task.Status = domain.TaskStatus(status)
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// GetTask returns one task by id
func (s *Store) GetTask(id string) (*domain.DownloadTask, error) {
	query := `
		SELECT id, url, name, session_id, status, error, created_at, updated_at
		FROM download_tasks
		WHERE id = ?
	`
	task := &domain.DownloadTask{}
	var status string
	err := s.db.QueryRow(query, id).Scan(&task.ID, &task.URL, &task.Name,
		&task.SessionID, &status, &task.Error, &task.CreatedAt, &task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	return task, nil
}
