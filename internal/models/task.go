package models

import (
	"time"
)

// TaskStatus represents the kanban bucket a task sits in
type TaskStatus string

const (
	StatusTodo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// Statuses lists the board buckets in display order.
var Statuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the three board buckets.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a card on a project board
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"size:1000;not null"`
	Status      TaskStatus `json:"status" gorm:"not null;default:'To Do';index:idx_tasks_bucket,priority:2"`
	ProjectID   string     `json:"projectId" gorm:"column:project_id;not null;index;index:idx_tasks_bucket,priority:1"`
	Order       int        `json:"order" gorm:"column:position;not null;default:0;index:idx_tasks_bucket,priority:3"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// ReorderItem is one entry of a bulk reorder request.
type ReorderItem struct {
	ID     string     `json:"id"`
	Order  int        `json:"order"`
	Status TaskStatus `json:"status"`
}

// TaskStats counts tasks per bucket.
type TaskStats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// CountByStatus tallies tasks into TaskStats.
func CountByStatus(tasks []Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			stats.Todo++
		case StatusInProgress:
			stats.InProgress++
		case StatusDone:
			stats.Done++
		}
	}
	return stats
}
