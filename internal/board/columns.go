package board

import (
	"fmt"
	"slices"

	"project-board-api/internal/models"
)

// Bucket is one column of the board.
type Bucket struct {
	Status models.TaskStatus `json:"status"`
	Tasks  []models.Task     `json:"tasks"`
}

// Column returns the tasks of one bucket sorted by order, as the board shows them.
func Column(tasks []models.Task, status models.TaskStatus) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	sortByOrder(out)
	return out
}

// Columns returns the three buckets in board order.
func Columns(tasks []models.Task) []Bucket {
	out := make([]Bucket, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		out = append(out, Bucket{Status: s, Tasks: Column(tasks, s)})
	}
	return out
}

// Locate returns the current board position of a task.
func Locate(tasks []models.Task, id string) (Position, bool) {
	i := slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return Position{}, false
	}
	status := tasks[i].Status
	col := Column(tasks, status)
	idx := slices.IndexFunc(col, func(t models.Task) bool { return t.ID == id })
	return Position{Bucket: status, Index: idx}, true
}

// Arrange puts the listed tasks at the top of the status column in the given
// order. The rest of the column follows in its current order, and the column
// is renumbered. Other columns are returned unchanged.
func Arrange(tasks []models.Task, status models.TaskStatus, ids []string) ([]models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	col := Column(tasks, status)

	arranged := make([]models.Task, 0, len(col))
	for _, id := range ids {
		i := slices.IndexFunc(col, func(t models.Task) bool { return t.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %s is not in %q", ErrUnknownTask, id, status)
		}
		arranged = append(arranged, col[i])
		col = slices.Delete(col, i, i+1)
	}
	arranged = append(arranged, col...)
	renumber(arranged)

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != status {
			out = append(out, t)
		}
	}
	return append(arranged, out...), nil
}
