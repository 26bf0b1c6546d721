// Package board holds the client side of a kanban board: the ordering engine
// that turns a drag gesture into order/status assignments, and a state
// container that applies them optimistically.
package board

import (
	"cmp"
	"errors"
	"slices"

	"project-board-api/internal/models"
)

// Movement errors
var (
	ErrUnknownTask   = errors.New("task is not on the board")
	ErrInvalidStatus = errors.New("unknown board column")
)

// Position addresses a slot inside one bucket, as shown by Column.
type Position struct {
	Bucket models.TaskStatus
	Index  int
}

// DragResult describes one drag-and-drop gesture. A nil Destination means the
// task was dropped outside any column.
type DragResult struct {
	TaskID      string
	Source      Position
	Destination *Position
}

// Move applies drag to tasks and returns the new task set. changed is false
// when the gesture is a no-op, in which case tasks is returned as is. The
// input slice is never modified.
//
// Only the source and destination buckets are renumbered (0..n-1); tasks of
// other buckets keep their order and status.
func Move(tasks []models.Task, drag DragResult) (result []models.Task, changed bool, err error) {
	dst := drag.Destination
	if dst == nil {
		return tasks, false, nil
	}
	src := drag.Source
	if src.Bucket == dst.Bucket && src.Index == dst.Index {
		return tasks, false, nil
	}
	if !src.Bucket.Valid() || !dst.Bucket.Valid() {
		return tasks, false, ErrInvalidStatus
	}

	var source, destination, untouched []models.Task
	for _, t := range tasks {
		switch t.Status {
		case src.Bucket:
			source = append(source, t)
		case dst.Bucket:
			destination = append(destination, t)
		default:
			untouched = append(untouched, t)
		}
	}
	sortByOrder(source)
	sortByOrder(destination)

	// A stale index is tolerated as long as the task is still in the bucket.
	idx := src.Index
	if idx < 0 || idx >= len(source) || source[idx].ID != drag.TaskID {
		idx = slices.IndexFunc(source, func(t models.Task) bool { return t.ID == drag.TaskID })
		if idx < 0 {
			return tasks, false, ErrUnknownTask
		}
	}
	moved := source[idx]
	source = slices.Delete(source, idx, idx+1)

	if src.Bucket == dst.Bucket {
		source = insertAt(source, dst.Index, moved)
	} else {
		moved.Status = dst.Bucket
		destination = insertAt(destination, dst.Index, moved)
	}

	renumber(source)
	renumber(destination)

	result = make([]models.Task, 0, len(tasks))
	result = append(result, source...)
	result = append(result, destination...)
	result = append(result, untouched...)
	return result, true, nil
}

// ReorderItems converts a task set to the bulk reorder payload.
func ReorderItems(tasks []models.Task) []models.ReorderItem {
	items := make([]models.ReorderItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, models.ReorderItem{ID: t.ID, Order: t.Order, Status: t.Status})
	}
	return items
}

func insertAt(tasks []models.Task, index int, t models.Task) []models.Task {
	index = max(0, min(index, len(tasks)))
	return slices.Insert(tasks, index, t)
}

func renumber(tasks []models.Task) {
	for i := range tasks {
		tasks[i].Order = i
	}
}

func sortByOrder(tasks []models.Task) {
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		return cmp.Compare(a.Order, b.Order)
	})
}
