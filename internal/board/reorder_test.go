package board

import (
	"testing"

	"project-board-api/internal/models"

	"github.com/stretchr/testify/require"
)

func task(id string, status models.TaskStatus, order int) models.Task {
	return models.Task{ID: id, Title: id, Status: status, Order: order, ProjectID: "p-1"}
}

func byID(tasks []models.Task) map[string]models.Task {
	out := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		out[t.ID] = t
	}
	return out
}

func ids(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func to(bucket models.TaskStatus, index int) *Position {
	return &Position{Bucket: bucket, Index: index}
}

func TestMove_WithinBucketToTop(t *testing.T) {
	tasks := []models.Task{
		task("A", models.StatusTodo, 0),
		task("B", models.StatusTodo, 1),
		task("C", models.StatusTodo, 2),
	}

	got, changed, err := Move(tasks, DragResult{
		TaskID:      "C",
		Source:      Position{Bucket: models.StatusTodo, Index: 2},
		Destination: to(models.StatusTodo, 0),
	})
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, []string{"C", "A", "B"}, ids(Column(got, models.StatusTodo)))

	m := byID(got)
	require.Equal(t, 0, m["C"].Order)
	require.Equal(t, 1, m["A"].Order)
	require.Equal(t, 2, m["B"].Order)
	for _, tk := range got {
		require.Equal(t, models.StatusTodo, tk.Status)
	}

	// input untouched
	require.Equal(t, 2, tasks[2].Order)
}

func TestMove_ToEmptyBucket(t *testing.T) {
	tasks := []models.Task{task("A", models.StatusTodo, 0)}

	got, changed, err := Move(tasks, DragResult{
		TaskID:      "A",
		Source:      Position{Bucket: models.StatusTodo, Index: 0},
		Destination: to(models.StatusInProgress, 0),
	})
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, got, 1)
	require.Equal(t, models.StatusInProgress, got[0].Status)
	require.Equal(t, 0, got[0].Order)
	require.Empty(t, Column(got, models.StatusTodo))
}

func TestMove_AcrossBucketsRenumbersBothAndKeepsOthers(t *testing.T) {
	tasks := []models.Task{
		task("A", models.StatusTodo, 0),
		task("B", models.StatusTodo, 4),
		task("C", models.StatusTodo, 9),
		task("D", models.StatusInProgress, 3),
		task("E", models.StatusInProgress, 7),
		task("F", models.StatusDone, 5),
		task("G", models.StatusDone, 5),
	}

	got, changed, err := Move(tasks, DragResult{
		TaskID:      "B",
		Source:      Position{Bucket: models.StatusTodo, Index: 1},
		Destination: to(models.StatusInProgress, 1),
	})
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, got, len(tasks))

	require.Equal(t, []string{"A", "C"}, ids(Column(got, models.StatusTodo)))
	require.Equal(t, []string{"D", "B", "E"}, ids(Column(got, models.StatusInProgress)))
	for i, tk := range Column(got, models.StatusTodo) {
		require.Equal(t, i, tk.Order)
	}
	for i, tk := range Column(got, models.StatusInProgress) {
		require.Equal(t, i, tk.Order)
	}

	// exactly one status changed
	before := byID(tasks)
	changedStatus := 0
	for _, tk := range got {
		if tk.Status != before[tk.ID].Status {
			changedStatus++
			require.Equal(t, "B", tk.ID)
		}
	}
	require.Equal(t, 1, changedStatus)

	// untouched bucket is identical
	m := byID(got)
	require.Equal(t, before["F"], m["F"])
	require.Equal(t, before["G"], m["G"])
}

func TestMove_WithinBucketDownward(t *testing.T) {
	tasks := []models.Task{
		task("A", models.StatusDone, 0),
		task("B", models.StatusDone, 1),
		task("C", models.StatusDone, 2),
		task("D", models.StatusDone, 3),
	}
	got, _, err := Move(tasks, DragResult{
		TaskID:      "A",
		Source:      Position{Bucket: models.StatusDone, Index: 0},
		Destination: to(models.StatusDone, 2),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "A", "D"}, ids(Column(got, models.StatusDone)))
	require.Len(t, got, 4)
}

func TestMove_NoOps(t *testing.T) {
	tasks := []models.Task{task("A", models.StatusTodo, 0), task("B", models.StatusTodo, 1)}

	got, changed, err := Move(tasks, DragResult{TaskID: "A", Source: Position{Bucket: models.StatusTodo}})
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, tasks, got)

	got, changed, err = Move(tasks, DragResult{
		TaskID:      "B",
		Source:      Position{Bucket: models.StatusTodo, Index: 1},
		Destination: to(models.StatusTodo, 1),
	})
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, tasks, got)
}

func TestMove_IndexClampedAndStaleSource(t *testing.T) {
	tasks := []models.Task{
		task("A", models.StatusTodo, 0),
		task("B", models.StatusTodo, 1),
		task("X", models.StatusDone, 0),
	}
	got, changed, err := Move(tasks, DragResult{
		TaskID:      "A",
		Source:      Position{Bucket: models.StatusTodo, Index: 1},
		Destination: to(models.StatusDone, 99),
	})
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, []string{"X", "A"}, ids(Column(got, models.StatusDone)))
	require.Equal(t, []string{"B"}, ids(Column(got, models.StatusTodo)))
	require.Equal(t, 0, byID(got)["B"].Order)
}

func TestMove_Errors(t *testing.T) {
	tasks := []models.Task{task("A", models.StatusTodo, 0)}

	_, _, err := Move(tasks, DragResult{
		TaskID:      "missing",
		Source:      Position{Bucket: models.StatusTodo, Index: 0},
		Destination: to(models.StatusDone, 0),
	})
	require.ErrorIs(t, err, ErrUnknownTask)

	_, _, err = Move(tasks, DragResult{
		TaskID:      "A",
		Source:      Position{Bucket: models.StatusTodo, Index: 0},
		Destination: to("Blocked", 0),
	})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestReorderItemsAndLocate(t *testing.T) {
	tasks := []models.Task{
		task("A", models.StatusTodo, 1),
		task("B", models.StatusTodo, 0),
		task("C", models.StatusDone, 0),
	}
	require.Equal(t, []models.ReorderItem{
		{ID: "A", Order: 1, Status: models.StatusTodo},
		{ID: "B", Order: 0, Status: models.StatusTodo},
		{ID: "C", Order: 0, Status: models.StatusDone},
	}, ReorderItems(tasks))

	pos, ok := Locate(tasks, "A")
	require.True(t, ok)
	require.Equal(t, Position{Bucket: models.StatusTodo, Index: 1}, pos)

	_, ok = Locate(tasks, "nope")
	require.False(t, ok)

	cols := Columns(tasks)
	require.Len(t, cols, 3)
	require.Equal(t, models.StatusInProgress, cols[1].Status)
	require.Empty(t, cols[1].Tasks)
}

func TestArrange(t *testing.T) {
	tasks := []models.Task{
		task("A", models.StatusTodo, 0),
		task("B", models.StatusTodo, 1),
		task("C", models.StatusTodo, 2),
		task("X", models.StatusDone, 0),
	}

	got, err := Arrange(tasks, models.StatusTodo, []string{"C", "A"})
	require.NoError(t, err)
	require.Equal(t, []string{"C", "A", "B"}, ids(Column(got, models.StatusTodo)))
	m := byID(got)
	require.Equal(t, 0, m["C"].Order)
	require.Equal(t, 1, m["A"].Order)
	require.Equal(t, 2, m["B"].Order)
	require.Equal(t, tasks[3], m["X"])
	require.Equal(t, 1, tasks[1].Order)

	_, err = Arrange(tasks, models.StatusTodo, []string{"X"})
	require.ErrorIs(t, err, ErrUnknownTask)
	_, err = Arrange(tasks, models.StatusTodo, []string{"A", "A"})
	require.ErrorIs(t, err, ErrUnknownTask)
	_, err = Arrange(tasks, "Later", nil)
	require.ErrorIs(t, err, ErrInvalidStatus)
}
