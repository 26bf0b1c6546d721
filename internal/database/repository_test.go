package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"project-board-api/internal"
	"project-board-api/internal/database"
	"project-board-api/internal/models"
	"project-board-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func requireCode(t *testing.T, err error, code internal.ErrorCode) {
	t.Helper()
	var ierr *internal.Error
	require.True(t, errors.As(err, &ierr), "expected *internal.Error, got %v", err)
	require.Equal(t, code, ierr.Code())
}

func TestOpen_FileDatabase(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "board.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.True(t, db.Migrator().HasTable("projects"))
	require.True(t, db.Migrator().HasTable("tasks"))
	require.True(t, db.Migrator().HasIndex(&models.Task{}, "idx_tasks_bucket"))
}

func TestProjectRepository_ListNewestFirst(t *testing.T) {
	db := testutil.MustDB(t)
	repo := database.NewProjectRepository(db)
	ctx := context.Background()

	older := models.Project{ID: "p-old", Name: "Old", Description: "d", CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Project{ID: "p-new", Name: "New", Description: "d", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, &older))
	require.NoError(t, repo.Create(ctx, &newer))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "p-new", projects[0].ID)
	require.Equal(t, "p-old", projects[1].ID)
}

func TestProjectRepository_FindMissing(t *testing.T) {
	repo := database.NewProjectRepository(testutil.MustDB(t))
	_, err := repo.Find(context.Background(), "nope")
	requireCode(t, err, internal.ErrorCodeNotFound)
}

func TestProjectRepository_DeleteCascadesTasks(t *testing.T) {
	db := testutil.MustDB(t)
	ctx := context.Background()
	testutil.SeedProject(t, db, "p-1", "Alpha")
	testutil.SeedProject(t, db, "p-2", "Beta")
	for i, id := range []string{"t-1", "t-2", "t-3"} {
		testutil.SeedTask(t, db, "p-1", id, models.StatusTodo, i)
	}
	testutil.SeedTask(t, db, "p-2", "t-other", models.StatusDone, 0)

	projects := database.NewProjectRepository(db)
	tasks := database.NewTaskRepository(db)

	require.NoError(t, projects.Delete(ctx, "p-1"))

	remaining, err := tasks.ListByProject(ctx, "p-1")
	require.NoError(t, err)
	require.Empty(t, remaining)

	list, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "p-2", list[0].ID)

	other, err := tasks.ListByProject(ctx, "p-2")
	require.NoError(t, err)
	require.Len(t, other, 1)
}

func TestProjectRepository_DeleteMissingRollsBack(t *testing.T) {
	db := testutil.MustDB(t)
	// orphaned task whose project row does not exist
	testutil.SeedTask(t, db, "ghost", "t-1", models.StatusTodo, 0)

	err := database.NewProjectRepository(db).Delete(context.Background(), "ghost")
	requireCode(t, err, internal.ErrorCodeNotFound)

	count, err := database.NewTaskRepository(db).CountByProject(context.Background(), "ghost")
	require.NoError(t, err)
	require.Equal(t, 1, count, "task delete must be rolled back with the failed project delete")
}

func TestTaskRepository_ListSortedByOrder(t *testing.T) {
	db := testutil.MustDB(t)
	testutil.SeedProject(t, db, "p-1", "Alpha")
	testutil.SeedTask(t, db, "p-1", "c", models.StatusTodo, 2)
	testutil.SeedTask(t, db, "p-1", "a", models.StatusTodo, 0)
	testutil.SeedTask(t, db, "p-1", "b", models.StatusDone, 1)

	tasks, err := database.NewTaskRepository(db).ListByProject(context.Background(), "p-1")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestTaskRepository_DeleteMissing(t *testing.T) {
	err := database.NewTaskRepository(testutil.MustDB(t)).Delete(context.Background(), "missing")
	requireCode(t, err, internal.ErrorCodeNotFound)
}

func TestTaskRepository_Reorder(t *testing.T) {
	db := testutil.MustDB(t)
	ctx := context.Background()
	testutil.SeedProject(t, db, "p-1", "Alpha")
	testutil.SeedTask(t, db, "p-1", "a", models.StatusTodo, 0)
	testutil.SeedTask(t, db, "p-1", "b", models.StatusTodo, 1)
	testutil.SeedTask(t, db, "p-1", "c", models.StatusTodo, 2)

	repo := database.NewTaskRepository(db)
	err := repo.Reorder(ctx, []models.ReorderItem{
		{ID: "c", Order: 0, Status: models.StatusTodo},
		{ID: "a", Order: 1, Status: models.StatusTodo},
		{ID: "b", Order: 0, Status: models.StatusInProgress},
		{ID: "unknown", Order: 5, Status: models.StatusDone},
	})
	require.NoError(t, err)

	c, err := repo.Find(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, 0, c.Order)

	a, err := repo.Find(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 1, a.Order)

	b, err := repo.Find(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, b.Status)
	require.Equal(t, 0, b.Order)
}
