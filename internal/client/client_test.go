package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-board-api/internal/client"
	"project-board-api/internal/models"
	"project-board-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()
	api := testutil.NewAPI(t, testutil.APIOptions{})
	srv := httptest.NewServer(api.Router)
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/api", client.WithHTTPClient(srv.Client()))
}

func TestClient_ProjectAndTaskFlow(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	project, err := c.CreateProject(ctx, "Website", "Relaunch")
	require.NoError(t, err)
	require.NotEmpty(t, project.ID)

	projects, err := c.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	desc := "Relaunch in spring"
	updated, err := c.UpdateProject(ctx, project.ID, client.ProjectUpdate{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "Website", updated.Name)
	require.Equal(t, desc, updated.Description)

	a, err := c.CreateTask(ctx, project.ID, client.NewTask{Title: "Design", Description: "Mockups"})
	require.NoError(t, err)
	b, err := c.CreateTask(ctx, project.ID, client.NewTask{Title: "Build", Description: "Pages", Status: models.StatusInProgress})
	require.NoError(t, err)
	require.Equal(t, 1, b.Order)

	require.NoError(t, c.ReorderTasks(ctx, []models.ReorderItem{
		{ID: a.ID, Order: 0, Status: models.StatusDone},
		{ID: b.ID, Order: 0, Status: models.StatusInProgress},
	}))

	tasks, err := c.ListTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, tk := range tasks {
		if tk.ID == a.ID {
			require.Equal(t, models.StatusDone, tk.Status)
		}
	}

	zero := 0
	status := models.StatusTodo
	got, err := c.UpdateTask(ctx, b.ID, client.TaskUpdate{Status: &status, Order: &zero})
	require.NoError(t, err)
	require.Equal(t, models.StatusTodo, got.Status)
	require.Equal(t, 0, got.Order)

	require.NoError(t, c.DeleteTask(ctx, a.ID))

	summary, err := c.Summarize(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, "generated by gemini-2.5-pro", summary.Summary)
	require.Equal(t, 1, summary.Stats.Todo)

	answer, err := c.Ask(ctx, project.ID, "What is left?")
	require.NoError(t, err)
	require.Equal(t, "Website", answer.Context.ProjectName)

	require.NoError(t, c.DeleteProject(ctx, project.ID))
	_, err = c.GetProject(ctx, project.ID)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Project not found", apiErr.Error())
}

func TestClient_ValidationMessage(t *testing.T) {
	c := newClient(t)

	_, err := c.CreateProject(context.Background(), "", "")
	require.EqualError(t, err, "Please provide both name and description")

	err = c.ReorderTasks(context.Background(), []models.ReorderItem{{ID: "x", Order: 0, Status: "Later"}})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClient_DefaultBaseURL(t *testing.T) {
	require.NotNil(t, client.New(""))
}
