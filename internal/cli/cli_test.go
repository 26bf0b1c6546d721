package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"project-board-api/internal/board"
	"project-board-api/internal/cli"
	"project-board-api/internal/models"
	"project-board-api/internal/realtime"
	"project-board-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func server(t *testing.T) string {
	t.Helper()
	apiURL, _ := serverWithHub(t)
	return apiURL
}

func serverWithHub(t *testing.T) (string, *realtime.Hub) {
	t.Helper()
	api := testutil.NewAPI(t, testutil.APIOptions{})
	srv := httptest.NewServer(api.Router)
	t.Cleanup(srv.Close)
	return srv.URL + "/api", api.Hub
}

// lockedBuffer lets the test read output while a command is still writing it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func run(t *testing.T, apiURL string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--api", apiURL}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func runJSON[T any](t *testing.T, apiURL string, args ...string) T {
	t.Helper()
	out, stderr, err := run(t, apiURL, append([]string{"--json"}, args...)...)
	require.NoError(t, err, stderr)
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestProjectsCommands(t *testing.T) {
	apiURL := server(t)

	p := runJSON[models.Project](t, apiURL, "projects", "create", "--name", "Website", "--description", "Relaunch")
	require.Equal(t, "Website", p.Name)

	list := runJSON[[]models.Project](t, apiURL, "projects", "list")
	require.Len(t, list, 1)

	updated := runJSON[models.Project](t, apiURL, "projects", "update", p.ID, "--name", "Site")
	require.Equal(t, "Site", updated.Name)
	require.Equal(t, "Relaunch", updated.Description)

	out, _, err := run(t, apiURL, "projects", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Site")
	require.Contains(t, out, p.ID)

	_, _, err = run(t, apiURL, "projects", "delete", p.ID)
	require.NoError(t, err)

	_, stderr, err := run(t, apiURL, "projects", "show", p.ID)
	require.Error(t, err)
	require.Equal(t, "error: Project not found\n", stderr)
}

func TestProjectsShow_CountsTasks(t *testing.T) {
	apiURL := server(t)
	p := runJSON[models.Project](t, apiURL, "projects", "create", "--name", "Website", "--description", "Relaunch")
	runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "A", "--description", "first")
	runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "B", "--description", "second", "--status", "Done")

	out, _, err := run(t, apiURL, "projects", "show", p.ID)
	require.NoError(t, err)
	require.Contains(t, out, "Relaunch")
	require.Contains(t, out, "2 tasks: 1 to do, 0 in progress, 1 done")
}

func TestTasksCommands(t *testing.T) {
	apiURL := server(t)
	p := runJSON[models.Project](t, apiURL, "projects", "create", "--name", "Website", "--description", "Relaunch")

	a := runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "A", "--description", "first")
	b := runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "B", "--description", "second")
	c := runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "C", "--description", "third")
	require.Equal(t, models.StatusTodo, a.Status)
	require.Equal(t, 2, c.Order)

	_, stderr, err := run(t, apiURL, "tasks", "add", p.ID, "--title", "D", "--description", "x", "--status", "todo")
	require.Error(t, err)
	require.Contains(t, stderr, "invalid status")

	moved := runJSON[[]models.Task](t, apiURL, "tasks", "move", p.ID, c.ID, "--index", "0")
	todo := board.Column(moved, models.StatusTodo)
	require.Equal(t, []string{c.ID, a.ID, b.ID}, []string{todo[0].ID, todo[1].ID, todo[2].ID})

	stored := runJSON[[]models.Task](t, apiURL, "tasks", "list", p.ID)
	require.Equal(t, c.ID, stored[0].ID)
	require.Equal(t, 0, stored[0].Order)

	updated := runJSON[models.Task](t, apiURL, "tasks", "update", a.ID, "--status", "Done")
	require.Equal(t, models.StatusDone, updated.Status)
	require.Equal(t, "A", updated.Title)

	_, _, err = run(t, apiURL, "tasks", "delete", b.ID)
	require.NoError(t, err)
	require.Len(t, runJSON[[]models.Task](t, apiURL, "tasks", "list", p.ID), 2)
}

func TestTasksReorder(t *testing.T) {
	apiURL := server(t)
	p := runJSON[models.Project](t, apiURL, "projects", "create", "--name", "Website", "--description", "Relaunch")
	a := runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "A", "--description", "first")
	b := runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "B", "--description", "second")
	c := runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "C", "--description", "third")

	runJSON[[]models.Task](t, apiURL, "tasks", "reorder", p.ID, c.ID, b.ID)

	stored := runJSON[[]models.Task](t, apiURL, "tasks", "list", p.ID)
	require.Equal(t, []string{c.ID, b.ID, a.ID}, []string{stored[0].ID, stored[1].ID, stored[2].ID})
	require.Equal(t, []int{0, 1, 2}, []int{stored[0].Order, stored[1].Order, stored[2].Order})

	_, stderr, err := run(t, apiURL, "tasks", "reorder", p.ID, a.ID, "--status", "Done")
	require.Error(t, err)
	require.Contains(t, stderr, "task is not on the board")
}

func TestBoardWatch(t *testing.T) {
	apiURL, hub := serverWithHub(t)
	p := runJSON[models.Project](t, apiURL, "projects", "create", "--name", "Website", "--description", "Relaunch")

	var stdout, stderr lockedBuffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--api", apiURL, "board", p.ID, "--watch"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(context.Background()) }()
	require.Eventually(t, func() bool { return hub.Subscribers(p.ID) == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return strings.Contains(stdout.String(), "To Do (0)") }, 2*time.Second, 10*time.Millisecond)

	runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "Design", "--description", "mockups")
	require.Eventually(t, func() bool { return strings.Contains(stdout.String(), "To Do (1)") }, 2*time.Second, 10*time.Millisecond)

	_, _, err := run(t, apiURL, "projects", "delete", p.ID)
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err, stderr.String())
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after the project was deleted")
	}
	require.Contains(t, stdout.String(), "was deleted")
}

func TestBoardCommand(t *testing.T) {
	apiURL := server(t)
	p := runJSON[models.Project](t, apiURL, "projects", "create", "--name", "Website", "--description", "Relaunch")
	runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "Design", "--description", "mockups", "--status", "In Progress")

	cols := runJSON[[]board.Bucket](t, apiURL, "board", p.ID)
	require.Len(t, cols, 3)
	require.Empty(t, cols[0].Tasks)
	require.Len(t, cols[1].Tasks, 1)

	out, _, err := run(t, apiURL, "board", p.ID)
	require.NoError(t, err)
	require.Contains(t, out, "In Progress (1)")
	require.Contains(t, out, "Design")
}

func TestAICommands(t *testing.T) {
	apiURL := server(t)
	p := runJSON[models.Project](t, apiURL, "projects", "create", "--name", "Website", "--description", "Relaunch")
	runJSON[models.Task](t, apiURL, "tasks", "add", p.ID, "--title", "Design", "--description", "mockups")

	summary := runJSON[board.AIResponse](t, apiURL, "ai", "summarize", p.ID)
	require.Equal(t, board.AISummary, summary.Kind)
	require.Contains(t, summary.Text, "generated by")
	require.NotNil(t, summary.Stats)
	require.Equal(t, 1, summary.Stats.Todo)

	answer := runJSON[board.AIResponse](t, apiURL, "ai", "ask", p.ID, "what", "is", "left?")
	require.Equal(t, board.AIAnswer, answer.Kind)
	require.NotNil(t, answer.Context)
	require.Equal(t, "Website", answer.Context.ProjectName)

	out, _, err := run(t, apiURL, "ai", "summarize", p.ID, "--raw")
	require.NoError(t, err)
	require.Contains(t, out, "generated by")
	require.Contains(t, out, "Total 1")
}
