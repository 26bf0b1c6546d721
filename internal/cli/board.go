package cli

import (
	"fmt"
	"net/url"
	"strings"

	"project-board-api/internal/board"
	"project-board-api/internal/realtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

const columnWidth = 30

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(columnWidth)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cardStyle   = lipgloss.NewStyle().MarginTop(1)
	idStyle     = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func newBoardCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "board <project-id>",
		Short: "Show the project board as three columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID := args[0]
			store := app.store()

			var conn *websocket.Conn
			if watch {
				wsURL, err := eventsURL(app.APIURL, projectID)
				if err != nil {
					return writeErr(cmd, err)
				}
				conn, _, err = websocket.DefaultDialer.DialContext(cmd.Context(), wsURL, nil)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("subscribe to %s: %w", projectID, err))
				}
				defer conn.Close()
			}

			if err := store.SelectProject(cmd.Context(), projectID); err != nil {
				return writeErr(cmd, err)
			}
			if err := showBoard(cmd, app, store); err != nil {
				return err
			}
			if conn == nil {
				return nil
			}
			return watchBoard(cmd, app, store, conn, projectID)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Redraw the board whenever it changes")
	return cmd
}

// watchBoard redraws the board on every event of the project stream until the
// project is deleted or the command context ends.
func watchBoard(cmd *cobra.Command, app *App, store *board.Store, conn *websocket.Conn, projectID string) error {
	ctx := cmd.Context()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		var evt realtime.Event
		if err := conn.ReadJSON(&evt); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return writeErr(cmd, err)
		}

		switch evt.Type {
		case realtime.EventProjectDeleted:
			fmt.Fprintf(cmd.OutOrStdout(), "project %s was deleted\n", projectID)
			return nil
		case realtime.EventProjectUpdated:
			_ = store.SelectProject(ctx, projectID)
		default:
			store.ClearAIResponse()
			_ = store.FetchTasks(ctx, projectID)
		}

		if err := showBoard(cmd, app, store); err != nil {
			return err
		}
		// A failed refresh is reported once; the next event retries.
		if store.Snapshot().Error != "" {
			store.ClearError()
		}
	}
}

func showBoard(cmd *cobra.Command, app *App, store *board.Store) error {
	st := store.Snapshot()
	if app.JSON {
		return writeJSON(cmd, board.Columns(st.Tasks))
	}
	return renderBoard(cmd, st)
}

func renderBoard(cmd *cobra.Command, st board.State) error {
	var columns []string
	for _, col := range board.Columns(st.Tasks) {
		body := headerStyle.Render(fmt.Sprintf("%s (%d)", col.Status, len(col.Tasks)))
		for _, t := range col.Tasks {
			card := lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render(t.Title),
				idStyle.Render(t.ID),
			)
			body = lipgloss.JoinVertical(lipgloss.Left, body, cardStyle.Render(card))
		}
		columns = append(columns, columnStyle.Render(body))
	}

	out := cmd.OutOrStdout()
	if st.CurrentProject != nil {
		fmt.Fprintln(out, headerStyle.Render(st.CurrentProject.Name))
	}
	if st.Error != "" {
		fmt.Fprintln(out, errorStyle.Render("error: "+st.Error))
	}
	fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	return nil
}

// eventsURL turns the REST base URL into the websocket URL of a project stream.
func eventsURL(apiURL, projectID string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported API URL scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/" + url.PathEscape(projectID)
	return u.String(), nil
}
