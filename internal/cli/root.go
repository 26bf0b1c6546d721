// Package cli implements the kanban command line client.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"project-board-api/internal/board"
	"project-board-api/internal/client"

	"github.com/spf13/cobra"
)

// App holds the global flags shared by every command.
type App struct {
	APIURL string
	JSON   bool
}

func (a *App) client() *client.Client {
	return client.New(a.APIURL)
}

func (a *App) store() *board.Store {
	return board.NewStore(a.client())
}

// NewRootCmd builds the kanban command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "kanban",
		Short:         "Command line client for the project board API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Create a project and add a task
  kanban projects create --name "Website" --description "Relaunch"
  kanban tasks add <project-id> --title "Design" --description "Mockups"

  # Show the board and move a task to the top of "In Progress"
  kanban board <project-id>
  kanban tasks move <project-id> <task-id> --to "In Progress" --index 0

  # Ask the assistant
  kanban ai ask <project-id> "What is blocking the release?"
`),
	}

	apiURL := os.Getenv("KANBAN_API_URL")
	if apiURL == "" {
		apiURL = client.DefaultBaseURL
	}
	cmd.PersistentFlags().StringVar(&app.APIURL, "api", apiURL, "API base URL (env KANBAN_API_URL)")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "Print raw JSON")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newAICmd(app))
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "error:", err.Error())
	return err
}
