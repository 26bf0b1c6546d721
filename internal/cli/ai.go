package cli

import (
	"fmt"
	"strings"

	"project-board-api/internal/board"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newAICmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Ask the AI assistant about a project",
	}
	cmd.PersistentFlags().BoolVar(&raw, "raw", false, "Print the model output without markdown rendering")

	cmd.AddCommand(&cobra.Command{
		Use:   "summarize <project-id>",
		Short: "Summarize the progress of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.store()
			if err := store.Summarize(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return printAI(cmd, app, raw, store.Snapshot().AIResponse)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ask <project-id> <question>",
		Short: "Ask a question answered from the project's tasks",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.store()
			if err := store.Ask(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
				return writeErr(cmd, err)
			}
			return printAI(cmd, app, raw, store.Snapshot().AIResponse)
		},
	})
	return cmd
}

func printAI(cmd *cobra.Command, app *App, raw bool, res *board.AIResponse) error {
	if res == nil {
		return nil
	}
	if app.JSON {
		return writeJSON(cmd, res)
	}

	out := cmd.OutOrStdout()
	text := res.Text
	if !raw {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if rendered, err := r.Render(text); err == nil {
				text = rendered
			}
		}
	}
	fmt.Fprintln(out, strings.TrimRight(text, "\n"))

	if s := res.Stats; s != nil {
		fmt.Fprintf(out, "\nTotal %d | To Do %d | In Progress %d | Done %d\n", s.Total, s.Todo, s.InProgress, s.Done)
	}
	if c := res.Context; c != nil {
		fmt.Fprintf(out, "\nBased on %d tasks of %s\n", c.TotalTasks, c.ProjectName)
	}
	return nil
}
