package cli

import (
	"fmt"
	"text/tabwriter"

	"project-board-api/internal/board"
	"project-board-api/internal/client"
	"project-board-api/internal/models"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksReorderCmd(app))
	return cmd
}

func parseStatus(raw string) (models.TaskStatus, error) {
	s := models.TaskStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q: use one of %q, %q, %q", raw, models.StatusTodo, models.StatusInProgress, models.StatusDone)
	}
	return s, nil
}

func newTasksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List the tasks of a project in board order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.store()
			if err := store.FetchTasks(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			tasks := store.Snapshot().Tasks
			if app.JSON {
				return writeJSON(cmd, tasks)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tORDER\tTITLE")
			for _, col := range board.Columns(tasks) {
				for _, t := range col.Tasks {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.ID, t.Status, t.Order, t.Title)
				}
			}
			return tw.Flush()
		},
	}
}

func newTasksAddCmd(app *App) *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a task at the end of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := client.NewTask{Title: title, Description: description}
			if status != "" {
				s, err := parseStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				in.Status = s
			}
			t, err := app.store().CreateTask(cmd.Context(), args[0], in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return printTask(cmd, app, t)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", `Initial status (default "To Do")`)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var title, description, status string
	var order int

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Edit a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd client.TaskUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				upd.Title = &title
			}
			if flags.Changed("description") {
				upd.Description = &description
			}
			if flags.Changed("status") {
				s, err := parseStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				upd.Status = &s
			}
			if flags.Changed("order") {
				upd.Order = &order
			}

			t, err := app.store().UpdateTask(cmd.Context(), args[0], upd)
			if err != nil {
				return writeErr(cmd, err)
			}
			return printTask(cmd, app, t)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().IntVar(&order, "order", 0, "New order within its column")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store().DeleteTask(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if app.JSON {
				return writeJSON(cmd, map[string]string{"deleted": args[0]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted task %s\n", args[0])
			return nil
		},
	}
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var to string
	var index int

	cmd := &cobra.Command{
		Use:   "move <project-id> <task-id>",
		Short: "Move a task to a column and position, renumbering the board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, taskID := args[0], args[1]

			store := app.store()
			if err := store.SelectProject(cmd.Context(), projectID); err != nil {
				return writeErr(cmd, err)
			}

			src, ok := board.Locate(store.Snapshot().Tasks, taskID)
			if !ok {
				return writeErr(cmd, fmt.Errorf("%w: %s", board.ErrUnknownTask, taskID))
			}
			dst := board.Position{Bucket: src.Bucket, Index: index}
			if to != "" {
				s, err := parseStatus(to)
				if err != nil {
					return writeErr(cmd, err)
				}
				dst.Bucket = s
			}

			err := store.MoveTask(cmd.Context(), board.DragResult{
				TaskID:      taskID,
				Source:      src,
				Destination: &dst,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			tasks := store.Snapshot().Tasks
			if app.JSON {
				return writeJSON(cmd, tasks)
			}
			return renderBoard(cmd, store.Snapshot())
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Destination column (default: current column)")
	cmd.Flags().IntVar(&index, "index", 0, "Destination position within the column")
	return cmd
}

func newTasksReorderCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "reorder <project-id> <task-id>...",
		Short: "Put the listed tasks at the top of a column in the given order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseStatus(status)
			if err != nil {
				return writeErr(cmd, err)
			}

			store := app.store()
			if err := store.SelectProject(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			arranged, err := board.Arrange(store.Snapshot().Tasks, s, args[1:])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.ReorderTasks(cmd.Context(), arranged); err != nil {
				return writeErr(cmd, err)
			}

			if app.JSON {
				return writeJSON(cmd, store.Snapshot().Tasks)
			}
			return renderBoard(cmd, store.Snapshot())
		},
	}

	cmd.Flags().StringVar(&status, "status", string(models.StatusTodo), "Column to reorder")
	return cmd
}

func printTask(cmd *cobra.Command, app *App, t models.Task) error {
	if app.JSON {
		return writeJSON(cmd, t)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  [%s #%d]  %s\n", t.ID, t.Status, t.Order, t.Title)
	fmt.Fprintf(out, "  %s\n", t.Description)
	return nil
}
