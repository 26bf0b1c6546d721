package cli

import (
	"fmt"
	"text/tabwriter"

	"project-board-api/internal/client"
	"project-board-api/internal/models"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsUpdateCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.store()
			if err := store.FetchProjects(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			projects := store.Snapshot().Projects
			if app.JSON {
				return writeJSON(cmd, projects)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCREATED")
			for _, p := range projects {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, p.CreatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
}

func newProjectsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.store()
			if err := store.SelectProject(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			st := store.Snapshot()
			if err := printProject(cmd, app, *st.CurrentProject); err != nil || app.JSON {
				return err
			}
			stats := models.CountByStatus(st.Tasks)
			fmt.Fprintf(cmd.OutOrStdout(), "  %d tasks: %d to do, %d in progress, %d done\n", stats.Total, stats.Todo, stats.InProgress, stats.Done)
			return nil
		},
	}
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.store().CreateProject(cmd.Context(), name, description)
			if err != nil {
				return writeErr(cmd, err)
			}
			return printProject(cmd, app, p)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newProjectsUpdateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Rename a project or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd client.ProjectUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			p, err := app.store().UpdateProject(cmd.Context(), args[0], upd)
			if err != nil {
				return writeErr(cmd, err)
			}
			return printProject(cmd, app, p)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVar(&description, "description", "", "New project description")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store().DeleteProject(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if app.JSON {
				return writeJSON(cmd, map[string]string{"deleted": args[0]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted project %s\n", args[0])
			return nil
		},
	}
}

func printProject(cmd *cobra.Command, app *App, p models.Project) error {
	if app.JSON {
		return writeJSON(cmd, p)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", p.ID, p.Name)
	fmt.Fprintf(out, "  %s\n", p.Description)
	return nil
}
