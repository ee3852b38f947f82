package cli

import (
	"context"
	"fmt"
	"strings"

	"eisen/internal/model"
	"eisen/internal/tasks"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}

	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app))
	cmd.AddCommand(newTasksUrgentCmd(app))
	cmd.AddCommand(newTasksTopCmd(app))
	cmd.AddCommand(newTasksGroupsCmd(app))
	cmd.AddCommand(newTasksMatrixCmd(app))

	return cmd
}

// resolveTaskID accepts a full id or a unique prefix (text output shows the
// first 8 characters).
func resolveTaskID(ctx context.Context, repo *tasks.Repository, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	ts, err := repo.ListTasks(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, t := range ts {
		if t.ID == arg {
			return t.ID, nil
		}
		if arg != "" && strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", tasks.NotFoundError{Kind: "task", ID: arg}
	case 1:
		return matches[0], nil
	default:
		return "", tasks.ValidationError{Field: "task id", Reason: fmt.Sprintf("prefix %q matches %d tasks", arg, len(matches))}
	}
}

func newTasksAddCmd(app *App) *cobra.Command {
	var in tasks.NewTask
	var tags string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: strings.TrimSpace(`
eisen tasks add --title "File taxes" --importance 5 --urgency 3 --due 2026-04-30 --tags "admin, money"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			in.Tags = model.SplitTags(tags)
			t, err := repo.AddTask(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("task added", "id", t.ID, "quadrant", t.Quadrant)
			return writeOut(cmd, app, map[string]any{"data": taskDetail(t)})
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description (Markdown)")
	cmd.Flags().IntVar(&in.Importance, "importance", 0, "Importance score in [-5, 5]")
	cmd.Flags().IntVar(&in.Urgency, "urgency", 0, "Urgency score in [-5, 5]")
	cmd.Flags().StringVar(&in.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var quadrant string
	var status string
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in storage order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var q model.Quadrant
			if strings.TrimSpace(quadrant) != "" {
				parsed, err := model.ParseQuadrant(quadrant)
				if err != nil {
					return writeErr(cmd, tasks.ValidationError{Field: "quadrant", Reason: fmt.Sprintf("unknown quadrant %q", quadrant)})
				}
				q = parsed
			}
			switch status {
			case "all", "pending", "done":
			default:
				return writeErr(cmd, tasks.ValidationError{Field: "status", Reason: "want all, pending or done"})
			}

			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			ts, err := repo.ListTasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			out := taskList{}
			for _, t := range ts {
				if q != "" && t.Quadrant != q {
					continue
				}
				if status != "all" && string(t.Status) != status {
					continue
				}
				if tag != "" && !t.HasTag(tag) {
					continue
				}
				out = append(out, t)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&quadrant, "quadrant", "", "Only this quadrant (e.g. \"do first\")")
	cmd.Flags().StringVar(&status, "status", "all", "all|pending|done")
	cmd.Flags().StringVar(&tag, "tag", "", "Only tasks carrying this tag")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := resolveTaskID(cmd.Context(), repo, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok, err := repo.GetTask(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, tasks.NotFoundError{Kind: "task", ID: id})
			}
			return writeOut(cmd, app, map[string]any{"data": taskDetail(t)})
		},
	}
}

func newTasksEditCmd(app *App) *cobra.Command {
	var (
		title, description, due, tags string
		importance, urgency           int
	)

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Update fields of a task",
		Long:  "Only the flags you pass are changed. The quadrant follows importance and urgency.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u tasks.Update
			f := cmd.Flags()
			if f.Changed("title") {
				u.Title = &title
			}
			if f.Changed("description") {
				u.Description = &description
			}
			if f.Changed("importance") {
				u.Importance = &importance
			}
			if f.Changed("urgency") {
				u.Urgency = &urgency
			}
			if f.Changed("due") {
				u.DueDate = &due
			}
			if f.Changed("tags") {
				ts := model.SplitTags(tags)
				u.Tags = &ts
			}

			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := resolveTaskID(cmd.Context(), repo, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ok, err := repo.UpdateTask(cmd.Context(), id, u)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, tasks.NotFoundError{Kind: "task", ID: id})
			}
			t, _, err := repo.GetTask(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": taskDetail(t)})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().IntVar(&importance, "importance", 0, "New importance in [-5, 5]")
	cmd.Flags().IntVar(&urgency, "urgency", 0, "New urgency in [-5, 5]")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&tags, "tags", "", "Replace tags (comma-separated)")
	return cmd
}

func newTasksDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task done (one-way)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := resolveTaskID(cmd.Context(), repo, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			changed, err := repo.MarkDone(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": id, "status": model.StatusDone, "changed": changed},
			})
		},
	}
}

func newTasksUrgentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "urgent",
		Short: "Pending tasks with positive urgency",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			ts, err := repo.UrgentTasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": taskList(ts)})
		},
	}
}

func newTasksTopCmd(app *App) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Ivy Lee list: the most important pending tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			ts, err := repo.TopNPending(cmd.Context(), n)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": taskList(ts)})
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", tasks.DefaultTopN, "How many tasks")
	return cmd
}

func newTasksGroupsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Pending tasks grouped by registered tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			gs, err := repo.GroupByTag(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tagGroups(gs)})
		},
	}
}

func newTasksMatrixCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Pending tasks by quadrant",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			bs, err := repo.ByQuadrant(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": matrix(bs)})
		},
	}
}
