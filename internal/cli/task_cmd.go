package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/kboard/internal/cli/formatter"
	"github.com/alexanderramin/kboard/internal/service"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
		newTaskMoveCmd(app),
		newTaskDoneCmd(app),
		newTaskReorderCmd(app),
		newTaskShowCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add COLUMN TITLE",
		Short: "Add a task to the bottom of a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := resolveColumn(app.Board.Board(), args[0])
			if err != nil {
				return err
			}
			task, err := app.Board.AddTask(commandContext(cmd), col.ID, strings.Join(args[1:], " "), description)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %s to %s %s", formatter.Bold(task.Title), col.Title, formatter.TruncID(task.ID))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")

	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit TASK",
		Short: "Change a task's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Board.Board(), args[0])
			if err != nil {
				return err
			}

			var edit service.TaskEdit
			if cmd.Flags().Changed("title") {
				edit.Title = &title
			}
			if cmd.Flags().Changed("description") {
				edit.Description = &description
			}
			if edit.Title == nil && edit.Description == nil {
				return fmt.Errorf("nothing to change: pass --title and/or --description")
			}

			if err := app.Board.EditTask(commandContext(cmd), task.ID, edit); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated %s %s", formatter.Bold(task.Title), formatter.TruncID(task.ID))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description (empty clears it)")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm TASK",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Board.Board(), args[0])
			if err != nil {
				return err
			}
			if err := app.Board.RemoveTask(commandContext(cmd), task.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted "+task.Title))
			return nil
		},
	}
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move TASK COLUMN",
		Short: "Move a task to the bottom of another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := app.Board.Board()
			task, err := resolveTask(b, args[0])
			if err != nil {
				return err
			}
			dest, err := resolveColumn(b, args[1])
			if err != nil {
				return err
			}
			if err := app.Board.MoveTask(commandContext(cmd), task.ID, dest.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Moved %s to %s", formatter.Bold(task.Title), dest.Title)))
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "done TASK",
		Aliases: []string{"next", "advance"},
		Short:   "Advance a task to the next column; in the last column it is deleted",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Board.Board(), args[0])
			if err != nil {
				return err
			}
			res, err := app.Board.PropagateTask(commandContext(cmd), task.ID)
			if err != nil {
				return err
			}
			if res.Deleted {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Completed %s (removed from board)", formatter.Bold(task.Title))))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Moved %s to %s", formatter.Bold(task.Title), res.To.Title)))
			return nil
		},
	}
}

func newTaskReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder TASK POSITION",
		Short: "Move a task to a 1-based position within its column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Board.Board(), args[0])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 {
				return fmt.Errorf("invalid position %q: must be a positive integer", args[1])
			}
			if err := app.Board.ReorderTask(commandContext(cmd), task.ID, pos-1); err != nil {
				return err
			}
			idx := task.Column().IndexOf(task.ID)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Moved %s to position %d in %s", formatter.Bold(task.Title), idx+1, task.Column().Title)))
			return nil
		},
	}
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TASK",
		Short: "Show a task's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Board.Board(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskDetail(task))
			return nil
		},
	}
}
