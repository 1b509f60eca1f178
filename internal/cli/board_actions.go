package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kboard/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Board actions run synchronously inside Update so that the live board is
// never mutated concurrently with rendering. Each returns the status
// message to show.

func errStatus(err error) statusMsg {
	return statusMsg{text: "Error: " + err.Error(), isErr: true}
}

func applyAddTask(app *App, columnID, title string) tea.Msg {
	task, err := app.Board.AddTask(context.Background(), columnID, title, "")
	if err != nil {
		return errStatus(err)
	}
	return statusMsg{text: fmt.Sprintf("Added %q to %s", task.Title, task.Column().Title), selectTaskID: task.ID}
}

func applyAddColumn(app *App, title string) tea.Msg {
	col, err := app.Board.AddColumn(context.Background(), title)
	if err != nil {
		return errStatus(err)
	}
	return statusMsg{text: fmt.Sprintf("Added column %q", col.Title)}
}

func applyRenameTask(app *App, taskID, title string) tea.Msg {
	if err := app.Board.EditTask(context.Background(), taskID, service.TaskEdit{Title: &title}); err != nil {
		return errStatus(err)
	}
	return statusMsg{text: "Task renamed", selectTaskID: taskID}
}

func applyEditDescription(app *App, taskID, description string) tea.Msg {
	if err := app.Board.EditTask(context.Background(), taskID, service.TaskEdit{Description: &description}); err != nil {
		return errStatus(err)
	}
	return statusMsg{text: "Description saved", selectTaskID: taskID}
}

func applyRenameColumn(app *App, columnID, title string) tea.Msg {
	if err := app.Board.RenameColumn(context.Background(), columnID, title); err != nil {
		return errStatus(err)
	}
	return statusMsg{text: "Column renamed"}
}

func applyRemoveTask(app *App, taskID string) tea.Msg {
	task, _ := app.Board.Board().FindTask(taskID)
	if task == nil {
		return statusMsg{text: "Error: task not found", isErr: true}
	}
	title := task.Title
	if err := app.Board.RemoveTask(context.Background(), taskID); err != nil {
		return errStatus(err)
	}
	return statusMsg{text: fmt.Sprintf("Deleted %q", title)}
}

func applyRemoveColumn(app *App, columnID string) tea.Msg {
	col := app.Board.Board().FindColumn(columnID)
	if col == nil {
		return statusMsg{text: "Error: column not found", isErr: true}
	}
	title := col.Title
	if err := app.Board.RemoveColumn(context.Background(), columnID); err != nil {
		return errStatus(err)
	}
	return statusMsg{text: fmt.Sprintf("Deleted column %q", title)}
}

func applyPropagate(app *App, taskID string) tea.Msg {
	task, _ := app.Board.Board().FindTask(taskID)
	if task == nil {
		return statusMsg{text: "Error: task not found", isErr: true}
	}
	title := task.Title
	res, err := app.Board.PropagateTask(context.Background(), taskID)
	if err != nil {
		return errStatus(err)
	}
	if res.Deleted {
		return statusMsg{text: fmt.Sprintf("Completed %q", title)}
	}
	return statusMsg{text: fmt.Sprintf("Moved %q to %s", title, res.To.Title), selectTaskID: taskID}
}

func applyMove(app *App, taskID, destColumnID string) tea.Msg {
	if err := app.Board.MoveTask(context.Background(), taskID, destColumnID); err != nil {
		return errStatus(err)
	}
	dest := app.Board.Board().FindColumn(destColumnID)
	return statusMsg{text: "Moved to " + dest.Title, selectTaskID: taskID}
}

func applyReorder(app *App, taskID string, index int) tea.Msg {
	if err := app.Board.ReorderTask(context.Background(), taskID, index); err != nil {
		return errStatus(err)
	}
	return statusMsg{selectTaskID: taskID}
}

func applyClear(app *App) tea.Msg {
	if err := app.Board.ClearBoard(context.Background()); err != nil {
		return errStatus(err)
	}
	return statusMsg{text: "Board cleared"}
}
