package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nbmusic/nbx/internal/shared"
	"github.com/nbmusic/nbx/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive terminal UI for playlist browsing.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/nbx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	db, playlists, state, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	model := ui.NewBrowseModel(playlists, state)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// browseCommand returns the top-level TUI command for interactive browsing.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist browsing",
		Action:  r.Browse,
	}
}
