package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/tui"
)

// runTUI runs the interactive search screen until the user quits
func runTUI(ctx context.Context, a *application) error {
	pipeline := search.NewPipeline(a.search, a.store, search.Options{
		Debounce:       a.cfg.Search.Debounce,
		MinQueryLength: a.cfg.Search.MinQueryLength,
	}, a.logger)
	defer pipeline.Close()

	model := tui.NewModel(tui.Options{
		Store:          a.store,
		Pipeline:       pipeline,
		Details:        a.details,
		Ratings:        a.ratings,
		Browse:         a.browse,
		MinQueryLength: a.cfg.Search.MinQueryLength,
		DetailTimeout:  a.cfg.OMDb.Timeout + a.cfg.OMDb.Timeout/2,
		Logger:         a.logger,
	})
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
