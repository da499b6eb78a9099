package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jii-iin/weathermix/internal/shared"
	"github.com/jii-iin/weathermix/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for mix generation.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.weather == nil {
		return fmt.Errorf("%w: OpenWeather API key not configured", shared.ErrMissingConfig)
	}
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set", shared.ErrMissingCredentials)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/weathermix-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	if !r.spotify.FetchAppToken(ctx) {
		r.logger.Warn("failed to fetch Spotify app token, search will return no results")
	}

	canPublish := false
	if db, repo, err := r.openTokenStore(); err == nil {
		// The handle stays open for token refresh persistence during the session.
		defer db.Close()
		canPublish = r.restoreSession(ctx, repo)
	} else {
		r.logger.Warn("token store unavailable, publishing disabled", "error", err)
	}

	model := ui.NewModel(ctx, r.engine, canPublish)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
