package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jii-iin/weathermix/internal/formatter"
	"github.com/jii-iin/weathermix/internal/shared"
	"github.com/jii-iin/weathermix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MixRun runs the full weather → mood → playlist pipeline from the CLI.
func (r *Runner) MixRun(ctx context.Context, cmd *cli.Command) error {
	city := cmd.String("city")
	limit := cmd.Int("limit")
	minBPM := cmd.Float("min-bpm")
	keywords := cmd.String("keywords")
	publish := cmd.Bool("publish")
	save := cmd.Bool("save") || cmd.Bool("art")
	withArt := cmd.Bool("art")
	outputDir := cmd.String("output")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	mode, err := tasks.ParseMode(cmd.String("mode"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	if r.weather == nil {
		return fmt.Errorf("%w: OpenWeather API key not configured", shared.ErrMissingConfig)
	}
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set", shared.ErrMissingCredentials)
	}

	if !r.spotify.FetchAppToken(ctx) {
		r.logger.Warn("failed to fetch Spotify app token, search will return no results")
	}

	if publish {
		db, repo, err := r.openTokenStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if !r.restoreSession(ctx, repo) {
			return fmt.Errorf("%w: run 'weathermix auth login' first", shared.ErrNotAuthenticated)
		}
	}

	r.logger.Info("generating mix", "city", city, "mode", mode.String(), "limit", limit)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchWeather:
				r.writePlain("🌤  %s\n", update.Message)
			case tasks.MapMood:
				r.writePlain("🎼 %s\n", update.Message)
			case tasks.SearchCatalog:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.FilterTempo:
				r.writePlain("⏱  %s\n", update.Message)
			case tasks.PublishPlaylist:
				r.writePlain("📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Run(ctx, tasks.MixRequest{
		City:     city,
		Mode:     mode,
		Limit:    limit,
		MinBPM:   minBPM,
		Keywords: keywords,
		Publish:  publish,
	}, progressCh)
	close(progressCh)

	// Recoverable outcomes print a message instead of failing the command.
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrCityNotFound):
		return r.writePlainln("날씨 정보를 찾을 수 없습니다.")
	case errors.Is(err, shared.ErrNoResults):
		r.renderWeather(result)
		return r.writePlainln("추천 결과가 없습니다.")
	case errors.Is(err, shared.ErrPlaylistCreate):
		r.writePlainln("플레이리스트 생성 실패: %v", err)
	default:
		return err
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.renderWeather(result)
	r.writePlain("Mood: %s\n", result.Mood)
	r.writePlain("Query: %s\n\n", result.Query)

	for i, track := range result.Tracks {
		r.writePlain("%2d. %s — %s\n", i+1, track.Name, track.ArtistLine())
		if track.ExternalURL != "" {
			r.writePlain("    %s\n", track.ExternalURL)
		}
	}

	if result.Playlist != nil {
		r.writePlainln("✅ 플레이리스트 생성 완료!")
		r.writePlain("%s\n", result.Playlist.WebURL)
	}

	if save {
		export, err := formatter.WriteMarkdownExport(result, outputDir, withArt)
		if err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		r.writePlainln("✓ Export written to %s", export.Directory)
	}

	return nil
}

func (r *Runner) renderWeather(result *tasks.MixResult) {
	if result == nil || result.Weather == nil {
		return
	}
	w := result.Weather
	r.writePlain("%s 현재 날씨: %s / %.1f°C\n", w.City, w.Description, w.TempC)
}
