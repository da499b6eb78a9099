package main

import (
	"context"
	"os"

	"github.com/jii-iin/weathermix/internal/services"
	"github.com/jii-iin/weathermix/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	godotenv.Load()

	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	var weather services.WeatherProvider
	if config.Credentials.OpenWeather.APIKey != "" {
		weather = services.NewOpenWeatherService(config.Credentials.OpenWeather.APIKey, nil)
	}

	var spotify *services.SpotifyService
	if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
		spotify = svc
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Weather: weather,
		Spotify: spotify,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "weathermix",
		Usage:    "Generate Spotify playlists from the current weather",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config and token database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.SetupDatabase,
	}
}
