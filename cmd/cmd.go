// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// runCommand generates (and optionally publishes) a weather mix.
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"mix"},
		Usage:   "Generate a playlist from the current weather",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "city",
				Aliases: []string{"C"},
				Usage:   "City to look up",
				Value:   "Seoul",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Recommendation mode: basic, tempo, or custom",
				Value:   "basic",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Number of tracks (5-30)",
				Value:   15,
			},
			&cli.FloatFlag{
				Name:  "min-bpm",
				Usage: "Minimum tempo for tempo mode (60-180)",
				Value: 110,
			},
			&cli.StringFlag{
				Name:    "keywords",
				Aliases: []string{"k"},
				Usage:   "Extra search keywords for custom mode",
			},
			&cli.BoolFlag{
				Name:    "publish",
				Aliases: []string{"p"},
				Usage:   "Create the playlist on your Spotify account",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the result as a markdown export",
			},
			&cli.BoolFlag{
				Name:  "art",
				Usage: "Download album art into the export (implies --save)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Export directory (defaults to the mix ID)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.MixRun,
	}
}

// weatherCommand looks up current conditions without generating a mix.
func weatherCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "weather",
		Usage: "Show current weather for a city",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "city",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.WeatherShow,
	}
}

// authCommand manages the delegated Spotify session.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authorization",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize with Spotify using OAuth2",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the current session state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Remove the stored session",
				Action: r.AuthLogout,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Interactive weather mix generator",
		Action:  r.TUI,
	}
}
