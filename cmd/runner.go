package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jii-iin/weathermix/internal/repositories"
	"github.com/jii-iin/weathermix/internal/services"
	"github.com/jii-iin/weathermix/internal/shared"
	"github.com/jii-iin/weathermix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	weather services.WeatherProvider
	spotify *services.SpotifyService
	logger  *log.Logger
	output  io.Writer
	engine  *tasks.MixEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Weather services.WeatherProvider
	Spotify *services.SpotifyService
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var catalog services.Catalog
	var publisher services.Publisher
	if opts.Spotify != nil {
		catalog = opts.Spotify
		publisher = opts.Spotify
	}

	engine := tasks.NewMixEngine(opts.Weather, catalog, publisher)

	return &Runner{
		config:  opts.Config,
		weather: opts.Weather,
		spotify: opts.Spotify,
		logger:  opts.Logger,
		output:  opts.Output,
		engine:  engine,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, runCommand, weatherCommand, authCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openTokenStore opens the configured database and ensures the schema exists.
// The caller closes the returned handle.
func (r *Runner) openTokenStore() (*sql.DB, *repositories.TokenRepository, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := repositories.Migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, repositories.NewTokenRepository(db), nil
}

// restoreSession loads a stored user token and attaches it to the Spotify
// service so publish operations work. Returns false when no session exists.
func (r *Runner) restoreSession(ctx context.Context, repo *repositories.TokenRepository) bool {
	if r.spotify == nil {
		return false
	}

	token, err := repo.GetToken(services.SpotifyTokenKey)
	if err != nil || token == nil {
		return false
	}

	r.spotify.OAuthenticate(ctx, token, repo)
	return true
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
