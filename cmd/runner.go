package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/nbmusic/nbx/internal/player"
	"github.com/nbmusic/nbx/internal/services"
	"github.com/nbmusic/nbx/internal/shared"
	"github.com/nbmusic/nbx/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	bilibili services.Collection
	lyrics   services.LyricSearcher
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Bilibili services.Collection
	Lyrics   services.LyricSearcher
	Logger   *log.Logger
	Output   io.Writer
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

	return &Runner{
		config:   opts.Config,
		bilibili: opts.Bilibili,
		lyrics:   opts.Lyrics,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, playlistCommand, importCommand, browseCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, e.g. for TUI file logging.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// openStore opens the configured database and builds the playlist store and
// player state on top of it. The caller closes the returned handle.
func (r *Runner) openStore() (*sql.DB, *store.PlaylistStore, *player.State, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	storage := store.NewSQLiteStorage(db)
	playlists := store.NewPlaylistStore(storage, r.logger)
	state := player.NewState(storage, r.logger)

	return db, playlists, state, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var out []byte
	var err error

	if pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Fprintln(r.output, string(out))
	return nil
}

func (r *Runner) writePlain(format string, a ...any) {
	fmt.Fprintf(r.output, format, a...)
}

func (r *Runner) writePlainln(s string) {
	fmt.Fprintln(r.output, s)
}
