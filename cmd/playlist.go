package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nbmusic/nbx/internal/formatter"
	"github.com/nbmusic/nbx/internal/models"
	"github.com/nbmusic/nbx/internal/shared"
	"github.com/nbmusic/nbx/internal/store"
	"github.com/urfave/cli/v3"
)

// findPlaylist resolves a playlist reference that may be an id or a name.
func findPlaylist(st *store.PlaylistStore, ref string) (*models.Playlist, error) {
	pl, err := st.Get(ref)
	if err == nil {
		return pl, nil
	}
	if !errors.Is(err, shared.ErrPlaylistNotFound) {
		return nil, err
	}
	return st.GetByName(ref)
}

// PlaylistList prints every stored playlist.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	db, playlists, state, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	all := playlists.List()

	if cmd.Bool("json") {
		return r.writeJSON(all, cmd.Bool("pretty"))
	}

	if len(all) == 0 {
		r.writePlainln("No playlists yet. Run 'nbx import run' or 'nbx playlist create' to add one.")
		return nil
	}

	for i, pl := range all {
		marker := " "
		if pl.ID == state.PlaylistID() {
			marker = "♪"
		}
		r.writePlain("%s %d. %s (%d songs)\n", marker, i+1, pl.Name, len(pl.Songs))
	}

	return nil
}

// PlaylistCreate creates a new empty playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	db, playlists, _, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := playlists.Create(name)
	if err != nil {
		return err
	}

	r.logger.Info("playlist created", "id", pl.ID, "name", pl.Name)
	r.writePlain("✓ Created playlist %q (%s)\n", pl.Name, pl.ID)
	return nil
}

// PlaylistRename renames an existing playlist.
func (r *Runner) PlaylistRename(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("playlist")
	newName := cmd.StringArg("name")
	if ref == "" || newName == "" {
		return fmt.Errorf("%w: usage: nbx playlist rename <playlist> <new-name>", shared.ErrMissingArgument)
	}

	db, playlists, _, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := findPlaylist(playlists, ref)
	if err != nil {
		return err
	}

	oldName := pl.Name
	if err := playlists.Rename(pl.ID, newName); err != nil {
		return err
	}

	r.writePlain("✓ Renamed %q to %q\n", oldName, newName)
	return nil
}

// PlaylistDelete removes a playlist from the store.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("playlist")
	if ref == "" {
		return fmt.Errorf("%w: playlist id or name is required", shared.ErrMissingArgument)
	}

	db, playlists, _, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := findPlaylist(playlists, ref)
	if err != nil {
		return err
	}

	if err := playlists.Delete(pl.ID); err != nil {
		return err
	}

	r.logger.Info("playlist deleted", "id", pl.ID, "name", pl.Name)
	r.writePlain("✓ Deleted playlist %q\n", pl.Name)
	return nil
}

// PlaylistShow prints the songs of one playlist.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("playlist")
	if ref == "" {
		return fmt.Errorf("%w: playlist id or name is required", shared.ErrMissingArgument)
	}

	db, playlists, _, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := findPlaylist(playlists, ref)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(pl, cmd.Bool("pretty"))
	}

	r.writePlain("%s (%d songs)\n", pl.Name, len(pl.Songs))
	for i, song := range pl.Songs {
		r.writePlain("  %d. %s - %s [%s]\n", i+1, song.Artist, song.Title, shared.FormatDuration(song.Duration))
	}

	return nil
}

// PlaylistExport writes a playlist to a file in the requested format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("playlist")
	if ref == "" {
		return fmt.Errorf("%w: playlist id or name is required", shared.ErrMissingArgument)
	}
	format := cmd.String("format")
	outputPath := cmd.String("output")

	db, playlists, _, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := findPlaylist(playlists, ref)
	if err != nil {
		return err
	}

	if outputPath == "" {
		data, err := formatter.Export(pl, format)
		if err != nil {
			return err
		}
		r.writePlain("%s", string(data))
		return nil
	}

	if err := formatter.WriteExport(pl, format, outputPath); err != nil {
		return err
	}

	r.writePlain("✓ Exported %q to %s\n", pl.Name, outputPath)
	return nil
}

// PlaylistPlay makes a playlist the active one for playback.
func (r *Runner) PlaylistPlay(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("playlist")
	if ref == "" {
		return fmt.Errorf("%w: playlist id or name is required", shared.ErrMissingArgument)
	}

	db, playlists, state, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := findPlaylist(playlists, ref)
	if err != nil {
		return err
	}

	state.Activate(*pl)

	r.writePlain("♪ Now playing from %q (%d songs)\n", pl.Name, len(pl.Songs))
	return nil
}

// playlistCommand handles local playlist management operations.
func playlistCommand(r *Runner) *cli.Command {
	jsonFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}

	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage local playlists",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all playlists",
				Flags:  jsonFlags,
				Action: r.PlaylistList,
			},
			{
				Name:  "create",
				Usage: "Create a new empty playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "rename",
				Usage: "Rename a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
					&cli.StringArg{Name: "name"},
				},
				Action: r.PlaylistRename,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
				},
				Action: r.PlaylistDelete,
			},
			{
				Name:  "show",
				Usage: "Show a playlist's songs",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
				},
				Flags:  jsonFlags,
				Action: r.PlaylistShow,
			},
			{
				Name:  "export",
				Usage: "Export a playlist to csv, markdown, txt, or json",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, txt, json)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				},
				Action: r.PlaylistExport,
			},
			{
				Name:  "play",
				Usage: "Make a playlist the active one",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
				},
				Action: r.PlaylistPlay,
			},
		},
	}
}
