package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nbmusic/nbx/internal/shared"
	"github.com/nbmusic/nbx/internal/tasks"
	"github.com/nbmusic/nbx/internal/ui"
	"github.com/urfave/cli/v3"
)

// ImportRun imports a Bilibili favorites folder into a new local playlist.
func (r *Runner) ImportRun(ctx context.Context, cmd *cli.Command) error {
	if r.bilibili == nil {
		return fmt.Errorf("%w: Bilibili client not initialized", shared.ErrServiceUnavailable)
	}
	if r.lyrics == nil {
		return fmt.Errorf("%w: lyric service not initialized", shared.ErrServiceUnavailable)
	}

	input := cmd.String("id")
	if input == "" {
		input = cmd.String("url")
	}
	if input == "" {
		return fmt.Errorf("%w: either --id or --url must be provided", shared.ErrMissingArgument)
	}

	mediaID, err := tasks.ParseMediaID(input)
	if err != nil {
		return err
	}

	mode := tasks.LyricMode(cmd.String("lyrics"))
	if mode == "" {
		mode = tasks.LyricMode(r.config.Lyrics.Mode)
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: invalid lyric mode %q (must be 'auto' or 'interactive')", shared.ErrInvalidFlag, string(mode))
	}

	var resolver tasks.LyricResolver
	switch mode {
	case tasks.LyricInteractive:
		resolver = tasks.InteractiveResolver{Searcher: r.lyrics, Prompter: ui.TTYPrompter{}}
	default:
		resolver = tasks.AutoResolver{Searcher: r.lyrics}
	}

	db, playlists, _, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	engine := tasks.NewImportEngine(tasks.ImportEngineOpts{
		Collection: r.bilibili,
		Resolver:   resolver,
		Store:      playlists,
		PageSize:   r.config.Bilibili.PageSize,
		RateLimit:  r.config.Bilibili.RateLimit,
		Logger:     r.logger,
	})

	r.logger.Info("starting import", "media_id", mediaID, "lyrics", string(mode))
	r.writePlain("Importing favorites folder %s...\n\n", mediaID)

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ResolveCollection:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.FetchPages:
				r.writePlain("\n📄 %s\n", update.Message)
			case tasks.ResolveContent:
				r.writePlain("   %s\n", update.Message)
			case tasks.ResolveLyrics:
				if update.Step == 0 {
					r.writePlain("\n🔍 %s\n", update.Message)
				} else if mode != tasks.LyricInteractive {
					// Interactive mode owns the terminal during prompts.
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.Commit:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, mediaID, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	if !result.Success {
		r.writePlain("\n✗ %s\n", result.Message)
		return errors.New(result.Message)
	}

	r.writePlain("\n═══════════════════════════════════════\n")
	r.writePlain("Import Complete!\n")
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("Playlist: %s (%s)\n", result.PlaylistName, result.PlaylistID)
	r.writePlain("Imported: %d/%d songs\n", result.Imported, result.Total)

	if result.SkippedDead > 0 {
		r.writePlain("Skipped (no longer playable): %d\n", result.SkippedDead)
	}
	if result.SkippedError > 0 {
		r.writePlain("Skipped (resolution failed): %d\n", result.SkippedError)
	}

	return nil
}

// importCommand handles favorites import operations.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import Bilibili favorites into local playlists",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Import a favorites folder as a new playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "Favorites folder (media) id",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "Favorites page URL carrying a fid parameter",
					},
					&cli.StringFlag{
						Name:    "lyrics",
						Aliases: []string{"l"},
						Usage:   "Lyric resolution mode: auto or interactive",
					},
				},
				Action: r.ImportRun,
			},
		},
	}
}
