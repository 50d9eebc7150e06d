package tasks

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/nbmusic/nbx/internal/models"
	"github.com/nbmusic/nbx/internal/services"
	"github.com/nbmusic/nbx/internal/shared"
	"github.com/nbmusic/nbx/internal/store"
	"golang.org/x/time/rate"
)

// ImportResult contains the outcome of a favorites import.
//
// Success is false only when the collection info could not be resolved; any
// later failure is absorbed as a per-item skip and the import still succeeds
// with however many songs survived.
type ImportResult struct {
	Success      bool   // Whether a playlist was committed
	Message      string // Human-readable summary
	PlaylistID   string // Committed playlist id (empty on failure)
	PlaylistName string // Display name actually used
	Imported     int    // Songs committed
	SkippedDead  int    // Items dropped because no longer playable
	SkippedError int    // Items dropped because resolution failed
	Total        int    // Total items the collection reported
}

// ImportEngine drives favorites imports against a [services.Collection],
// committing results into a [store.PlaylistStore].
type ImportEngine struct {
	collection services.Collection
	resolver   LyricResolver
	store      *store.PlaylistStore
	pageSize   int
	limiter    *rate.Limiter
	logger     *log.Logger
}

// ImportEngineOpts configures a new [ImportEngine].
type ImportEngineOpts struct {
	Collection services.Collection
	Resolver   LyricResolver
	Store      *store.PlaylistStore
	PageSize   int     // Listing page size; defaults to services.DefaultPageSize
	RateLimit  float64 // Remote requests per second; defaults to 5
	Logger     *log.Logger
}

// NewImportEngine creates an engine with the provided dependencies.
func NewImportEngine(opts ImportEngineOpts) *ImportEngine {
	if opts.PageSize <= 0 {
		opts.PageSize = services.DefaultPageSize
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &ImportEngine{
		collection: opts.Collection,
		resolver:   opts.Resolver,
		store:      opts.Store,
		pageSize:   opts.PageSize,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		logger:     opts.Logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ImportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run imports the favorites folder mediaID into a brand-new playlist.
//
// The pipeline is strictly sequential: pages ascend one at a time, each
// item's content id is resolved in listing order, and lyric resolution
// happens one song at a time so interactive prompts stay orderly.
//
// A collection-info failure is reported inside the result (Success false,
// no store mutation); the error return is reserved for missing dependencies
// and context cancellation.
func (e *ImportEngine) Run(ctx context.Context, mediaID string, progress chan<- ProgressUpdate) (*ImportResult, error) {
	if e.collection == nil {
		return nil, fmt.Errorf("%w: collection client not initialized", shared.ErrServiceUnavailable)
	}
	if e.resolver == nil {
		return nil, fmt.Errorf("%w: lyric resolver not initialized", shared.ErrServiceUnavailable)
	}
	if e.store == nil {
		return nil, fmt.Errorf("%w: playlist store not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, resolveCollectionUpdate(mediaID))

	info, err := e.collection.Info(ctx, mediaID)
	if err != nil {
		e.logger.Error("collection info fetch failed", "media_id", mediaID, "error", err)
		return &ImportResult{
			Success: false,
			Message: fmt.Sprintf("import failed: %v", err),
		}, nil
	}

	result := &ImportResult{Total: info.MediaCount}
	e.sendProgress(progress, collectionFoundUpdate(info.Title, info.MediaCount))

	// The staged playlist exists only as this local slice until commit; the
	// store is never touched mid-import.
	staged, err := e.collectSongs(ctx, mediaID, info.MediaCount, result, progress)
	if err != nil {
		return nil, err
	}

	if err := e.attachLyrics(ctx, staged, progress); err != nil {
		return nil, err
	}

	name := e.store.UniqueName(info.Title)
	e.sendProgress(progress, commitUpdate(name, len(staged)))

	pl, err := e.store.CreateWithSongs(name, staged)
	if errors.Is(err, shared.ErrDuplicateName) {
		// A playlist with the derived name appeared mid-import; pick a fresh
		// suffix and retry once.
		name = e.store.UniqueName(info.Title)
		pl, err = e.store.CreateWithSongs(name, staged)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to commit playlist: %w", err)
	}

	result.Success = true
	result.PlaylistID = pl.ID
	result.PlaylistName = pl.Name
	result.Imported = len(staged)
	result.Message = fmt.Sprintf("imported %d songs into playlist %q", len(staged), pl.Name)

	return result, nil
}

// collectSongs paginates the collection and resolves each live item's
// content id, preserving page and within-page order.
func (e *ImportEngine) collectSongs(ctx context.Context, mediaID string, total int, result *ImportResult, progress chan<- ProgressUpdate) ([]models.Song, error) {
	totalPages := (total + e.pageSize - 1) / e.pageSize
	var staged []models.Song
	step := 0

	for page := 1; page <= totalPages; page++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		e.sendProgress(progress, fetchPageUpdate(page, totalPages))

		items, err := e.collection.Page(ctx, mediaID, page, e.pageSize)
		if err != nil {
			// Transient page failure: zero items for this page, keep going.
			e.logger.Warn("page listing failed, skipping", "page", page, "error", err)
			continue
		}

		for _, item := range items {
			step++

			if item.Dead {
				result.SkippedDead++
				continue
			}

			if err := e.limiter.Wait(ctx); err != nil {
				return nil, err
			}

			e.sendProgress(progress, resolveItemUpdate(step, total, item.BVID))

			cid, err := e.collection.ResolveCID(ctx, item.BVID)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				e.logger.Warn("content id resolution failed, skipping item", "bvid", item.BVID, "error", err)
				e.sendProgress(progress, itemSkippedUpdate(step, total, item.BVID, err))
				result.SkippedError++
				continue
			}

			staged = append(staged, models.Song{
				Title:    item.Title,
				Artist:   item.Uploader,
				BVID:     item.BVID,
				CID:      cid,
				Duration: item.Duration,
				Poster:   item.Cover,
			})
		}
	}

	return staged, nil
}

// attachLyrics resolves lyric text for every staged song, one at a time.
func (e *ImportEngine) attachLyrics(ctx context.Context, staged []models.Song, progress chan<- ProgressUpdate) error {
	total := len(staged)
	e.sendProgress(progress, resolveLyricUpdate(0, total, nil))

	for i := range staged {
		e.sendProgress(progress, resolveLyricUpdate(i+1, total, &staged[i]))

		lyric, err := e.resolver.Resolve(ctx, staged[i])
		if err != nil {
			return err
		}
		if lyric == "" {
			lyric = models.SentinelLyric
		}
		staged[i].Lyric = lyric
	}

	return nil
}

var favURLRegex = regexp.MustCompile(`fid=(\d+)`)
var digitsRegex = regexp.MustCompile(`^\d+$`)

// ParseMediaID extracts a favorites folder id from raw user input: either a
// bare numeric id or a favorites page URL carrying a fid query parameter.
func ParseMediaID(input string) (string, error) {
	if digitsRegex.MatchString(input) {
		return input, nil
	}

	if match := favURLRegex.FindStringSubmatch(input); len(match) == 2 {
		return match[1], nil
	}

	return "", fmt.Errorf("%w: cannot parse favorites folder id from %q", shared.ErrInvalidInput, input)
}
