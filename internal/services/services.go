// package services defines interfaces for the remote HTTP APIs the importer
// talks to: the Bilibili favorites API and a lyric search service.
package services

import (
	"context"
)

// Collection defines read access to a remote, paginated favorites collection.
//
// Implementations are stateless request/response mirrors of the remote API;
// filtering of dead items and failure bookkeeping belong to the caller.
type Collection interface {
	// Info retrieves the collection title and total item count.
	// Failure here is terminal for an import, since the page count cannot
	// be derived without the total.
	Info(ctx context.Context, mediaID string) (*CollectionInfo, error)

	// Page retrieves one page of the collection listing, 1-based.
	// A non-success page response yields an empty slice and nil error so a
	// single bad page never aborts a whole import.
	Page(ctx context.Context, mediaID string, page, pageSize int) ([]RemoteItem, error)

	// ResolveCID resolves the playback content id for a source video.
	ResolveCID(ctx context.Context, bvid string) (int64, error)

	// Name returns the name of the backing service.
	Name() string
}

// LyricSearcher searches a lyric service by free-text keyword.
type LyricSearcher interface {
	// Search returns lyric text for the best match of keyword, or
	// shared.ErrLyricNotFound when the service has nothing.
	Search(ctx context.Context, keyword string) (string, error)
}

// CollectionInfo describes a remote favorites collection.
type CollectionInfo struct {
	Title      string
	MediaCount int
}

// RemoteItem is a single listing entry of a collection page.
type RemoteItem struct {
	Title    string
	Uploader string
	BVID     string
	Duration int // seconds
	Cover    string
	Dead     bool // item no longer playable; dropped by the importer
}

// DefaultPageSize is the listing page size used when none is configured.
const DefaultPageSize = 20
