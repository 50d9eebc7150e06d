package tasks

import (
	"fmt"

	"github.com/nbmusic/nbx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Phase enumerates the import pipeline's states in execution order.
type Phase int

const (
	ResolveCollection Phase = iota
	FetchPages
	ResolveContent
	ResolveLyrics
	Commit
)

func (p Phase) String() string {
	switch p {
	case ResolveCollection:
		return "resolve_collection"
	case FetchPages:
		return "fetch_pages"
	case ResolveContent:
		return "resolve_content"
	case ResolveLyrics:
		return "resolve_lyrics"
	case Commit:
		return "commit"
	default:
		return ""
	}
}

func resolveCollectionUpdate(mediaID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveCollection,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving favorites folder %s...", mediaID),
	}
}

func collectionFoundUpdate(title string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveCollection,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found folder: %s (%d items)", title, count),
	}
}

func fetchPageUpdate(page, totalPages int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPages,
		Step:    page,
		Total:   totalPages,
		Message: fmt.Sprintf("[%d/%d] Fetching page...", page, totalPages),
	}
}

func resolveItemUpdate(step, total int, item string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveContent,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving %s", step, total, item),
	}
}

func itemSkippedUpdate(step, total int, item string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveContent,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, item, err),
	}
}

func resolveLyricUpdate(step, total int, song *models.Song) ProgressUpdate {
	if song == nil {
		return ProgressUpdate{
			Phase:   ResolveLyrics,
			Step:    step,
			Total:   total,
			Message: "Searching lyrics...",
		}
	}
	return ProgressUpdate{
		Phase:   ResolveLyrics,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, song.Title),
	}
}

func commitUpdate(name string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Commit,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Committing playlist %q (%d songs)", name, count),
	}
}
