package tasks

import (
	"context"

	"github.com/nbmusic/nbx/internal/models"
	"github.com/nbmusic/nbx/internal/services"
)

// LyricMode selects the lyric resolution strategy for a whole import.
type LyricMode string

const (
	LyricAuto        LyricMode = "auto"
	LyricInteractive LyricMode = "interactive"
)

// Valid reports whether the mode is one of the known strategies.
func (m LyricMode) Valid() bool {
	return m == LyricAuto || m == LyricInteractive
}

// LyricResolver resolves lyric text for a song.
//
// Implementations never return a hard failure for lookup problems; any
// failure or empty result collapses to [models.SentinelLyric]. The returned
// error is reserved for context cancellation and prompt transport failures.
type LyricResolver interface {
	Resolve(ctx context.Context, song models.Song) (string, error)
}

// PromptReply gestures.
type PromptGesture int

const (
	GestureConfirm PromptGesture = iota
	GestureSkip
	GestureCancel
)

// PromptRequest asks a human for a lyric search keyword for one song.
type PromptRequest struct {
	Title   string // Song title for display
	Keyword string // Editable default keyword (the title)
}

// PromptReply is the human's answer to a [PromptRequest].
type PromptReply struct {
	Gesture PromptGesture
	Keyword string // Edited keyword; meaningful only with GestureConfirm
}

// Prompter suspends the import until a human answers a lyric prompt.
//
// There is no timeout: the pipeline resumes only on confirm, skip, or cancel.
type Prompter interface {
	Prompt(ctx context.Context, req PromptRequest) (PromptReply, error)
}

// AutoResolver searches lyrics with the song title, no interaction.
type AutoResolver struct {
	Searcher services.LyricSearcher
}

// Resolve looks the song title up, falling back to the sentinel on any
// failure or empty result.
func (r AutoResolver) Resolve(ctx context.Context, song models.Song) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lyric, err := r.Searcher.Search(ctx, song.Title)
	if err != nil || lyric == "" {
		return models.SentinelLyric, nil
	}
	return lyric, nil
}

// InteractiveResolver suspends per song to let a human supply or edit the
// search keyword, or skip the song.
type InteractiveResolver struct {
	Searcher services.LyricSearcher
	Prompter Prompter
}

// Resolve prompts for a keyword and searches with the confirmed text.
// Skip and cancel both resolve to the sentinel, as does a failed lookup.
func (r InteractiveResolver) Resolve(ctx context.Context, song models.Song) (string, error) {
	reply, err := r.Prompter.Prompt(ctx, PromptRequest{Title: song.Title, Keyword: song.Title})
	if err != nil {
		return "", err
	}

	if reply.Gesture != GestureConfirm || reply.Keyword == "" {
		return models.SentinelLyric, nil
	}

	lyric, err := r.Searcher.Search(ctx, reply.Keyword)
	if err != nil || lyric == "" {
		return models.SentinelLyric, nil
	}
	return lyric, nil
}
