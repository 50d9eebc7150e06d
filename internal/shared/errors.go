package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Remote collection errors
	ErrCollectionUnavailable = fmt.Errorf("collection unavailable")
	ErrItemResolution        = fmt.Errorf("item resolution failed")
	ErrServiceUnavailable    = fmt.Errorf("service unavailable")
	ErrAPIRequest            = fmt.Errorf("API request failed")

	// Lyric errors
	ErrLyricNotFound = fmt.Errorf("no lyrics found")

	// Store errors
	ErrStorage          = fmt.Errorf("storage operation failed")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrDuplicateName    = fmt.Errorf("playlist name already exists")
	ErrSongNotFound     = fmt.Errorf("song not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
