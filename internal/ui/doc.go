// Package ui implements the terminal frontends: the interactive lyric
// keyword prompt used by imports in interactive mode, and a playlist browser
// for inspecting and activating local playlists.
//
// The lyric prompt is the import pipeline's only human-bound suspension
// point. [TTYPrompter] runs one bubbletea program per prompt; the pipeline
// resumes on confirm, skip, or escape, with no timeout.
package ui
