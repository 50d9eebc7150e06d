// package models defines the data model for local playlists and their songs
package models

import (
	"fmt"
	"strings"
)

// SentinelLyric is the fallback lyric text attached to a song when no real
// lyrics could be obtained. Kept in the original application's language since
// it is user-facing player data, not a log message.
const SentinelLyric = "暂无歌词，尽情欣赏音乐"

// Song represents a playable track inside a playlist.
//
// BVID identifies the source video; CID is the content id resolved via a
// follow-up lookup and required before the song can be played. Audio is
// resolved lazily at play time and stays empty in persisted data.
type Song struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	BVID     string `json:"bvid"`
	CID      int64  `json:"cid"`
	Duration int    `json:"duration"` // seconds
	Poster   string `json:"poster"`
	Audio    string `json:"audio,omitempty"`
	Lyric    string `json:"lyric"`
}

// Validate checks that a song is complete enough to be committed to a playlist.
func (s Song) Validate() error {
	if s.BVID == "" {
		return fmt.Errorf("song %q has no source id", s.Title)
	}
	if s.CID == 0 {
		return fmt.Errorf("song %q has no resolved content id", s.Title)
	}
	if s.Lyric == "" {
		return fmt.Errorf("song %q has empty lyric text", s.Title)
	}
	return nil
}

// VideoURL returns the public page URL for the song's source video.
func (s Song) VideoURL() string {
	return "https://www.bilibili.com/video/" + s.BVID
}

// Playlist is a named, ordered collection of songs.
//
// ID is generated once at creation and never changes; Name is unique among
// all playlists at any point in time.
type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

// Validate checks playlist integrity including every contained song.
func (p Playlist) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("playlist %q has no id", p.Name)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("playlist %s has empty name", p.ID)
	}
	for _, song := range p.Songs {
		if err := song.Validate(); err != nil {
			return fmt.Errorf("playlist %q: %w", p.Name, err)
		}
	}
	return nil
}
