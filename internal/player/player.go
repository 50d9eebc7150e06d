// package player holds the host player's persisted state: which playlist is
// active and which song is playing.
//
// The import pipeline never touches this state; it is mutated only when a
// playlist is explicitly activated.
package player

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nbmusic/nbx/internal/models"
	"github.com/nbmusic/nbx/internal/shared"
	"github.com/nbmusic/nbx/internal/store"
)

// StorageKey is the key the serialized player state is stored under.
const StorageKey = "nbmusic_player_state"

type persistedState struct {
	PlaylistID   string        `json:"playlist_id"`
	PlaylistName string        `json:"playlist_name"`
	Songs        []models.Song `json:"songs"`
	Index        int           `json:"index"`
}

// State mirrors the host player's current playlist and playback position.
type State struct {
	mu      sync.Mutex
	storage store.Storage
	logger  *log.Logger

	playlistID   string
	playlistName string
	songs        []models.Song
	index        int

	// OnRefresh, when set, is invoked after every activation so the UI can
	// re-render.
	OnRefresh func()
}

// NewState creates player state, restoring the last persisted snapshot.
func NewState(storage store.Storage, logger *log.Logger) *State {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &State{storage: storage, logger: logger}
	s.load()
	return s
}

func (s *State) load() {
	if s.storage == nil {
		return
	}

	data, err := s.storage.Load(StorageKey)
	if err != nil {
		return
	}

	var ps persistedState
	if err := json.Unmarshal(data, &ps); err != nil {
		s.logger.Warn("failed to parse player state", "error", err)
		return
	}

	s.playlistID = ps.PlaylistID
	s.playlistName = ps.PlaylistName
	s.songs = ps.Songs
	s.index = ps.Index
}

// Save persists the current state. Failures are logged, never propagated.
func (s *State) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save()
}

func (s *State) save() {
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(persistedState{
		PlaylistID:   s.playlistID,
		PlaylistName: s.playlistName,
		Songs:        s.songs,
		Index:        s.index,
	})
	if err != nil {
		s.logger.Error("failed to serialize player state", "error", err)
		return
	}

	if err := s.storage.Store(StorageKey, data); err != nil {
		s.logger.Error("failed to persist player state", "error", fmt.Errorf("%w: %v", shared.ErrStorage, err))
	}
}

// Activate switches the player to the given playlist, resetting the playing
// index and notifying the UI.
func (s *State) Activate(pl models.Playlist) {
	s.mu.Lock()
	s.playlistID = pl.ID
	s.playlistName = pl.Name
	s.songs = append([]models.Song(nil), pl.Songs...)
	s.index = 0
	s.save()
	refresh := s.OnRefresh
	s.mu.Unlock()

	if refresh != nil {
		refresh()
	}
}

// SetPlayingIndex moves playback to song i of the active playlist.
func (s *State) SetPlayingIndex(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || (len(s.songs) > 0 && i >= len(s.songs)) {
		return fmt.Errorf("%w: index %d out of range", shared.ErrInvalidArgument, i)
	}

	s.index = i
	s.save()
	return nil
}

// PlaylistID returns the active playlist's id.
func (s *State) PlaylistID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlistID
}

// PlaylistName returns the active playlist's display name.
func (s *State) PlaylistName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlistName
}

// Songs returns a copy of the active song sequence.
func (s *State) Songs() []models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Song(nil), s.songs...)
}

// Index returns the currently playing song index.
func (s *State) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}
