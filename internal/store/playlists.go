package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nbmusic/nbx/internal/models"
	"github.com/nbmusic/nbx/internal/shared"
)

// PlaylistStore holds all playlists in memory and mirrors them to [Storage]
// after every mutation.
//
// All mutations serialize on the mutex; the import pipeline commits a whole
// playlist in a single CreateWithSongs call so readers never observe a
// half-assembled import.
type PlaylistStore struct {
	mu        sync.Mutex
	storage   Storage
	logger    *log.Logger
	playlists []models.Playlist
}

// NewPlaylistStore creates a store and loads the persisted document.
//
// A load failure is logged and the store starts empty; local storage is
// best-effort by design.
func NewPlaylistStore(storage Storage, logger *log.Logger) *PlaylistStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &PlaylistStore{storage: storage, logger: logger}
	s.load()
	return s
}

func (s *PlaylistStore) load() {
	if s.storage == nil {
		return
	}

	data, err := s.storage.Load(StorageKey)
	if err != nil {
		s.logger.Warn("failed to load playlists, starting empty", "error", err)
		return
	}

	var playlists []models.Playlist
	if err := json.Unmarshal(data, &playlists); err != nil {
		s.logger.Warn("failed to parse persisted playlists, starting empty", "error", err)
		return
	}

	// Playlists persisted by older versions of the player may lack ids.
	for i := range playlists {
		if playlists[i].ID == "" {
			playlists[i].ID = shared.GenerateID()
		}
	}

	s.playlists = playlists
}

// persist writes the current document to storage. Failures are logged and
// swallowed; the in-memory state remains authoritative for the session.
func (s *PlaylistStore) persist() {
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(s.playlists)
	if err != nil {
		s.logger.Error("failed to serialize playlists", "error", fmt.Errorf("%w: %v", shared.ErrStorage, err))
		return
	}

	if err := s.storage.Store(StorageKey, data); err != nil {
		s.logger.Error("failed to persist playlists", "error", fmt.Errorf("%w: %v", shared.ErrStorage, err))
	}
}

// List returns a copy of all playlists in order.
func (s *PlaylistStore) List() []models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Playlist, len(s.playlists))
	copy(out, s.playlists)
	return out
}

// Get returns the playlist with the given id.
func (s *PlaylistStore) Get(id string) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlists {
		if s.playlists[i].ID == id {
			pl := s.playlists[i]
			return &pl, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

// GetByName returns the playlist with the given display name.
func (s *PlaylistStore) GetByName(name string) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlists {
		if s.playlists[i].Name == name {
			pl := s.playlists[i]
			return &pl, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
}

// Create adds a new empty playlist with a generated id.
func (s *PlaylistStore) Create(name string) (*models.Playlist, error) {
	return s.CreateWithSongs(name, nil)
}

// CreateWithSongs adds a new playlist with its full song list in one mutation.
//
// This is the import pipeline's commit point: the playlist becomes visible to
// readers only here, after the whole batch has been assembled.
func (s *PlaylistStore) CreateWithSongs(name string, songs []models.Song) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("%w: empty playlist name", shared.ErrInvalidInput)
	}
	if s.nameTaken(name, "") {
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateName, name)
	}

	pl := models.Playlist{
		ID:    shared.GenerateID(),
		Name:  name,
		Songs: append([]models.Song(nil), songs...),
	}

	s.playlists = append(s.playlists, pl)
	s.persist()

	return &pl, nil
}

// Rename changes a playlist's display name, keeping names unique.
func (s *PlaylistStore) Rename(id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newName == "" {
		return fmt.Errorf("%w: empty playlist name", shared.ErrInvalidInput)
	}
	if s.nameTaken(newName, id) {
		return fmt.Errorf("%w: %s", shared.ErrDuplicateName, newName)
	}

	for i := range s.playlists {
		if s.playlists[i].ID == id {
			s.playlists[i].Name = newName
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

// Delete removes a playlist.
func (s *PlaylistStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlists {
		if s.playlists[i].ID == id {
			s.playlists = append(s.playlists[:i], s.playlists[i+1:]...)
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

// ReplaceSongs swaps a playlist's entire song list.
func (s *PlaylistStore) ReplaceSongs(id string, songs []models.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlists {
		if s.playlists[i].ID == id {
			s.playlists[i].Songs = append([]models.Song(nil), songs...)
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

// AppendSong adds a song to the end of a playlist.
func (s *PlaylistStore) AppendSong(id string, song models.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlists {
		if s.playlists[i].ID == id {
			s.playlists[i].Songs = append(s.playlists[i].Songs, song)
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

// RemoveSong removes the song at index from a playlist.
func (s *PlaylistStore) RemoveSong(id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlists {
		if s.playlists[i].ID == id {
			songs := s.playlists[i].Songs
			if index < 0 || index >= len(songs) {
				return fmt.Errorf("%w: index %d", shared.ErrSongNotFound, index)
			}
			s.playlists[i].Songs = append(songs[:index], songs[index+1:]...)
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

// UniqueName derives a display name from base that does not collide with any
// existing playlist, appending " (2)", " (3)", ... as needed.
func (s *PlaylistStore) UniqueName(base string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.nameTaken(base, "") {
		return base
	}

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", base, n)
		if !s.nameTaken(candidate, "") {
			return candidate
		}
	}
}

// nameTaken reports whether name belongs to a playlist other than excludeID.
// Callers hold the mutex.
func (s *PlaylistStore) nameTaken(name, excludeID string) bool {
	for i := range s.playlists {
		if s.playlists[i].Name == name && s.playlists[i].ID != excludeID {
			return true
		}
	}
	return false
}
