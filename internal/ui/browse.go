package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nbmusic/nbx/internal/models"
	"github.com/nbmusic/nbx/internal/player"
	"github.com/nbmusic/nbx/internal/shared"
	"github.com/nbmusic/nbx/internal/store"
)

// ViewState represents the current view in the browser TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	SongListView
)

// browseKeyMap defines the [key.Binding] mapping for the browser.
type browseKeyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	play  key.Binding
	open  key.Binding
	back  key.Binding
	quit  key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open playlist")),
		play:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play from here")),
		open:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open video page")),
		back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.back, k.quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.play, k.open},
		{k.back, k.quit},
	}
}

// playlistItem wraps [models.Playlist] to implement list.Item.
type playlistItem struct {
	playlist models.Playlist
	active   bool
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string {
	if i.active {
		return i.playlist.Name + " ♪"
	}
	return i.playlist.Name
}
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d songs", len(i.playlist.Songs))
}

// songItem wraps [models.Song] to implement list.Item.
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	return fmt.Sprintf("%s · %s", i.song.Artist, shared.FormatDuration(i.song.Duration))
}

// BrowseModel is the playlist browser: a playlist list view that drills into
// a song list, mirroring the player's two-column music list.
type BrowseModel struct {
	view     ViewState
	store    *store.PlaylistStore
	state    *player.State
	width    int
	height   int
	lists    list.Model
	songs    list.Model
	selected *models.Playlist
	help     help.Model
	keys     browseKeyMap
}

// NewBrowseModel creates a browser over the given store and player state.
func NewBrowseModel(st *store.PlaylistStore, ps *player.State) *BrowseModel {
	m := &BrowseModel{
		view:  PlaylistListView,
		store: st,
		state: ps,
		help:  help.New(),
		keys:  newBrowseKeyMap(),
	}
	m.reloadPlaylists()
	return m
}

func (m *BrowseModel) reloadPlaylists() {
	playlists := m.store.List()
	activeID := ""
	if m.state != nil {
		activeID = m.state.PlaylistID()
	}

	items := make([]list.Item, len(playlists))
	for i, pl := range playlists {
		items[i] = playlistItem{playlist: pl, active: pl.ID == activeID}
	}

	m.lists = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.lists.Title = "Playlists"
	if m.width > 0 {
		m.lists.SetSize(m.width-4, m.height-8)
	}
}

func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.lists.SetSize(msg.Width-4, msg.Height-8)
		m.songs.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistKeys(msg)
		case SongListView:
			return m.handleSongKeys(msg)
		}
	}

	return m.updateLists(msg)
}

func (m *BrowseModel) View() string {
	switch m.view {
	case PlaylistListView:
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", m.lists.View(), helpView)
	case SongListView:
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.play, m.keys.open, m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", m.songs.View(), helpView)
	default:
		return ""
	}
}

func (m *BrowseModel) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.lists.SelectedItem().(playlistItem); ok {
			pl := item.playlist
			m.selected = &pl
			m.openSongList(pl)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.lists, cmd = m.lists.Update(msg)
	return m, cmd
}

func (m *BrowseModel) openSongList(pl models.Playlist) {
	items := make([]list.Item, len(pl.Songs))
	for i, song := range pl.Songs {
		items[i] = songItem{song: song}
	}

	m.songs = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.songs.Title = fmt.Sprintf("Songs in '%s'", pl.Name)
	if m.width > 0 {
		m.songs.SetSize(m.width-4, m.height-8)
	}
	m.view = SongListView
}

func (m *BrowseModel) handleSongKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		m.reloadPlaylists()
		return m, nil
	case key.Matches(msg, m.keys.play):
		if m.selected != nil && m.state != nil {
			m.state.Activate(*m.selected)
			m.state.SetPlayingIndex(m.songs.Index())
		}
		return m, nil
	case key.Matches(msg, m.keys.open):
		if item, ok := m.songs.SelectedItem().(songItem); ok {
			// Best effort; browsing continues even if no browser is available.
			shared.OpenBrowser(item.song.VideoURL())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songs, cmd = m.songs.Update(msg)
	return m, cmd
}

func (m *BrowseModel) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.lists, cmd = m.lists.Update(msg)
	case SongListView:
		m.songs, cmd = m.songs.Update(msg)
	}
	return m, cmd
}
