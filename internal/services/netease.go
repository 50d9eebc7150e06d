// NetEase Cloud Music implementation of [LyricSearcher]
//
// Lyric lookup is a two-step flow: a keyword search resolves the best-match
// song id, then a second request fetches that song's LRC text.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nbmusic/nbx/internal/shared"
)

const defaultNeteaseBaseURL = "https://music.163.com/api"

// NeteaseSong is the subset of a search hit the lyric flow needs.
type NeteaseSong struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type neteaseSearchResponse struct {
	Code   int `json:"code"`
	Result struct {
		Songs []NeteaseSong `json:"songs"`
		Total int           `json:"songCount"`
	} `json:"result"`
}

type neteaseLyricResponse struct {
	Code int `json:"code"`
	Lrc  struct {
		Lyric string `json:"lyric"`
	} `json:"lrc"`
}

// NeteaseClient implements [LyricSearcher] against the NetEase web API.
type NeteaseClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNeteaseClient creates a NetEase lyric client.
func NewNeteaseClient(baseURL string) *NeteaseClient {
	if baseURL == "" {
		baseURL = defaultNeteaseBaseURL
	}

	return &NeteaseClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

func (n *NeteaseClient) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	apiURL := n.baseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Referer", "https://music.163.com")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("netease API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Search finds the best-match song for keyword and returns its lyric text.
func (n *NeteaseClient) Search(ctx context.Context, keyword string) (string, error) {
	songID, err := n.searchSong(ctx, keyword)
	if err != nil {
		return "", err
	}

	return n.lyric(ctx, songID)
}

// searchSong resolves the top search hit's song id for keyword.
func (n *NeteaseClient) searchSong(ctx context.Context, keyword string) (int64, error) {
	query := url.Values{
		"s":      {keyword},
		"type":   {"1"}, // songs
		"limit":  {"1"},
		"offset": {"0"},
	}

	var response neteaseSearchResponse
	if err := n.doRequest(ctx, "/search/get", query, &response); err != nil {
		return 0, err
	}

	if response.Code != 200 || len(response.Result.Songs) == 0 {
		return 0, fmt.Errorf("%w: %s", shared.ErrLyricNotFound, keyword)
	}

	return response.Result.Songs[0].ID, nil
}

// lyric fetches the LRC text for a song id.
func (n *NeteaseClient) lyric(ctx context.Context, songID int64) (string, error) {
	query := url.Values{
		"id": {strconv.FormatInt(songID, 10)},
		"lv": {"1"},
	}

	var response neteaseLyricResponse
	if err := n.doRequest(ctx, "/song/lyric", query, &response); err != nil {
		return "", err
	}

	lyric := strings.TrimSpace(response.Lrc.Lyric)
	if response.Code != 200 || lyric == "" {
		return "", fmt.Errorf("%w: song %d", shared.ErrLyricNotFound, songID)
	}

	return lyric, nil
}
