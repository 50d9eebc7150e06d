// Bilibili favorites API implementation of [Collection]
//
// Response shapes follow the x/v3/fav and x/web-interface endpoints; every
// payload arrives in a {code, message, data} envelope where a non-zero code
// is a service-level failure even with HTTP 200.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/nbmusic/nbx/internal/shared"
)

const defaultBiliBaseURL = "https://api.bilibili.com"

// biliEnvelope is the common response wrapper of the Bilibili web API.
type biliEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BiliFolderInfo is the payload of /x/v3/fav/folder/info.
type BiliFolderInfo struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	MediaCount int       `json:"media_count"`
	Upper      BiliUpper `json:"upper"`
	Cover      string    `json:"cover"`
}

// BiliUpper identifies the uploader of a video or owner of a folder.
type BiliUpper struct {
	Mid  int64  `json:"mid"`
	Name string `json:"name"`
}

// BiliMedia is a single entry of /x/v3/fav/resource/list.
//
// Attr is a bitfield; any non-zero value marks the video as no longer
// available ("失效").
type BiliMedia struct {
	Title    string    `json:"title"`
	Cover    string    `json:"cover"`
	BVID     string    `json:"bvid"`
	Attr     int       `json:"attr"`
	Duration int       `json:"duration"`
	Upper    BiliUpper `json:"upper"`
}

type biliResourceList struct {
	Medias  []BiliMedia `json:"medias"`
	HasMore bool        `json:"has_more"`
}

// biliView is the payload subset of /x/web-interface/view the importer needs.
type biliView struct {
	CID int64 `json:"cid"`
}

// BiliClient implements [Collection] against the Bilibili web API.
type BiliClient struct {
	baseURL    string
	cookie     string
	httpClient *http.Client
	logger     *log.Logger
}

// NewBiliClient creates a Bilibili API client.
//
// cookie may be empty; it is only required for private favorites folders.
func NewBiliClient(baseURL, cookie string, logger *log.Logger) *BiliClient {
	if baseURL == "" {
		baseURL = defaultBiliBaseURL
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &BiliClient{
		baseURL:    baseURL,
		cookie:     cookie,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// Name returns the service name.
func (b *BiliClient) Name() string {
	return "Bilibili"
}

// doRequest performs a GET against the Bilibili API, unwraps the response
// envelope, and decodes data into result.
func (b *BiliClient) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	apiURL := b.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if b.cookie != "" {
		req.Header.Set("Cookie", b.cookie)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bilibili API error: status %d", resp.StatusCode)
	}

	var envelope biliEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if envelope.Code != 0 {
		return fmt.Errorf("bilibili API error: code %d: %s", envelope.Code, envelope.Message)
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// Info retrieves title and total item count for a favorites folder.
func (b *BiliClient) Info(ctx context.Context, mediaID string) (*CollectionInfo, error) {
	query := url.Values{"media_id": {mediaID}}

	var info BiliFolderInfo
	if err := b.doRequest(ctx, "/x/v3/fav/folder/info", query, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCollectionUnavailable, err)
	}

	return &CollectionInfo{
		Title:      info.Title,
		MediaCount: info.MediaCount,
	}, nil
}

// Page retrieves one page of the folder listing.
//
// Page failures are absorbed here: the error is logged and an empty slice
// returned, so the caller's pagination loop keeps going.
func (b *BiliClient) Page(ctx context.Context, mediaID string, page, pageSize int) ([]RemoteItem, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	query := url.Values{
		"media_id": {mediaID},
		"pn":       {strconv.Itoa(page)},
		"ps":       {strconv.Itoa(pageSize)},
		"platform": {"web"},
	}

	var list biliResourceList
	if err := b.doRequest(ctx, "/x/v3/fav/resource/list", query, &list); err != nil {
		b.logger.Warn("favorites page fetch failed", "media_id", mediaID, "page", page, "error", err)
		return nil, nil
	}

	items := make([]RemoteItem, len(list.Medias))
	for i, media := range list.Medias {
		items[i] = RemoteItem{
			Title:    media.Title,
			Uploader: media.Upper.Name,
			BVID:     media.BVID,
			Duration: media.Duration,
			Cover:    media.Cover,
			Dead:     media.Attr != 0,
		}
	}

	return items, nil
}

// ResolveCID resolves the content id needed for audio stream lookup.
func (b *BiliClient) ResolveCID(ctx context.Context, bvid string) (int64, error) {
	query := url.Values{"bvid": {bvid}}

	var view biliView
	if err := b.doRequest(ctx, "/x/web-interface/view", query, &view); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", shared.ErrItemResolution, bvid, err)
	}

	if view.CID == 0 {
		return 0, fmt.Errorf("%w: %s: empty cid in response", shared.ErrItemResolution, bvid)
	}

	return view.CID, nil
}
