package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nbmusic/nbx/internal/shared"
)

func biliOK(w http.ResponseWriter, data any) {
	raw, _ := json.Marshal(data)
	json.NewEncoder(w).Encode(map[string]any{
		"code":    0,
		"message": "0",
		"data":    json.RawMessage(raw),
	})
}

func TestBiliClient(t *testing.T) {
	ctx := context.Background()

	t.Run("NewBiliClient", func(t *testing.T) {
		t.Run("creates client with default URL", func(t *testing.T) {
			if c := NewBiliClient("", "", nil); c.baseURL != defaultBiliBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultBiliBaseURL, c.baseURL)
			}
		})

		t.Run("creates client with custom URL", func(t *testing.T) {
			customURL := "http://localhost:9000"
			if c := NewBiliClient(customURL, "", nil); c.baseURL != customURL {
				t.Errorf("expected baseURL to be %s, got %s", customURL, c.baseURL)
			}
		})
	})

	t.Run("Name", func(t *testing.T) {
		if c := NewBiliClient("", "", nil); c.Name() != "Bilibili" {
			t.Errorf("expected name to be 'Bilibili', got %s", c.Name())
		}
	})

	t.Run("Info", func(t *testing.T) {
		t.Run("returns folder title and count", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/x/v3/fav/folder/info" {
					t.Errorf("expected path /x/v3/fav/folder/info, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("media_id"); got != "12345" {
					t.Errorf("expected media_id 12345, got %s", got)
				}
				biliOK(w, BiliFolderInfo{ID: 12345, Title: "温柔纯音乐", MediaCount: 45})
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "", nil)
			info, err := client.Info(ctx, "12345")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if info.Title != "温柔纯音乐" {
				t.Errorf("expected title 温柔纯音乐, got %s", info.Title)
			}
			if info.MediaCount != 45 {
				t.Errorf("expected 45 items, got %d", info.MediaCount)
			}
		})

		t.Run("sends cookie header when configured", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Cookie"); got != "SESSDATA=abc" {
					t.Errorf("expected cookie header, got %q", got)
				}
				biliOK(w, BiliFolderInfo{Title: "x", MediaCount: 1})
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "SESSDATA=abc", nil)
			if _, err := client.Info(ctx, "1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("wraps envelope failure as collection unavailable", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"code": -403, "message": "access denied"})
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "", nil)
			_, err := client.Info(ctx, "12345")
			if !errors.Is(err, shared.ErrCollectionUnavailable) {
				t.Errorf("expected ErrCollectionUnavailable, got %v", err)
			}
		})

		t.Run("wraps HTTP failure as collection unavailable", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "", nil)
			if _, err := client.Info(ctx, "12345"); !errors.Is(err, shared.ErrCollectionUnavailable) {
				t.Errorf("expected ErrCollectionUnavailable, got %v", err)
			}
		})
	})

	t.Run("Page", func(t *testing.T) {
		t.Run("maps listing entries to remote items", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/x/v3/fav/resource/list" {
					t.Errorf("expected path /x/v3/fav/resource/list, got %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("pn") != "2" || q.Get("ps") != "20" || q.Get("platform") != "web" {
					t.Errorf("unexpected query: %s", r.URL.RawQuery)
				}
				biliOK(w, biliResourceList{
					Medias: []BiliMedia{
						{Title: "夜的钢琴曲", BVID: "BV1xx411c7mD", Duration: 210, Upper: BiliUpper{Name: "昼夜"}},
						{Title: "已失效视频", BVID: "BV1yy411c7mE", Attr: 9},
					},
					HasMore: true,
				})
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "", nil)
			items, err := client.Page(ctx, "12345", 2, 20)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("expected 2 items, got %d", len(items))
			}
			if items[0].Title != "夜的钢琴曲" || items[0].Uploader != "昼夜" || items[0].Dead {
				t.Errorf("unexpected first item: %+v", items[0])
			}
			if !items[1].Dead {
				t.Error("expected non-zero attr to mark the item dead")
			}
		})

		t.Run("defaults the page size", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("ps"); got != "20" {
					t.Errorf("expected default ps=20, got %s", got)
				}
				biliOK(w, biliResourceList{})
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "", nil)
			if _, err := client.Page(ctx, "12345", 1, 0); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("absorbs page failures", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "", nil)
			items, err := client.Page(ctx, "12345", 1, 20)
			if err != nil {
				t.Fatalf("expected page failure to be absorbed, got %v", err)
			}
			if len(items) != 0 {
				t.Errorf("expected no items, got %d", len(items))
			}
		})
	})

	t.Run("ResolveCID", func(t *testing.T) {
		t.Run("returns the content id", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/x/web-interface/view" {
					t.Errorf("expected path /x/web-interface/view, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("bvid"); got != "BV1xx411c7mD" {
					t.Errorf("expected bvid BV1xx411c7mD, got %s", got)
				}
				biliOK(w, biliView{CID: 987654})
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "", nil)
			cid, err := client.ResolveCID(ctx, "BV1xx411c7mD")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if cid != 987654 {
				t.Errorf("expected cid 987654, got %d", cid)
			}
		})

		t.Run("rejects an empty cid", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				biliOK(w, biliView{})
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "", nil)
			if _, err := client.ResolveCID(ctx, "BV1xx411c7mD"); !errors.Is(err, shared.ErrItemResolution) {
				t.Errorf("expected ErrItemResolution, got %v", err)
			}
		})

		t.Run("wraps envelope failure", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"code": -404, "message": "啥都木有"})
			}))
			defer server.Close()

			client := NewBiliClient(server.URL, "", nil)
			if _, err := client.ResolveCID(ctx, "BV1zz411c7mF"); !errors.Is(err, shared.ErrItemResolution) {
				t.Errorf("expected ErrItemResolution, got %v", err)
			}
		})
	})
}
