package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCookie(t *testing.T) {
	tt := []struct {
		name       string
		curlCmd    string
		wantCookie string
		wantErr    bool
	}{
		{
			name:       "cookie header with single quotes",
			curlCmd:    `curl 'https://api.bilibili.com/x/v3/fav/folder/info' -H 'Cookie: SESSDATA=abc123; bili_jct=def'`,
			wantCookie: "SESSDATA=abc123; bili_jct=def",
		},
		{
			name:       "cookie header with double quotes",
			curlCmd:    `curl "https://api.bilibili.com" -H "Cookie: SESSDATA=abc123"`,
			wantCookie: "SESSDATA=abc123",
		},
		{
			name:       "cookie header name is case-insensitive",
			curlCmd:    `curl -H 'cookie: SESSDATA=abc123' https://api.bilibili.com`,
			wantCookie: "SESSDATA=abc123",
		},
		{
			name:       "cookie in -b flag",
			curlCmd:    `curl -b 'SESSDATA=abc123' https://api.bilibili.com`,
			wantCookie: "SESSDATA=abc123",
		},
		{
			name:       "-b flag wins over header",
			curlCmd:    `curl -H 'Cookie: SESSDATA=old' -b 'SESSDATA=new' https://api.bilibili.com`,
			wantCookie: "SESSDATA=new",
		},
		{
			name: "multiline command with backslash continuations",
			curlCmd: `curl 'https://api.bilibili.com' \
  -H 'Accept: application/json' \
  -H 'Cookie: SESSDATA=abc123'`,
			wantCookie: "SESSDATA=abc123",
		},
		{
			name:       "other headers are ignored",
			curlCmd:    `curl -H 'User-Agent: Mozilla' -H 'Cookie: SESSDATA=abc' -H 'Referer: https://www.bilibili.com'`,
			wantCookie: "SESSDATA=abc",
		},
		{
			name:    "no cookie is an error",
			curlCmd: `curl -H 'Accept: application/json' https://api.bilibili.com`,
			wantErr: true,
		},
		{
			name:    "empty input is an error",
			curlCmd: ``,
			wantErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cookie, err := ParseCurlCookie([]byte(tc.curlCmd))
			if tc.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if cookie != tc.wantCookie {
				t.Errorf("expected cookie %q, got %q", tc.wantCookie, cookie)
			}
		})
	}
}

func TestParseCurlFile(t *testing.T) {
	t.Run("reads a cURL command from a file", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "bili.sh")
		os.WriteFile(path, []byte(`curl -H 'Cookie: SESSDATA=fromfile' https://api.bilibili.com`), 0644)

		cookie, err := ParseCurlFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cookie != "SESSDATA=fromfile" {
			t.Errorf("unexpected cookie: %q", cookie)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		if _, err := ParseCurlFile("/nonexistent/bili.sh"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestLoadCookieFile(t *testing.T) {
	t.Run("trims the stored cookie", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "cookie.txt")
		os.WriteFile(path, []byte("SESSDATA=abc123\n"), 0600)

		if got := LoadCookieFile(path); got != "SESSDATA=abc123" {
			t.Errorf("unexpected cookie: %q", got)
		}
	})

	t.Run("empty path yields empty cookie", func(t *testing.T) {
		if got := LoadCookieFile(""); got != "" {
			t.Errorf("expected empty cookie, got %q", got)
		}
	})

	t.Run("missing file yields empty cookie", func(t *testing.T) {
		if got := LoadCookieFile("/nonexistent/cookie.txt"); got != "" {
			t.Errorf("expected empty cookie, got %q", got)
		}
	})
}
