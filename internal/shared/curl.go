// Utilities for extracting a Bilibili session cookie from a cURL command.
//
// Users copy a request from the browser dev tools ("Copy as cURL") while
// logged in to bilibili.com; the cookie is needed to read private favorites
// folders.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	headerFlagRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	cookieFlagRegex = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlFile reads a file containing a cURL command and extracts the cookie.
func ParseCurlFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCookie(content)
}

// ParseCurlCookie parses a cURL command and returns its Cookie value.
//
// Supports both `-H 'Cookie: ...'` and `-b '...'` forms; the -b flag wins
// when both are present.
func ParseCurlCookie(data []byte) (string, error) {
	curlCmd := strings.ReplaceAll(string(data), "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	var cookie string

	for _, match := range headerFlagRegex.FindAllStringSubmatch(curlCmd, -1) {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "cookie") {
			cookie = strings.TrimSpace(parts[1])
		}
	}

	if match := cookieFlagRegex.FindStringSubmatch(curlCmd); len(match) > 1 {
		if match[1] != "" {
			cookie = match[1]
		} else if match[2] != "" {
			cookie = match[2]
		}
	}

	if cookie == "" {
		return "", fmt.Errorf("%w: no cookie found in cURL command", ErrInvalidInput)
	}

	return cookie, nil
}

// LoadCookieFile reads a previously saved cookie file, returning an empty
// string when the path is empty or the file does not exist.
func LoadCookieFile(path string) string {
	if path == "" {
		return ""
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(content))
}
