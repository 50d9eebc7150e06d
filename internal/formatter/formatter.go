// package formatter provides functions to export playlists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/nbmusic/nbx/internal/models"
	"github.com/nbmusic/nbx/internal/shared"
)

// ExportToCSV converts a playlist to CSV format with columns: Title, Artist, BVID, CID, Duration, Lyric
func ExportToCSV(pl *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Artist", "BVID", "CID", "Duration", "Lyric"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range pl.Songs {
		record := []string{
			song.Title,
			song.Artist,
			song.BVID,
			strconv.FormatInt(song.CID, 10),
			strconv.Itoa(song.Duration),
			song.Lyric,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown format
func ExportToMarkdown(pl *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", pl.Name))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(pl.Songs)))

	buf.WriteString("## Songs\n\n")
	for i, song := range pl.Songs {
		duration := shared.FormatDuration(song.Duration)
		buf.WriteString(fmt.Sprintf("%d. [%s - %s](%s) [%s]\n", i+1, song.Artist, song.Title, song.VideoURL(), duration))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format
func ExportToText(pl *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", pl.Name))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(pl.Songs)))

	for i, song := range pl.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Title))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a playlist to indented JSON, the same shape as the
// persisted document entry.
func ExportToJSON(pl *models.Playlist) ([]byte, error) {
	data, err := json.MarshalIndent(pl, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal playlist: %w", err)
	}
	return data, nil
}

// Export renders a playlist in the named format: csv, markdown, txt, or json.
func Export(pl *models.Playlist, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(pl)
	case "markdown", "md":
		return ExportToMarkdown(pl)
	case "txt", "text":
		return ExportToText(pl)
	case "json":
		return ExportToJSON(pl)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport renders a playlist and writes it to path.
func WriteExport(pl *models.Playlist, format, path string) error {
	data, err := Export(pl, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
