// package formatter exports mix results to shareable formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jii-iin/weathermix/internal/tasks"
)

// ExportToCSV converts a MixResult's tracks to CSV with columns: ID, Name, Artists, Link, URI
func ExportToCSV(result *tasks.MixResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artists", "Link", "URI"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range result.Tracks {
		record := []string{
			track.ID,
			track.Name,
			track.ArtistLine(),
			track.ExternalURL,
			track.URI,
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

// ExportToMarkdown converts a MixResult to Markdown. Art maps track IDs to
// local image filenames written alongside the document (may be nil).
func ExportToMarkdown(result *tasks.MixResult, art map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Weather Mix - %s\n\n", result.Weather.City))
	buf.WriteString(fmt.Sprintf("**Weather**: %s (%.1f°C)\n", result.Weather.Description, result.Weather.TempC))
	buf.WriteString(fmt.Sprintf("**Mood**: %s\n", result.Mood))
	buf.WriteString(fmt.Sprintf("**Query**: `%s`\n\n", result.Query))

	if result.Playlist != nil {
		buf.WriteString(fmt.Sprintf("**Playlist**: [%s](%s)\n\n", result.Playlist.Name, result.Playlist.WebURL))
	}

	buf.WriteString("## Tracks\n\n")
	for i, track := range result.Tracks {
		buf.WriteString(fmt.Sprintf("%d. [%s](%s) - %s\n", i+1, track.Name, track.ExternalURL, track.ArtistLine()))
		if filename, ok := art[track.ID]; ok {
			buf.WriteString(fmt.Sprintf("   ![%s](%s)\n", track.Name, filename))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a MixResult to plain text.
func ExportToText(result *tasks.MixResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Weather Mix - %s\n", result.Weather.City))
	buf.WriteString(fmt.Sprintf("Weather: %s (%.1f°C)\n", result.Weather.Description, result.Weather.TempC))
	buf.WriteString(fmt.Sprintf("Mood: %s\n\n", result.Mood))

	for i, track := range result.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.ArtistLine(), track.Name))
		if track.ExternalURL != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", track.ExternalURL))
		}
	}

	if result.Playlist != nil {
		buf.WriteString(fmt.Sprintf("\nPlaylist: %s\n%s\n", result.Playlist.Name, result.Playlist.WebURL))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports a mix to Markdown in a dedicated directory.
//
// Directory name defaults to the mix ID. When withArt is true, album art for
// each track is downloaded into {dir}/art/ and linked from the document.
// Creates {dir}/README.md and {dir}/tracks.csv.
func WriteMarkdownExport(result *tasks.MixResult, outputDir string, withArt bool) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = result.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	out := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var art map[string]string
	if withArt {
		downloaded, err := DownloadArt(result, filepath.Join(outputDir, "art"), DefaultArtOpts())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download album art: %v\n", err)
		} else {
			art = make(map[string]string, len(downloaded))
			for id, path := range downloaded {
				rel, relErr := filepath.Rel(outputDir, path)
				if relErr != nil {
					rel = path
				}
				art[id] = rel
				out.Files = append(out.Files, path)
			}
		}
	}

	mdData, err := ExportToMarkdown(result, art)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}
	out.Files = append(out.Files, mdFile)

	csvData, err := ExportToCSV(result)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	csvFile := filepath.Join(outputDir, "tracks.csv")
	if err := os.WriteFile(csvFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	out.Files = append(out.Files, csvFile)

	return out, nil
}

// WriteTextExport exports a mix to plain text.
//
// Defaults to {mix.ID}_tracks.txt as the filename.
func WriteTextExport(result *tasks.MixResult, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s_tracks.txt", result.ID)
	}

	textData, err := ExportToText(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// safeFilename builds an image filename from a track ID.
func safeFilename(id string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, id)
	return cleaned + ".jpg"
}
