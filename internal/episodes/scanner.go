// Package episodes scans the shared episodes directory for podcast episodes
// that are ready to upload.
//
// An episode lives in a folder named YYYYMMDD_episode_name containing a
// FINAL/ subdirectory with the mastered audio. MP3 and M4A files upload
// as-is; a folder holding only a WAV master is flagged as needing
// conversion first.
package episodes

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/model"
)

// finalDir is the subdirectory holding the mastered audio.
const finalDir = "FINAL"

var folderDatePattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})_`)

// DateFromFolderName extracts the canonical date from a YYYYMMDD_name
// folder name; empty when the name does not match.
func DateFromFolderName(name string) string {
	m := folderDatePattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
}

// Options filters a scan to a date range (canonical dates, inclusive).
type Options struct {
	StartDate string
	EndDate   string
}

// Scan walks the episodes directory and returns uploadable episodes in
// ascending date order. Folders without a FINAL/ audio file or a parseable
// date are skipped with a log line.
func Scan(dir string, opts Options) ([]model.Episode, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read episodes directory %s: %w", dir, err)
	}

	var found []model.Episode
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		date := DateFromFolderName(entry.Name())
		if date == "" {
			log.Printf("Skipping %s: no date in folder name", entry.Name())
			continue
		}
		if opts.StartDate != "" && date < opts.StartDate {
			continue
		}
		if opts.EndDate != "" && date > opts.EndDate {
			continue
		}

		finalPath := filepath.Join(dir, entry.Name(), finalDir)
		audioFile, needsConversion, ok := findAudio(finalPath)
		if !ok {
			log.Printf("Skipping %s: no audio file in %s/", entry.Name(), finalDir)
			continue
		}

		found = append(found, model.Episode{
			Date:            date,
			FolderName:      entry.Name(),
			AudioPath:       filepath.Join(finalPath, audioFile),
			AudioFile:       audioFile,
			NeedsConversion: needsConversion,
		})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Date < found[j].Date })
	return found, nil
}

// findAudio picks the audio file inside a FINAL directory. MP3/M4A wins;
// a lone WAV is returned with the conversion flag set.
func findAudio(finalPath string) (name string, needsConversion, ok bool) {
	entries, err := os.ReadDir(finalPath)
	if err != nil {
		return "", false, false
	}

	var wav string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".mp3", ".m4a":
			return entry.Name(), false, true
		case ".wav":
			if wav == "" {
				wav = entry.Name()
			}
		}
	}

	if wav != "" {
		return wav, true, true
	}
	return "", false, false
}
