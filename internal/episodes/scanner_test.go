package episodes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEpisode(t *testing.T, root, folder, audioFile string) {
	t.Helper()
	final := filepath.Join(root, folder, "FINAL")
	require.NoError(t, os.MkdirAll(final, 0o755))
	if audioFile != "" {
		require.NoError(t, os.WriteFile(filepath.Join(final, audioFile), []byte("audio"), 0o644))
	}
}

func TestDateFromFolderName(t *testing.T) {
	assert.Equal(t, "2025-01-05", DateFromFolderName("20250105_svetlo_sveta"))
	assert.Equal(t, "", DateFromFolderName("svetlo_sveta"))
	assert.Equal(t, "", DateFromFolderName("2025-01-05_svetlo"))
}

func TestScanFindsReadyEpisodes(t *testing.T) {
	root := t.TempDir()
	writeEpisode(t, root, "20250110_druhy", "episode.mp3")
	writeEpisode(t, root, "20250105_prvy", "episode.m4a")

	eps, err := Scan(root, Options{})
	require.NoError(t, err)
	require.Len(t, eps, 2)

	// Ascending date order.
	assert.Equal(t, "2025-01-05", eps[0].Date)
	assert.Equal(t, "2025-01-10", eps[1].Date)
	assert.Equal(t, "episode.m4a", eps[0].AudioFile)
	assert.False(t, eps[0].NeedsConversion)
}

func TestScanFlagsWavForConversion(t *testing.T) {
	root := t.TempDir()
	writeEpisode(t, root, "20250105_wav_only", "master.wav")

	eps, err := Scan(root, Options{})
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.True(t, eps[0].NeedsConversion)
	assert.Equal(t, "master.wav", eps[0].AudioFile)
}

func TestScanPrefersMP3OverWav(t *testing.T) {
	root := t.TempDir()
	final := filepath.Join(root, "20250105_both", "FINAL")
	require.NoError(t, os.MkdirAll(final, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(final, "master.wav"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(final, "final.mp3"), []byte("a"), 0o644))

	eps, err := Scan(root, Options{})
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, "final.mp3", eps[0].AudioFile)
	assert.False(t, eps[0].NeedsConversion)
}

func TestScanSkipsIncompleteFolders(t *testing.T) {
	root := t.TempDir()
	// No FINAL directory at all.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "20250101_no_final"), 0o755))
	// FINAL with no audio.
	writeEpisode(t, root, "20250102_empty_final", "")
	// No date prefix.
	writeEpisode(t, root, "not_dated", "episode.mp3")
	// Hidden folder.
	writeEpisode(t, root, ".hidden", "episode.mp3")
	// Plain file at the top level.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	eps, err := Scan(root, Options{})
	require.NoError(t, err)
	assert.Empty(t, eps)
}

func TestScanDateRangeFilter(t *testing.T) {
	root := t.TempDir()
	writeEpisode(t, root, "20250101_a", "a.mp3")
	writeEpisode(t, root, "20250115_b", "b.mp3")
	writeEpisode(t, root, "20250201_c", "c.mp3")

	eps, err := Scan(root, Options{StartDate: "2025-01-10", EndDate: "2025-01-31"})
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, "2025-01-15", eps[0].Date)
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}
