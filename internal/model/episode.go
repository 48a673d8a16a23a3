package model

// Episode is a podcast episode found on the local file system, ready to be
// uploaded to the hosting provider.
type Episode struct {
	// Date is the canonical YYYY-MM-DD date extracted from the folder name.
	Date string
	// FolderName is the episode directory name (YYYYMMDD_episode_name).
	FolderName string
	// AudioPath is the absolute path to the audio file inside FINAL/.
	AudioPath string
	// AudioFile is the bare file name of the audio file.
	AudioFile string
	// NeedsConversion is set when only a WAV master was found; the episode
	// must be converted to MP3 before upload.
	NeedsConversion bool
}
