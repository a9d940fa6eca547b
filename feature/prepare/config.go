package prepare

import "path/filepath"

// Config holds the pipeline section.
type Config struct {
	// Concurrency is the number of detail records fetched in parallel.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// DataDir receives archived responses and the snapshot file.
	DataDir string `mapstructure:"data_dir" default:"./data"`
	// ArchiveRaw keeps every raw response below DataDir for replays.
	ArchiveRaw bool `mapstructure:"archive_raw" default:"true"`
	// OutputFile is the snapshot file name inside DataDir.
	OutputFile string `mapstructure:"output_file" default:"collectionData.json"`
	// LockFile is the run lock file name inside DataDir.
	LockFile string `mapstructure:"lock_file" default:".prepare.lock"`
}

// RawCollectionPath is where the raw collection response is archived.
func (c Config) RawCollectionPath() string {
	return filepath.Join(c.DataDir, "rawResponse.xml")
}

// OutputPath is where the snapshot file is written.
func (c Config) OutputPath() string {
	return filepath.Join(c.DataDir, c.OutputFile)
}

// LockPath is the run lock location.
func (c Config) LockPath() string {
	return filepath.Join(c.DataDir, c.LockFile)
}
