package cmd

import (
	"fmt"
	"path/filepath"

	"collection-prep/core/config"
	"collection-prep/core/logger"
	"collection-prep/core/storage"
	"collection-prep/feature/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Publish a snapshot file to object storage",
	Long:  `Uploads an existing snapshot file (default: the pipeline output file) to the configured bucket.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		path := cfg.Pipeline.OutputPath()
		if len(args) == 1 {
			path = filepath.Clean(args[0])
		}

		ds, err := snapshot.ReadFile(path)
		if err != nil {
			return err
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		run := snapshot.NewRun(cfg.BGG.Username, ds)
		sink := snapshot.NewStorageSink(client, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.ObjectKey, logg)
		if err := snapshot.Publish(cmd.Context(), logg, run, sink); err != nil {
			return err
		}

		logg.Info("Snapshot uploaded",
			zap.String("file", path),
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("key", cfg.Storage.ObjectKey),
			zap.Int("games", len(ds.GameData)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(uploadCmd)
}
