package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"collection-prep/core/config"
	"collection-prep/core/logger"
	"collection-prep/feature/prepare"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var prepareJSON bool

// prepareCmd represents the prepare command
var prepareCmd = &cobra.Command{
	Use:   "prepare [username]",
	Short: "Fetch and normalize a user's collection",
	Long: `Downloads the collection of the given user (or BGG_USERNAME) from the catalog,
resolves every owned or wanted game and writes the snapshot to the data directory.
Raw responses are archived so the run can be replayed offline.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := ""
		if len(args) == 1 {
			username = args[0]
		}
		return runPrepare(cmd, func(svc *prepare.Service) (*prepare.Report, error) {
			return svc.Prepare(cmd.Context(), username)
		})
	},
}

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Normalize archived responses without network access",
	Long:  `Rebuilds the snapshot from the responses archived by the last prepare run.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrepare(cmd, func(svc *prepare.Service) (*prepare.Report, error) {
			return svc.Replay(cmd.Context(), "")
		})
	},
}

func runPrepare(cmd *cobra.Command, run func(*prepare.Service) (*prepare.Report, error)) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	a, err := buildApp(cmd.Context(), cfg, logg)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := run(a.service)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if prepareJSON || !isTerminal(out) {
		return writeReportJSON(out, report)
	}
	fmt.Fprintln(out, renderReport(report))
	logg.Debug("Report printed", zap.String("run_id", report.RunID))
	return nil
}

func writeReportJSON(w io.Writer, report *prepare.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func renderReport(report *prepare.Report) string {
	summary := renderTable(
		[]string{"Field", "Value"},
		[][]string{
			{"Run", report.RunID},
			{"Mode", report.Mode},
			{"Username", report.Username},
			{"Kept", strconv.Itoa(report.Counters.Kept)},
			{"Skipped (not owned)", strconv.Itoa(report.Counters.SkippedNotOwned)},
			{"Skipped (fetch failed)", strconv.Itoa(report.Counters.SkippedFetchFailed)},
			{"Games", strconv.Itoa(report.Games)},
			{"Entities", strconv.Itoa(report.Entities)},
			{"Relationships", strconv.Itoa(report.Relationships)},
			{"Sinks", fmt.Sprint(report.Sinks)},
			{"Duration", (time.Duration(report.DurationMs) * time.Millisecond).String()},
		},
		[]columnAlignment{alignLeft, alignRight},
	)
	if len(report.Skipped) == 0 {
		return summary
	}

	rows := make([][]string, 0, len(report.Skipped))
	for _, s := range report.Skipped {
		rows = append(rows, []string{s.ExternalID, s.Title, s.Reason, s.Error})
	}
	return summary + "\n" + renderTable([]string{"ID", "Title", "Reason", "Error"}, rows, nil)
}

func init() {
	prepareCmd.Flags().BoolVar(&prepareJSON, "json", false, "Print the run report as JSON")
	replayCmd.Flags().BoolVar(&prepareJSON, "json", false, "Print the run report as JSON")
	RootCmd.AddCommand(prepareCmd)
	RootCmd.AddCommand(replayCmd)
}
