package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"collection-prep/core/config"
	"collection-prep/core/logger"
	"collection-prep/feature/prepare"

	"github.com/spf13/cobra"
)

var (
	verifyJSON   bool
	verifyRepair bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare the local snapshot with published copies",
	Long: `Compares the local snapshot file with the copies published to object storage and
the database, game by game. With --repair, out of date copies are rewritten from the local file.`,
	Args: cobra.NoArgs,
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

		a, err := buildApp(cmd.Context(), cfg, logg)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.service.Verify(cmd.Context(), verifyRepair)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if verifyJSON || !isTerminal(out) {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		fmt.Fprintln(out, renderVerify(report))
		return nil
	},
}

func renderVerify(report *prepare.VerifyReport) string {
	rows := [][]string{{"Games", strconv.Itoa(report.Summary.TotalItems)}}
	for _, name := range report.Sources {
		rows = append(rows, []string{"Missing in " + name, strconv.Itoa(report.Summary.Missing[name])})
	}
	rows = append(rows, []string{"Mismatched", strconv.Itoa(report.Summary.Mismatches)})
	if len(report.Repaired) > 0 {
		rows = append(rows, []string{"Repaired", strings.Join(report.Repaired, ", ")})
	}
	out := renderTable([]string{"Check", "Count"}, rows, []columnAlignment{alignLeft, alignRight})

	var issues [][]string
	for _, r := range report.Results {
		missing := r.Missing(report.Sources)
		if len(missing) == 0 && len(r.Mismatch) == 0 {
			continue
		}
		issues = append(issues, []string{r.ID, r.Name, strings.Join(missing, ", "), strings.Join(r.Mismatch, "; ")})
	}
	if len(issues) > 0 {
		out += "\n" + renderTable([]string{"ID", "Title", "Missing In", "Mismatch"}, issues, nil)
	}
	return out
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "Print the verification plan as JSON")
	verifyCmd.Flags().BoolVar(&verifyRepair, "repair", false, "Rewrite out of date copies from the local snapshot")
	RootCmd.AddCommand(verifyCmd)
}
