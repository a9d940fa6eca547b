package prepare

import (
	"time"

	"collection-prep/feature/collection"
)

// Run modes.
const (
	ModeLive   = "live"
	ModeReplay = "replay"
)

// SkippedItem describes an item dropped after its detail fetch failed twice.
type SkippedItem struct {
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
	Reason     string `json:"reason"`
	Error      string `json:"error,omitempty"`
}

// Report summarizes a finished run.
type Report struct {
	RunID         string              `json:"run_id"`
	Username      string              `json:"username"`
	Mode          string              `json:"mode"`
	Counters      collection.Counters `json:"counters"`
	Games         int                 `json:"games"`
	Entities      int                 `json:"entities"`
	Relationships int                 `json:"relationships"`
	Skipped       []SkippedItem       `json:"skipped"`
	Sinks         []string            `json:"sinks"`
	StartedAt     time.Time           `json:"started_at"`
	DurationMs    int64               `json:"duration_ms"`
}

func newReport(runID, username, mode string, started time.Time, result *collection.Result, sinks []string) *Report {
	skipped := make([]SkippedItem, 0, len(result.Skipped))
	for _, s := range result.Skipped {
		item := SkippedItem{ExternalID: s.ExternalID, Title: s.Title, Reason: string(s.Reason)}
		if s.Err != nil {
			item.Error = s.Err.Error()
		}
		skipped = append(skipped, item)
	}
	return &Report{
		RunID:         runID,
		Username:      username,
		Mode:          mode,
		Counters:      result.Counters,
		Games:         len(result.Games),
		Entities:      len(result.Entities),
		Relationships: len(result.Relationships),
		Skipped:       skipped,
		Sinks:         sinks,
		StartedAt:     started,
		DurationMs:    time.Since(started).Milliseconds(),
	}
}
