package reconcile

// ReconcileResult represents the reconciliation output for a single entity.
// It contains presence flags for each source and any detected mismatches.
type ReconcileResult struct {
	// ID is the unique identifier for the entity.
	ID string `json:"id"`

	// Name is the display name of the entity.
	Name string `json:"name"`

	// Present maps every source name to whether the entity exists there.
	Present map[string]bool `json:"present"`

	// Mismatch contains descriptions of field mismatches against the reference source.
	// Each string describes a specific mismatch, e.g., "title: file=\"Catan\" storage=\"Katan\"".
	Mismatch []string `json:"mismatch"`

	// Differs lists the sources whose item differs from the reference item.
	Differs []string `json:"differs,omitempty"`
}

// Missing returns the sources lacking the entity, in source order.
func (r ReconcileResult) Missing(sources []string) []string {
	var missing []string
	for _, name := range sources {
		if !r.Present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// Diff is a single field that differs between two items.
type Diff struct {
	Field string
	Left  string
	Right string
}

// ActionType represents the type of repair action.
type ActionType string

const (
	// ActionRepublish rewrites a source from the reference source.
	ActionRepublish ActionType = "republish"
)

// Action represents a planned repair operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Source is the source the action applies to.
	Source string `json:"source"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	// Reference is the source every other source is compared against.
	Reference string `json:"reference"`

	// Sources lists the compared sources in load order.
	Sources []string `json:"sources"`

	// Results contains per-entity reconciliation data, sorted by ID.
	Results []ReconcileResult `json:"results"`

	// Actions contains planned repair operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// InSync reports whether every source agrees with the reference.
func (p *ReconcilePlan) InSync() bool {
	return len(p.Actions) == 0
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the total number of unique entities.
	TotalItems int `json:"total_items"`

	// Missing counts entities absent from each source.
	Missing map[string]int `json:"missing"`

	// Mismatches counts entities with field discrepancies.
	Mismatches int `json:"mismatches"`
}
