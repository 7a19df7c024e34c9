package planner

// SyncPlan represents the archive operations needed to save an import list.
type SyncPlan struct {
	// Operations is the ordered list of operations to execute
	Operations []Operation

	// Skipped lists entries that needed an operation the plan could not
	// express (for example a remove with no archived name)
	Skipped []Skip
}

// Operation represents a single archive operation to execute.
type Operation struct {
	// Type is the operation type: "remove", "rename", "add"
	Type string `json:"type"`

	// Source is the archive name to remove or rename, or the disk path to add
	Source string `json:"source"`

	// Target is the archive name to rename or add to (empty for remove)
	Target string `json:"target,omitempty"`

	// Entry is the index of the list entry this operation came from
	Entry int `json:"entry"`
}

// Skip records an entry the planner left alone.
type Skip struct {
	Entry  int    `json:"entry"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Operation type constants
const (
	OpRemove = "remove"
	OpRename = "rename"
	OpAdd    = "add"
)

// NewSyncPlan creates a new empty SyncPlan.
func NewSyncPlan() *SyncPlan {
	return &SyncPlan{
		Operations: []Operation{},
		Skipped:    []Skip{},
	}
}

// AddOperation adds an operation to the plan.
func (p *SyncPlan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// AddSkip records an entry the plan does not touch.
func (p *SyncPlan) AddSkip(skip Skip) {
	p.Skipped = append(p.Skipped, skip)
}

// IsEmpty returns true if the plan has no operations.
func (p *SyncPlan) IsEmpty() bool {
	return len(p.Operations) == 0
}

// Count returns the number of operations of the given type.
func (p *SyncPlan) Count(opType string) int {
	n := 0
	for _, op := range p.Operations {
		if op.Type == opType {
			n++
		}
	}
	return n
}
