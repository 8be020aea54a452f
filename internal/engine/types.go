package engine

import (
	"encoding/json"
	"fmt"
)

// TaskID identifies a task. Ids are assigned from a monotonic counter starting at 1.
type TaskID int

// NoTask is the zero TaskID, used where a reference is absent (e.g. a root's parent)
const NoTask TaskID = 0

// Status is the persisted completion status of a task
type Status int

const (
	// StatusPending indicates the task is not finished
	StatusPending Status = iota
	// StatusDone indicates the task is finished
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	default:
		return "pending"
	}
}

// MarshalJSON encodes the status as its name
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status name
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "pending", "":
		*s = StatusPending
	case "done":
		*s = StatusDone
	default:
		return fmt.Errorf("unknown status %q", name)
	}
	return nil
}

// Priority is orthogonal to status and carries no invariant
type Priority int

const (
	// PriorityNormal is the default priority
	PriorityNormal Priority = iota
	// PriorityMedium is the middle priority
	PriorityMedium
	// PriorityHigh is the highest priority
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "normal"
	}
}

// Next returns the following priority in the normal → medium → high → normal cycle
func (p Priority) Next() Priority {
	switch p {
	case PriorityNormal:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityNormal
	}
}

// ParsePriority converts a priority name into a Priority
func ParsePriority(name string) (Priority, error) {
	switch name {
	case "normal":
		return PriorityNormal, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityNormal, fmt.Errorf("unknown priority %q (want normal, medium or high)", name)
	}
}

// MarshalJSON encodes the priority as its name
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a priority name
func (p *Priority) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if name == "" {
		*p = PriorityNormal
		return nil
	}
	parsed, err := ParsePriority(name)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// WorkState is the derived state of the work-status machine
type WorkState int

const (
	// WorkIdle is pending and not being worked on
	WorkIdle WorkState = iota
	// WorkWorking is pending and currently being worked on
	WorkWorking
	// WorkDone is finished
	WorkDone
)

func (w WorkState) String() string {
	switch w {
	case WorkWorking:
		return "working"
	case WorkDone:
		return "done"
	default:
		return "idle"
	}
}

// Position is a layout hint for the task's node. The engine stores it but never interprets it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Task is the sole entity of the graph
type Task struct {
	ID               TaskID   `json:"id"`
	Title            string   `json:"title"`
	MainParent       TaskID   `json:"mainParent,omitempty"`
	Children         []TaskID `json:"children"`
	OtherParents     []TaskID `json:"otherParents"`
	Dependencies     []TaskID `json:"dependencies"`
	Status           Status   `json:"status"`
	CurrentlyWorking bool     `json:"currentlyWorking,omitempty"`
	Priority         Priority `json:"priority"`
	Hidden           bool     `json:"hidden,omitempty"`
	Position         Position `json:"position"`
}

// IsRoot reports whether the task has no main parent
func (t Task) IsRoot() bool {
	return t.MainParent == NoTask
}

// WorkState returns the task's position in the work-status machine
func (t Task) WorkState() WorkState {
	switch {
	case t.Status == StatusDone:
		return WorkDone
	case t.CurrentlyWorking:
		return WorkWorking
	default:
		return WorkIdle
	}
}

// clone returns a deep copy of the task
func (t *Task) clone() Task {
	c := *t
	c.Children = cloneIDs(t.Children)
	c.OtherParents = cloneIDs(t.OtherParents)
	c.Dependencies = cloneIDs(t.Dependencies)
	return c
}

// CreateOptions contains options for creating a task
type CreateOptions struct {
	Parent   TaskID // NoTask creates a new root
	Title    string
	Position Position
}

// LinkType discriminates the relationship a Link refers to
type LinkType string

const (
	// LinkTree is a main-parent or other-parent edge
	LinkTree LinkType = "tree"
	// LinkDependency is a dependency edge
	LinkDependency LinkType = "dependency"
)

// Link describes a single relationship edge to delete.
// For LinkTree, From is the child and To the parent. For LinkDependency, From
// is the dependent and To the prerequisite.
type Link struct {
	Type LinkType
	From TaskID
	To   TaskID
}

// DependencyChange reports what a toggling AddDependency did
type DependencyChange int

const (
	// DependencyAdded indicates a new edge was created
	DependencyAdded DependencyChange = iota
	// DependencyRemoved indicates an existing edge was toggled off
	DependencyRemoved
)

// StatusChange describes one transition of the work-status machine
type StatusChange struct {
	Task     TaskID
	From     WorkState
	To       WorkState
	Demoted  []TaskID // tasks that stopped working as a side effect
	Promoted TaskID   // parent auto-promoted to working, NoTask if none
}

// RepairResult reports what RepairWorkingTasks changed
type RepairResult struct {
	Demoted       []TaskID
	Registry      map[TaskID]TaskID // root -> working task after repair
	RegistryFixed bool              // the registry disagreed with the task flags
}

// Changed reports whether the repair modified anything
func (r RepairResult) Changed() bool {
	return len(r.Demoted) > 0 || r.RegistryFixed
}
