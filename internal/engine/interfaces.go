package engine

import (
	"iter"
)

// TaskReader provides read-only access to the task graph.
// Lookups on a missing id return an explicit not-found value and never fail.
type TaskReader interface {
	FindByID(id TaskID) (Task, bool)
	AllTasks() []Task
	Roots() []TaskID
	GetChildren(id TaskID) []TaskID
	GetDescendants(id TaskID) []TaskID
	GetAncestors(id TaskID) []TaskID
	GetRootTask(id TaskID) (Task, bool)
	GetSubtreeSize(id TaskID) int
	GetDependents(id TaskID) []TaskID
	TasksDepthFirst(start TaskID) iter.Seq2[Task, int]

	// Working registry
	WorkingRegistry() map[TaskID]TaskID
	WorkingTaskFor(root TaskID) (TaskID, bool)
}

// TaskWriter provides creation, destruction and field edits
type TaskWriter interface {
	CreateTask(opts CreateOptions) (Task, error)
	DeleteSubtree(id TaskID) ([]TaskID, error)
	DeleteMultiple(ids []TaskID) []TaskID

	SetTitle(id TaskID, title string) error
	SetPosition(id TaskID, pos Position) error
	SetHidden(id TaskID, hidden bool) error
	SetPriority(id TaskID, p Priority) error
	CyclePriority(id TaskID) (Priority, error)
}

// RelationshipEditor mutates the tree edges and the dependency graph
type RelationshipEditor interface {
	ValidateReparent(taskID, newParentID TaskID) error
	Reparent(taskID, newParentID TaskID) error
	Detach(taskID TaskID) error
	AddOtherParent(taskID, parentID TaskID) error
	RemoveOtherParent(taskID, parentID TaskID) error

	ValidateDependency(dependentID, prerequisiteID TaskID) error
	AddDependency(dependentID, prerequisiteID TaskID) (DependencyChange, error)
	RemoveDependency(fromID, toID TaskID) error

	DeleteRelationshipLink(link Link) error
}

// StatusMachine drives the pending → working → done lifecycle
type StatusMachine interface {
	CycleStatus(id TaskID) (StatusChange, error)
	ToggleDone(id TaskID) (StatusChange, error)
	ToggleWorking(id TaskID) (StatusChange, error)
	RepairWorkingTasks() RepairResult
}

// Snapshotter exposes the serialized shape of the graph
type Snapshotter interface {
	Snapshot() ([]byte, error)
	Restore(data []byte) error
}

// Persister loads and exports the whole graph
type Persister interface {
	State() GraphState
	Load(state GraphState) (RepairResult, error)
}

// Engine is the core interface for task graph management.
// It composes TaskReader, TaskWriter, RelationshipEditor, StatusMachine,
// Snapshotter and Persister.
// Thread-safe: All methods are safe for concurrent use
type Engine interface {
	TaskReader
	TaskWriter
	RelationshipEditor
	StatusMachine
	Snapshotter
	Persister
}
