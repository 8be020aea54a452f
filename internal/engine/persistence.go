package engine

// GraphState is the serialized shape of the whole graph: the task collection,
// the working registry and the id counter
type GraphState struct {
	NextID  TaskID         `json:"nextId"`
	Tasks   []Task         `json:"tasks"`
	Working []WorkingEntry `json:"working"`
}

// WorkingEntry is one registry row. The registry is stored as a sorted list so the
// encoding is stable.
type WorkingEntry struct {
	Root TaskID `json:"root"`
	Task TaskID `json:"task"`
}

// Registry converts the working entries back into a root -> task map
func (s GraphState) Registry() map[TaskID]TaskID {
	registry := make(map[TaskID]TaskID, len(s.Working))
	for _, w := range s.Working {
		registry[w.Root] = w.Task
	}
	return registry
}
