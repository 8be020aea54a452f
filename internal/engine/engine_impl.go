package engine

import (
	"sync"
)

// engineImpl is the in-memory implementation of the Engine interface
type engineImpl struct {
	tasks    []*Task           // collection in creation order
	index    map[TaskID]*Task  // id -> task
	working  map[TaskID]TaskID // root -> working task
	nextID   TaskID
	onChange func()
	mu       sync.RWMutex
}

// Options configures a new engine
type Options struct {
	// OnChange is invoked after every successful mutation, outside the engine lock.
	// It is the persist-now hook.
	OnChange func()
}

// NewEngine creates an empty engine
func NewEngine(opts Options) Engine {
	return &engineImpl{
		index:    make(map[TaskID]*Task),
		working:  make(map[TaskID]TaskID),
		nextID:   1,
		onChange: opts.OnChange,
	}
}

// SetOnChange replaces the change hook. Engines returned by NewEngine implement it.
func SetOnChange(e Engine, fn func()) {
	if impl, ok := e.(*engineImpl); ok {
		impl.mu.Lock()
		impl.onChange = fn
		impl.mu.Unlock()
	}
}

// notify fires the change hook. Callers must not hold the lock.
func (e *engineImpl) notify() {
	e.mu.RLock()
	fn := e.onChange
	e.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
