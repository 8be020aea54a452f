package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
	"taskmap.dev/taskmap/internal/history"
)

const (
	// DefaultDebounce is how long the saver waits for further requests before writing
	DefaultDebounce = 300 * time.Millisecond
	// DefaultTrimKeep is how many undo entries survive when the document has to shrink
	DefaultTrimKeep = 10
)

// GraphSource supplies the graph state to persist
type GraphSource interface {
	State() engine.GraphState
}

// HistorySource supplies the history stacks and can shrink them
type HistorySource interface {
	Export() history.Stacks
	TrimTo(n int)
}

// SaverOptions configures a Saver
type SaverOptions struct {
	Debounce time.Duration
	TrimKeep int
	// OnError receives failures from background saves
	OnError func(err error)
	// OnTrim is called after history was trimmed to make the document fit
	OnTrim func(keep int)
	Now    func() time.Time
}

// Saver writes the document some time after the latest Request.
// Every Request cancels the pending timer and starts a new one, so only the most
// recent state is ever written.
type Saver struct {
	store    Store
	graph    GraphSource
	history  HistorySource
	debounce time.Duration
	trimKeep int
	onError  func(error)
	onTrim   func(int)
	now      func() time.Time

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	lastErr error

	writeMu sync.Mutex
}

// NewSaver creates a saver. history may be nil.
func NewSaver(store Store, graph GraphSource, hist HistorySource, opts SaverOptions) *Saver {
	s := &Saver{
		store:    store,
		graph:    graph,
		history:  hist,
		debounce: opts.Debounce,
		trimKeep: opts.TrimKeep,
		onError:  opts.OnError,
		onTrim:   opts.OnTrim,
		now:      opts.Now,
	}
	if s.debounce <= 0 {
		s.debounce = DefaultDebounce
	}
	if s.trimKeep <= 0 {
		s.trimKeep = DefaultTrimKeep
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Request schedules a save after the debounce interval
func (s *Saver) Request() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.fire)
}

// Pending reports whether a requested save has not been written yet
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Saver) fire() {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.timer = nil
	s.mu.Unlock()

	if err := s.Save(); err != nil {
		s.mu.Lock()
		// Leave the save pending so Flush retries and reports it
		s.pending = true
		s.lastErr = err
		s.mu.Unlock()
		if s.onError != nil {
			s.onError(err)
		}
	}
}

// Flush cancels the timer and writes any pending save now
func (s *Saver) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	pending := s.pending
	s.pending = false
	s.mu.Unlock()

	if !pending {
		return nil
	}
	if err := s.Save(); err != nil {
		s.mu.Lock()
		s.pending = true
		s.lastErr = err
		s.mu.Unlock()
		return err
	}
	return nil
}

// LastError returns the most recent save failure, if any
func (s *Saver) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Save writes the current state immediately. When the document exceeds the store's
// quota, history is trimmed to the configured number of entries and the write is
// retried once. A second failure is returned and the live graph is left untouched.
func (s *Saver) Save() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.store.Save(s.document())
	if errors.Is(err, tmerrors.ErrStorageExceeded) && s.history != nil {
		s.history.TrimTo(s.trimKeep)
		if s.onTrim != nil {
			s.onTrim(s.trimKeep)
		}
		err = s.store.Save(s.document())
	}
	if err != nil {
		return fmt.Errorf("failed to save task graph: %w", err)
	}

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

func (s *Saver) document() Document {
	doc := Document{
		Version: DocumentVersion,
		SavedAt: s.now(),
		Graph:   s.graph.State(),
	}
	if s.history != nil {
		doc.History = s.history.Export()
	}
	return doc
}
