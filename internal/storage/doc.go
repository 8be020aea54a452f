// Package storage persists the task graph and its history as a single JSON document.
//
// FileStore writes the document atomically and enforces a byte quota that stands in
// for the capacity of the backing store. Saver debounces save requests so a burst of
// mutations results in one write of the latest state.
package storage
