// Package errors provides sentinel errors and custom error types for the taskmap application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrTaskNotFound indicates that a referenced task id does not exist
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidRelationship indicates a reparent or link that would corrupt the tree
	ErrInvalidRelationship = errors.New("invalid relationship")

	// ErrCyclicDependency indicates that a dependency edge would close a cycle
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrStorageExceeded indicates that the serialized state does not fit the storage quota
	ErrStorageExceeded = errors.New("storage capacity exceeded")

	// ErrNotInitialized indicates that no taskmap workspace was found
	ErrNotInitialized = errors.New("taskmap workspace not initialized")
)

// TaskNotFoundError represents an error when a task is not found
type TaskNotFoundError struct {
	ID int
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task #%d does not exist", e.ID)
}

// Is returns true if the target error is ErrTaskNotFound
func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// NewTaskNotFoundError creates a new TaskNotFoundError
func NewTaskNotFoundError(id int) *TaskNotFoundError {
	return &TaskNotFoundError{ID: id}
}

// InvalidRelationshipError represents a rejected tree edit
type InvalidRelationshipError struct {
	TaskID   int
	ParentID int
	Reason   string
}

func (e *InvalidRelationshipError) Error() string {
	return fmt.Sprintf("cannot place task #%d under #%d: %s", e.TaskID, e.ParentID, e.Reason)
}

// Is returns true if the target error is ErrInvalidRelationship
func (e *InvalidRelationshipError) Is(target error) bool {
	return target == ErrInvalidRelationship
}

// NewInvalidRelationshipError creates a new InvalidRelationshipError
func NewInvalidRelationshipError(taskID, parentID int, reason string) *InvalidRelationshipError {
	return &InvalidRelationshipError{
		TaskID:   taskID,
		ParentID: parentID,
		Reason:   reason,
	}
}

// CyclicDependencyError represents a dependency edge that would close a loop
type CyclicDependencyError struct {
	Dependent    int
	Prerequisite int
}

func (e *CyclicDependencyError) Error() string {
	if e.Dependent == e.Prerequisite {
		return fmt.Sprintf("task #%d cannot depend on itself", e.Dependent)
	}
	return fmt.Sprintf("task #%d already depends on #%d, so #%d cannot depend on #%d",
		e.Prerequisite, e.Dependent, e.Dependent, e.Prerequisite)
}

// Is returns true if the target error is ErrCyclicDependency
func (e *CyclicDependencyError) Is(target error) bool {
	return target == ErrCyclicDependency
}

// NewCyclicDependencyError creates a new CyclicDependencyError
func NewCyclicDependencyError(dependent, prerequisite int) *CyclicDependencyError {
	return &CyclicDependencyError{
		Dependent:    dependent,
		Prerequisite: prerequisite,
	}
}

// StorageExceededError represents a save that did not fit the storage quota
type StorageExceededError struct {
	Size  int64
	Limit int64
}

func (e *StorageExceededError) Error() string {
	return fmt.Sprintf("state is %d bytes, storage quota is %d bytes", e.Size, e.Limit)
}

// Is returns true if the target error is ErrStorageExceeded
func (e *StorageExceededError) Is(target error) bool {
	return target == ErrStorageExceeded
}

// NewStorageExceededError creates a new StorageExceededError
func NewStorageExceededError(size, limit int64) *StorageExceededError {
	return &StorageExceededError{Size: size, Limit: limit}
}
