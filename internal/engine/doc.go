// Package engine manages the state and relationships of tasks.
//
// It is the core of taskmap, responsible for:
//   - Owning the task collection and assigning task ids
//   - Tracking the parent-child tree and secondary parents
//   - Maintaining the dependency graph and keeping it acyclic
//   - Driving the pending/working/done state machine and the per-root
//     working registry
//
// The engine knows nothing about undo or storage. It exposes its serialized
// shape through Snapshot/Restore/Load and an OnChange hook so the history and
// persistence layers can be attached from the outside.
package engine
