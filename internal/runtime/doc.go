// Package runtime provides the execution context for taskmap commands.
//
// It encapsulates shared dependencies needed by actions, such as the engine
// instance, the undo history, the debounced saver and the logger.
package runtime
