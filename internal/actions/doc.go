// Package actions provides high-level business logic for CLI commands and the browser.
//
// Each action corresponds to a taskmap command (add, mv, dep, undo, etc.)
// and orchestrates operations across the engine, the history and the tui packages.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Engine, History, Splog and the Saver
//   - Every mutation is validated first, then captured into the history, then applied
//   - Rejected operations leave the graph and the history untouched
//   - Actions handle user interaction through the tui package
package actions
