// Package cli wires the taskmap commands to cobra.
//
// Each command parses its arguments, opens the workspace through helpers.Run
// and delegates to a function in the actions package.
package cli
