// Package tui provides the terminal user interface for taskmap.
//
// It handles:
//   - Console output and rotating file logs (Splog)
//   - Confirmation and text prompts (using survey and bubbletea)
//   - The interactive task browser (using bubbletea and bubbles)
//   - Terminal styling and colors (using lipgloss)
package tui
