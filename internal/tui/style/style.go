// Package style holds the lipgloss colors shared by taskmap's terminal views
package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// TreeColors is the palette cycled through for root trees
var TreeColors = [][]int{
	{76, 203, 241},  // Light blue
	{77, 202, 125},  // Green
	{110, 173, 38},  // Dark green
	{245, 200, 0},   // Yellow
	{248, 144, 72},  // Orange
	{244, 98, 81},   // Red
	{235, 130, 188}, // Pink
	{159, 131, 228}, // Purple
	{80, 132, 243},  // Blue
}

// RootColor returns the palette color for the n-th root tree
func RootColor(n int) lipgloss.Color {
	color := TreeColors[((n%len(TreeColors))+len(TreeColors))%len(TreeColors)]
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color[0], color[1], color[2]))
}

// ColorRoot renders text in the n-th root tree's color
func ColorRoot(text string, n int) string {
	return lipgloss.NewStyle().Foreground(RootColor(n)).Render(text)
}

// ColorWorking highlights the task currently being worked on
func ColorWorking(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Bold(true).
		Render(text)
}

// ColorDone renders finished tasks
func ColorDone(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Strikethrough(true).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorMagenta colors text magenta
func ColorMagenta(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// Selected renders the browser's cursor row
func Selected(text string) string {
	return lipgloss.NewStyle().Reverse(true).Render(text)
}
