package utils

import (
	"io"
	"os"
	"strings"
)

// ReadFromStdin reads all content from standard input.
// It returns an empty string without blocking when stdin is a terminal or an empty file.
func ReadFromStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", err
	}

	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}
	if stat.Mode().IsRegular() && stat.Size() == 0 {
		return "", nil
	}

	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bytes)), nil
}

// ReadLinesFromStdin returns every non-blank line of standard input, trimmed
func ReadLinesFromStdin() ([]string, error) {
	content, err := ReadFromStdin()
	if err != nil {
		return nil, err
	}
	return NonBlankLines(content), nil
}

// NonBlankLines splits text into trimmed lines and drops the empty ones
func NonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
