package util

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// PathExists reports whether something exists at path.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// SelectColumns asks the user which of the offered columns to keep. All of
// them are preselected.
func SelectColumns(message string, columns []string) ([]string, error) {
	if len(columns) == 0 {
		return nil, nil
	}
	prompt := &survey.MultiSelect{
		Message:  message,
		Options:  columns,
		Default:  columns,
		PageSize: min(len(columns), 20),
	}

	var selected []string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	return selected, nil
}

// Colorize wraps s in an ANSI colour when enabled.
func Colorize(enabled bool, color, s string) string {
	if !enabled || color == "" {
		return s
	}
	return color + s + TerminalReset
}

// Plural returns word with an s appended unless n is one.
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// TrimAll trims surrounding whitespace of every value in place.
func TrimAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

const (
	TerminalReset  = "\033[0m"
	TerminalRed    = "\033[31m"
	TerminalGreen  = "\033[32m"
	TerminalYellow = "\033[33m"
	TerminalBlue   = "\033[34m"
	TerminalPurple = "\033[35m"
	TerminalCyan   = "\033[36m"
	TerminalWhite  = "\033[37m"
)
