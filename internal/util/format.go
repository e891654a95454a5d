package util

import (
	"fmt"
	"strconv"
	"strings"
)

// DayLabel formats a zero-based day index as a tab label ("Jour 1").
func DayLabel(index int) string {
	return fmt.Sprintf("Jour %d", index+1)
}

// ParseDayNumber parses a one-based day number typed by the user and
// returns the zero-based index.
func ParseDayNumber(input string) (int, error) {
	s := strings.TrimSpace(input)
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid day number %q", input)
	}
	return n - 1, nil
}

// FormatIndices formats checklist indices as "0, 2, 5", or "—" when empty.
func FormatIndices(indices []int) string {
	if len(indices) == 0 {
		return "—"
	}
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
