// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/service"
)

const (
	// SectionSeparator is the separator line for bucket sections.
	SectionSeparator = "------------"
)

// FormatBuckets prints the three status buckets in display order with a
// continuous task numbering across them. Empty buckets are skipped.
// Returns the number of tasks printed.
func FormatBuckets(w io.Writer, b service.Buckets) int {
	num := 1
	for _, status := range service.Statuses() {
		tasks := b.ByStatus(status)
		if len(tasks) == 0 {
			continue
		}
		FormatBucketHeader(w, status, len(tasks))
		for _, t := range tasks {
			FormatTask(w, num, t)
			num++
		}
	}
	return num - 1
}

// FormatBucketHeader formats a bucket section header with a task count.
func FormatBucketHeader(w io.Writer, status string, count int) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintf(w, "%s (%d)\n", service.StatusLabel(status), count)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatTask formats a task line.
// Format: "{N:>4}  {TITLE}\n" (4-wide right-aligned number, two spaces, title).
// A non-empty description follows on its own indented line.
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeTitle(task.Title))
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintf(w, "      %s\n", normalizeText(desc))
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText replaces newlines with spaces.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
