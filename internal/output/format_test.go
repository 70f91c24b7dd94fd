package output_test

import (
	"bytes"
	"testing"

	"taskdeck/internal/output"
	"taskdeck/internal/service"
	"taskdeck/internal/testutil"
)

func TestFormatBuckets(t *testing.T) {
	b := service.GroupByStatus([]service.Task{
		{ID: "1", Title: "Write docs", Description: "outline first", Status: service.StatusNotStarted},
		{ID: "2", Title: "Review patch", Status: service.StatusPending},
		{ID: "3", Title: "Ship release", Status: service.StatusCompleted},
		{ID: "4", Title: "File expenses", Status: service.StatusCompleted},
	})

	var buf bytes.Buffer
	printed := output.FormatBuckets(&buf, b)

	if printed != 4 {
		t.Errorf("printed = %d, want 4", printed)
	}
	testutil.GoldenString(t, "board_listing", buf.String())
}

func TestFormatBuckets_SkipsEmptyBuckets(t *testing.T) {
	b := service.GroupByStatus([]service.Task{
		{ID: "1", Title: "Only pending", Status: service.StatusPending},
	})

	var buf bytes.Buffer
	printed := output.FormatBuckets(&buf, b)

	if printed != 1 {
		t.Errorf("printed = %d, want 1", printed)
	}
	expected := "------------\nIn Progress (1)\n------------\n   1  Only pending\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatBuckets_Empty(t *testing.T) {
	var buf bytes.Buffer
	printed := output.FormatBuckets(&buf, service.Buckets{})

	if printed != 0 {
		t.Errorf("printed = %d, want 0", printed)
	}
	if buf.String() != "" {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestFormatTask_UntitledAndNewlines(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, 1, service.Task{Title: "   "})
	output.FormatTask(&buf, 2, service.Task{Title: "line one\nline two"})

	expected := "   1  (untitled)\n   2  line one line two\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTask_DescriptionIndented(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, 10, service.Task{Title: "Buy milk", Description: "two\nlitres"})

	expected := "  10  Buy milk\n      two litres\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
