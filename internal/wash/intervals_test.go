package wash

import (
	"reflect"
	"testing"
	"time"

	"github.com/i474232898/wash-advisor/internal/timezone"
)

func TestCollapseLabels(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "empty",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "single",
			input:    []string{"01 Jan 10:00"},
			expected: []string{"01 Jan 10:00"},
		},
		{
			name:     "gap splits the run",
			input:    []string{"01 Jan 10:00", "01 Jan 13:00", "01 Jan 19:00"},
			expected: []string{"01 Jan 10:00 - 13:00", "01 Jan 19:00"},
		},
		{
			name:     "run across midnight",
			input:    []string{"01 Jan 21:00", "02 Jan 00:00", "02 Jan 03:00"},
			expected: []string{"01 Jan 21:00 - 03:00"},
		},
		{
			name:     "all isolated",
			input:    []string{"01 Jan 00:00", "01 Jan 06:00", "01 Jan 12:00"},
			expected: []string{"01 Jan 00:00", "01 Jan 06:00", "01 Jan 12:00"},
		},
	}

	c := NewCollapser(0, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.CollapseLabels(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCollapseCustomGap(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour), base.Add(4 * time.Hour)}

	hourly := NewCollapser(time.Hour, timezone.LayoutFormatter{})
	want := []string{"01 Mar 10:00 - 12:00", "01 Mar 14:00"}
	if got := hourly.Collapse(times); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	threeHourly := NewCollapser(3*time.Hour, timezone.LayoutFormatter{})
	want = []string{"01 Mar 10:00 - 14:00"}
	if got := threeHourly.Collapse(times); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCollapseLabelsRejectsGarbage(t *testing.T) {
	if _, err := NewCollapser(0, nil).CollapseLabels([]string{"завтра"}); err == nil {
		t.Error("expected error for unparseable label")
	}
}
