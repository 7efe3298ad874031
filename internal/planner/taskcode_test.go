package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTaskCode(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		expected string
	}{
		{
			name:     "empty project",
			existing: nil,
			expected: "T001",
		},
		{
			name:     "sequential",
			existing: []string{"T001", "T002"},
			expected: "T003",
		},
		{
			name: "deletion does not free numbers",
			// T001 was deleted; the historical max is still 2.
			existing: []string{"T002"},
			expected: "T003",
		},
		{
			name:     "gap in the middle",
			existing: []string{"T001", "T005"},
			expected: "T006",
		},
		{
			name:     "case insensitive",
			existing: []string{"t004"},
			expected: "T005",
		},
		{
			name:     "non-matching codes ignored for numbering",
			existing: []string{"TASK-9", "X001", "T002"},
			expected: "T003",
		},
		{
			name:     "only non-matching codes",
			existing: []string{"legacy-1", "legacy-2"},
			expected: "T001",
		},
		{
			name:     "wide numbers",
			existing: []string{"T099", "T100"},
			expected: "T101",
		},
		{
			name:     "beyond three digits",
			existing: []string{"T999"},
			expected: "T1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextTaskCode(tt.existing))
		})
	}
}

func TestNextTaskCode_Monotonic(t *testing.T) {
	// Simulate create/delete churn: every allocated code must carry a
	// numeric suffix strictly greater than every live code's.
	live := []string{}
	prevMax := 0

	alloc := func() string {
		code := NextTaskCode(live)
		live = append(live, code)
		n, ok := codeNumber(code)
		assert.True(t, ok)
		assert.Greater(t, n, prevMax)
		prevMax = n
		return code
	}

	assert.Equal(t, "T001", alloc())
	assert.Equal(t, "T002", alloc())

	// Delete T001; numbering must not reuse it.
	live = live[1:]
	assert.Equal(t, "T003", alloc())

	// Delete the highest-numbered task; still no reuse below the max of
	// what remains.
	live = live[:len(live)-1] // drop T003
	assert.Equal(t, "T003", NextTaskCode(live))
}

func TestSplitDependencyCodes(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"single", "T001", []string{"T001"}},
		{"trims and uppercases", " t001 , T002 ", []string{"T001", "T002"}},
		{"drops empty tokens", "T001,,T003,", []string{"T001", "T003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitDependencyCodes(tt.in))
		})
	}
}
