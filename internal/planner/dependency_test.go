package planner

import (
	"testing"
	"time"

	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestValidateDependencies(t *testing.T) {
	tests := []struct {
		name     string
		tasks    []model.Task
		expected []Issue
	}{
		{
			name: "no dependencies",
			tasks: []model.Task{
				{Code: "T001", Description: "a"},
				{Code: "T002", Description: "b"},
			},
			expected: nil,
		},
		{
			name: "missing dependency",
			tasks: []model.Task{
				{Code: "T001", Dependency: "T404"},
			},
			expected: []Issue{
				{
					Type:           IssueMissingDependency,
					TaskCode:       "T001",
					DependencyCode: "T404",
					Detail:         "task T001 depends on T404, which does not exist in this project",
				},
			},
		},
		{
			name: "date conflict",
			tasks: []model.Task{
				{Code: "T100", DueDate: date(2026, 1, 10)},
				{Code: "T101", StartDate: date(2026, 1, 5), Dependency: "T100"},
			},
			expected: []Issue{
				{
					Type:           IssueDateConflict,
					TaskCode:       "T101",
					DependencyCode: "T100",
					Detail:         "task T101 starts 2026-01-05 but its dependency T100 is due 2026-01-10",
				},
			},
		},
		{
			name: "dependency due on the start day is fine",
			tasks: []model.Task{
				{Code: "T100", DueDate: date(2026, 1, 5)},
				{Code: "T101", StartDate: date(2026, 1, 5), Dependency: "T100"},
			},
			expected: nil,
		},
		{
			name: "missing dates disable the conflict check",
			tasks: []model.Task{
				{Code: "T100"},
				{Code: "T101", StartDate: date(2026, 1, 5), Dependency: "T100"},
				{Code: "T102", Dependency: "T100"},
			},
			expected: nil,
		},
		{
			name: "case insensitive lookup",
			tasks: []model.Task{
				{Code: "T001", DueDate: date(2026, 3, 1)},
				{Code: "T002", StartDate: date(2026, 2, 1), Dependency: "t001"},
			},
			expected: []Issue{
				{
					Type:           IssueDateConflict,
					TaskCode:       "T002",
					DependencyCode: "T001",
					Detail:         "task T002 starts 2026-02-01 but its dependency T001 is due 2026-03-01",
				},
			},
		},
		{
			name: "multiple codes per task",
			tasks: []model.Task{
				{Code: "T001", DueDate: date(2026, 1, 2)},
				{Code: "T003", StartDate: date(2026, 1, 1), Dependency: "T001, T009"},
			},
			expected: []Issue{
				{
					Type:           IssueDateConflict,
					TaskCode:       "T003",
					DependencyCode: "T001",
					Detail:         "task T003 starts 2026-01-01 but its dependency T001 is due 2026-01-02",
				},
				{
					Type:           IssueMissingDependency,
					TaskCode:       "T003",
					DependencyCode: "T009",
					Detail:         "task T003 depends on T009, which does not exist in this project",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateDependencies(tt.tasks))
		})
	}
}
