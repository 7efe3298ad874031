package planner

import (
	"testing"

	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/stretchr/testify/assert"
)

func TestPhaseOrder(t *testing.T) {
	assert.Equal(t, 1, PhaseOrder("Phase 1: Discovery"))
	assert.Equal(t, 12, PhaseOrder("phase 12 rollout"))
	assert.Equal(t, phaseOrderSentinel, PhaseOrder("Random"))
	assert.Equal(t, phaseOrderSentinel, PhaseOrder(""))
	assert.Equal(t, phaseOrderSentinel, PhaseOrder("Phasing 3"))
}

func TestGroupByPhase_Ordering(t *testing.T) {
	tasks := []model.Task{
		{Code: "T001", Phase: "Phase 2: Build"},
		{Code: "T002", Phase: "Phase 1: Design"},
		{Code: "T003", Phase: "Random"},
		{Code: "T004", Phase: "Archive"},
		{Code: "T005", Phase: "Phase 1: Design"},
	}

	groups := GroupByPhase(tasks)

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	// Numbered phases ascending, then unnumbered alphabetically.
	assert.Equal(t, []string{"Phase 1: Design", "Phase 2: Build", "Archive", "Random"}, names)

	assert.Len(t, groups[0].Tasks, 2)
	assert.Len(t, groups[1].Tasks, 1)
}

func TestGroupByPhase_Uncategorized(t *testing.T) {
	tasks := []model.Task{
		{Code: "T001", Phase: "  "},
		{Code: "T002"},
		{Code: "T003", Phase: "Phase 1: Kickoff"},
	}

	groups := GroupByPhase(tasks)
	assert.Len(t, groups, 2)
	assert.Equal(t, "Phase 1: Kickoff", groups[0].Name)
	assert.Equal(t, UncategorizedPhase, groups[1].Name)
	assert.Len(t, groups[1].Tasks, 2)
}

func TestGroupByPhase_Rollups(t *testing.T) {
	tasks := []model.Task{
		{Code: "T001", Phase: "Phase 1: X", CompletionPercent: 50, StartDate: date(2026, 1, 10), DueDate: date(2026, 1, 20)},
		{Code: "T002", Phase: "Phase 1: X", CompletionPercent: 25, StartDate: date(2026, 1, 5)},
		{Code: "T003", Phase: "Phase 1: X", CompletionPercent: 0, DueDate: date(2026, 2, 1)},
	}

	groups := GroupByPhase(tasks)
	assert.Len(t, groups, 1)
	g := groups[0]

	// mean(50, 25, 0) = 25
	assert.Equal(t, 25, g.Progress)
	assert.Equal(t, *date(2026, 1, 5), *g.StartDate)
	assert.Equal(t, *date(2026, 2, 1), *g.EndDate)
}

func TestGroupByPhase_ProgressRounding(t *testing.T) {
	tasks := []model.Task{
		{Code: "T001", Phase: "Phase 1: X", CompletionPercent: 33},
		{Code: "T002", Phase: "Phase 1: X", CompletionPercent: 34},
	}
	groups := GroupByPhase(tasks)
	// mean(33, 34) = 33.5, rounds to 34
	assert.Equal(t, 34, groups[0].Progress)
}

func TestGroupByPhase_NoDates(t *testing.T) {
	groups := GroupByPhase([]model.Task{{Code: "T001", Phase: "Phase 1: X"}})
	assert.Nil(t, groups[0].StartDate)
	assert.Nil(t, groups[0].EndDate)
}
