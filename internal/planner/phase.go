package planner

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/planhub-io/planhub/internal/modules/model"
)

// UncategorizedPhase is the group name for tasks with no phase label.
const UncategorizedPhase = "Uncategorized"

// phaseOrderSentinel sorts unnumbered phase names after every numbered one.
const phaseOrderSentinel = math.MaxInt32

var phasePrefixRe = regexp.MustCompile(`(?i)^Phase\s+(\d+)`)

type PhaseGroup struct {
	Name  string `json:"name"`
	Order int    `json:"order"`

	Tasks []model.Task `json:"tasks"`

	// Progress is the arithmetic mean of member completion percents,
	// rounded to the nearest integer.
	Progress int `json:"progress"`

	// StartDate/EndDate span the members' dates, ignoring tasks without
	// them; nil when no member carries the respective date.
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// PhaseOrder parses the "Phase N: ..." numeric-prefix convention from a
// phase name. Names without the prefix get the sentinel order so they sort
// after every numbered phase.
func PhaseOrder(name string) int {
	if m := phasePrefixRe.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return phaseOrderSentinel
}

// GroupByPhase buckets tasks by their trimmed phase label (empty ->
// Uncategorized) and computes per-group rollups. Numbered phases sort
// ascending by number; unnumbered ones come after, alphabetically.
func GroupByPhase(tasks []model.Task) []PhaseGroup {
	byName := make(map[string]*PhaseGroup)
	var names []string
	for _, t := range tasks {
		name := strings.TrimSpace(t.Phase)
		if name == "" {
			name = UncategorizedPhase
		}
		g, ok := byName[name]
		if !ok {
			g = &PhaseGroup{Name: name, Order: PhaseOrder(name)}
			byName[name] = g
			names = append(names, name)
		}
		g.Tasks = append(g.Tasks, t)
	}

	groups := make([]PhaseGroup, 0, len(names))
	for _, name := range names {
		g := byName[name]
		g.Progress = meanCompletion(g.Tasks)
		g.StartDate, g.EndDate = dateSpan(g.Tasks)
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Order != groups[j].Order {
			return groups[i].Order < groups[j].Order
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}

func meanCompletion(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tasks {
		sum += t.CompletionPercent
	}
	return int(math.Round(float64(sum) / float64(len(tasks))))
}

// dateSpan returns the min start and max end (due) date across tasks,
// ignoring missing dates.
func dateSpan(tasks []model.Task) (*time.Time, *time.Time) {
	var start, end *time.Time
	for _, t := range tasks {
		if t.StartDate != nil && (start == nil || t.StartDate.Before(*start)) {
			d := *t.StartDate
			start = &d
		}
		if t.DueDate != nil && (end == nil || t.DueDate.After(*end)) {
			d := *t.DueDate
			end = &d
		}
	}
	return start, end
}
