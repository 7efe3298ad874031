package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/planhub-io/planhub/internal/modules/model"
)

type RowKind string

const (
	RowProject RowKind = "project"
	RowPhase   RowKind = "phase"
	RowTask    RowKind = "task"
)

// phasePalette colors phase rows by their position within a project.
var phasePalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
}

// TimelineRow is one renderable bar: a project, a phase or a task. Spans
// are half-open [Start, End) calendar intervals.
type TimelineRow struct {
	ID       string  `json:"id"`
	ParentID string  `json:"parent_id,omitempty"`
	Kind     RowKind `json:"kind"`
	Label    string  `json:"label"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Progress int    `json:"progress"`
	Color    string `json:"color,omitempty"`

	// Dependencies are sibling row ids resolved from the task's
	// dependency codes. Unresolvable codes are dropped here; reporting
	// them is dependency validation's job.
	Dependencies []string `json:"dependencies,omitempty"`

	Critical bool `json:"critical,omitempty"`
}

type Timeline struct {
	Rows []TimelineRow `json:"rows"`

	// DrilldownIndex maps a row id to its child row ids.
	DrilldownIndex map[string][]string `json:"drilldown_index"`

	// InferredTaskCount is how many task spans were derived from partial
	// date information rather than taken verbatim from stored fields.
	InferredTaskCount int `json:"inferred_task_count"`

	// ViewportDate is where the rendered calendar should initially sit.
	ViewportDate time.Time `json:"viewport_date"`
}

type TimelineOptions struct {
	// Now anchors date inference and the viewport; the zero value means
	// time.Now.
	Now time.Time

	// CriticalTaskIDs marks task rows for critical-path highlighting.
	CriticalTaskIDs map[uint]bool
}

// taskSpan is a task's resolved [start, end) interval.
type taskSpan struct {
	task     *model.Task
	start    time.Time
	end      time.Time
	inferred bool
}

// BuildTimeline projects raw records into a hierarchical Gantt timeline:
// one project row per project, phase rows beneath it, task rows beneath
// their phase. Tasks with partial or missing dates get concrete spans via
// the inference rules in resolveSpans.
func BuildTimeline(projects []model.Project, tasksByProject map[uint][]model.Task, opts TimelineOptions) Timeline {
	now := midnight(opts.Now)
	if opts.Now.IsZero() {
		now = midnight(time.Now())
	}

	tl := Timeline{DrilldownIndex: make(map[string][]string)}

	for pi := range projects {
		p := &projects[pi]
		tasks := tasksByProject[p.ID]

		spans, inferred := resolveSpans(p, tasks, now)
		tl.InferredTaskCount += inferred

		projectRowID := fmt.Sprintf("project-%d", p.ID)

		// Task code -> row id, for dependency edge resolution.
		rowIDByCode := make(map[string]string, len(spans))
		for _, s := range spans {
			rowIDByCode[strings.ToUpper(s.task.Code)] = fmt.Sprintf("task-%d", s.task.ID)
		}

		// Project span: min/max of resolved child spans, or the
		// project's own dates when it has no tasks.
		pStart, pEnd := projectSpan(p, spans, now)
		tl.Rows = append(tl.Rows, TimelineRow{
			ID:       projectRowID,
			Kind:     RowProject,
			Label:    p.Name,
			Start:    pStart,
			End:      pEnd,
			Progress: meanCompletion(tasks),
		})

		spanByTaskID := make(map[uint]taskSpan, len(spans))
		for _, s := range spans {
			spanByTaskID[s.task.ID] = s
		}

		for gi, group := range GroupByPhase(tasks) {
			phaseRowID := fmt.Sprintf("%s-phase-%d", projectRowID, gi)

			gStart, gEnd := group.StartDate, group.EndDate
			if gStart == nil || gEnd == nil {
				// No dated members: park the phase bar at the
				// project start.
				s := pStart
				e := s.AddDate(0, 0, 1)
				if gStart == nil {
					gStart = &s
				}
				if gEnd == nil {
					gEnd = &e
				}
			}

			tl.Rows = append(tl.Rows, TimelineRow{
				ID:       phaseRowID,
				ParentID: projectRowID,
				Kind:     RowPhase,
				Label:    group.Name,
				Start:    *gStart,
				End:      *gEnd,
				Progress: group.Progress,
				Color:    phasePalette[gi%len(phasePalette)],
			})
			tl.DrilldownIndex[projectRowID] = append(tl.DrilldownIndex[projectRowID], phaseRowID)

			for _, t := range group.Tasks {
				s := spanByTaskID[t.ID]
				rowID := fmt.Sprintf("task-%d", t.ID)

				var deps []string
				for _, code := range SplitDependencyCodes(t.Dependency) {
					if depRow, ok := rowIDByCode[code]; ok && depRow != rowID {
						deps = append(deps, depRow)
					}
				}

				tl.Rows = append(tl.Rows, TimelineRow{
					ID:           rowID,
					ParentID:     phaseRowID,
					Kind:         RowTask,
					Label:        t.Code + " " + t.Description,
					Start:        s.start,
					End:          s.end,
					Progress:     t.CompletionPercent,
					Dependencies: deps,
					Critical:     opts.CriticalTaskIDs[t.ID],
				})
				tl.DrilldownIndex[phaseRowID] = append(tl.DrilldownIndex[phaseRowID], rowID)
			}
		}
	}

	if len(tl.Rows) > 0 {
		tl.ViewportDate = now.AddDate(0, 0, -14)
	} else {
		tl.ViewportDate = now
	}
	return tl
}

// resolveSpans assigns every task a concrete [start, end) interval using a
// fixed precedence:
//
//  1. both dates explicit: used verbatim; a due date at or before the
//     start is pushed to start+1 day (defensive normalization, does NOT
//     count as inferred)
//  2. only start: end = start + duration
//  3. only due: start = due - duration
//  4. neither: start = rolling cursor, end = start + duration
//
// Rules 2-4 count toward the inferred total. The rolling cursor begins at
// the project fallback start and advances to each task's resolved end + 1
// day, walking tasks in ascending task-code order.
func resolveSpans(p *model.Project, tasks []model.Task, now time.Time) ([]taskSpan, int) {
	ordered := make([]*model.Task, 0, len(tasks))
	for i := range tasks {
		ordered = append(ordered, &tasks[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ni, iok := codeNumber(ordered[i].Code)
		nj, jok := codeNumber(ordered[j].Code)
		if iok && jok && ni != nj {
			return ni < nj
		}
		return ordered[i].Code < ordered[j].Code
	})

	cursor := fallbackStart(p, tasks, now)

	spans := make([]taskSpan, 0, len(ordered))
	inferred := 0
	for _, t := range ordered {
		dur := durationDays(t)
		var s taskSpan
		s.task = t

		switch {
		case t.StartDate != nil && t.DueDate != nil:
			s.start = midnight(*t.StartDate)
			s.end = midnight(*t.DueDate)
			if !s.end.After(s.start) {
				s.end = s.start.AddDate(0, 0, 1)
			}

		case t.StartDate != nil:
			s.start = midnight(*t.StartDate)
			s.end = s.start.AddDate(0, 0, dur)
			s.inferred = true

		case t.DueDate != nil:
			s.end = midnight(*t.DueDate)
			s.start = s.end.AddDate(0, 0, -dur)
			if !s.end.After(s.start) {
				s.end = s.start.AddDate(0, 0, 1)
			}
			s.inferred = true

		default:
			s.start = cursor
			s.end = s.start.AddDate(0, 0, dur)
			s.inferred = true
		}

		if s.inferred {
			inferred++
		}
		cursor = s.end.AddDate(0, 0, 1)
		spans = append(spans, s)
	}
	return spans, inferred
}

// fallbackStart picks the anchor for date inference: the project's own
// start date, else the earliest explicit task start, else now.
func fallbackStart(p *model.Project, tasks []model.Task, now time.Time) time.Time {
	if p.StartDate != nil {
		return midnight(*p.StartDate)
	}
	var earliest *time.Time
	for i := range tasks {
		if tasks[i].StartDate != nil && (earliest == nil || tasks[i].StartDate.Before(*earliest)) {
			earliest = tasks[i].StartDate
		}
	}
	if earliest != nil {
		return midnight(*earliest)
	}
	return now
}

func projectSpan(p *model.Project, spans []taskSpan, now time.Time) (time.Time, time.Time) {
	if len(spans) == 0 {
		start := now
		if p.StartDate != nil {
			start = midnight(*p.StartDate)
		}
		end := start.AddDate(0, 0, 1)
		if p.TargetCompletionDate != nil && midnight(*p.TargetCompletionDate).After(start) {
			end = midnight(*p.TargetCompletionDate)
		}
		return start, end
	}

	start, end := spans[0].start, spans[0].end
	for _, s := range spans[1:] {
		if s.start.Before(start) {
			start = s.start
		}
		if s.end.After(end) {
			end = s.end
		}
	}
	return start, end
}

// durationDays returns the task's duration for inference, defaulting to 1
// when unset or non-positive.
func durationDays(t *model.Task) int {
	if t.DurationDays != nil && *t.DurationDays > 0 {
		return *t.DurationDays
	}
	return 1
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
