package planner

import (
	"fmt"
	"strings"

	"github.com/planhub-io/planhub/internal/modules/model"
)

type IssueType string

const (
	IssueMissingDependency IssueType = "missing_dependency"
	IssueDateConflict      IssueType = "date_conflict"
)

// Issue is an advisory finding from dependency validation. Issues are
// reported, never thrown: a plan is allowed to be transiently inconsistent
// mid-edit.
type Issue struct {
	Type           IssueType `json:"type"`
	TaskCode       string    `json:"task_id"`
	DependencyCode string    `json:"dependency_code"`
	Detail         string    `json:"detail"`
}

// ValidateDependencies checks every task's dependency list against its
// siblings. For each referenced code it reports a missing_dependency if no
// sibling carries that code, and a date_conflict if the dependency is
// scheduled to finish after the dependent task starts. Lookup is
// case-insensitive. Read-only: callers invoke this on demand to surface a
// punch list, never as a write-time constraint.
func ValidateDependencies(tasks []model.Task) []Issue {
	byCode := make(map[string]*model.Task, len(tasks))
	for i := range tasks {
		byCode[strings.ToUpper(tasks[i].Code)] = &tasks[i]
	}

	var issues []Issue
	for i := range tasks {
		t := &tasks[i]
		for _, code := range SplitDependencyCodes(t.Dependency) {
			dep, ok := byCode[code]
			if !ok {
				issues = append(issues, Issue{
					Type:           IssueMissingDependency,
					TaskCode:       t.Code,
					DependencyCode: code,
					Detail:         fmt.Sprintf("task %s depends on %s, which does not exist in this project", t.Code, code),
				})
				continue
			}
			if dep.DueDate != nil && t.StartDate != nil && dep.DueDate.After(*t.StartDate) {
				issues = append(issues, Issue{
					Type:           IssueDateConflict,
					TaskCode:       t.Code,
					DependencyCode: code,
					Detail: fmt.Sprintf("task %s starts %s but its dependency %s is due %s",
						t.Code, t.StartDate.Format("2006-01-02"), code, dep.DueDate.Format("2006-01-02")),
				})
			}
		}
	}
	return issues
}
