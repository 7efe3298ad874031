package planner

import (
	"strings"
	"time"

	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
)

// TaskPatch is a partial update to a task. A nil field means "leave
// unchanged". The same patch shape drives single and bulk updates.
type TaskPatch struct {
	Description       *string           `json:"description"`
	StartDate         *time.Time        `json:"start_date"`
	DueDate           *time.Time        `json:"due_date"`
	DurationDays      *int              `json:"duration_days"`
	Dependency        *string           `json:"dependency"`
	Owner             *string           `json:"owner"`
	Status            *model.TaskStatus `json:"status"`
	Priority          *model.Priority   `json:"priority"`
	Phase             *string           `json:"phase"`
	BudgetCents       *int64            `json:"budget_cents"`
	ActualBudgetCents *int64            `json:"actual_budget_cents"`
	ApprovalRequired  *model.Approval   `json:"approval_required"`
	Approver          *string           `json:"approver"`
	CompletionPercent *int              `json:"completion_percent"`
	Notes             *string           `json:"notes"`
}

// CheckPatch applies the lifecycle guard to a patch against the currently
// persisted task:
//
//   - a Complete task cannot move back to a non-terminal status
//   - completion percent must stay within [0,100]; out-of-range values
//     fail, they are never clamped
//   - a task cannot list its own code as a dependency
//
// All other transitions (Not Started / In Progress / On Hold) are freely
// reversible. Date ordering is deliberately not re-checked on update.
func CheckPatch(current *model.Task, p TaskPatch) error {
	if p.Status != nil {
		if !p.Status.Valid() {
			return apperr.Validation("invalid status %q", *p.Status)
		}
		if current.Status == model.TaskComplete && *p.Status != model.TaskComplete {
			return apperr.StateTransition("task %s is Complete and cannot move back to %q", current.Code, *p.Status)
		}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return apperr.Validation("invalid priority %q", *p.Priority)
	}
	if p.ApprovalRequired != nil && !p.ApprovalRequired.Valid() {
		return apperr.Validation("invalid approval_required %q", *p.ApprovalRequired)
	}
	if p.CompletionPercent != nil && (*p.CompletionPercent < 0 || *p.CompletionPercent > 100) {
		return apperr.Validation("completion_percent must be between 0 and 100, got %d", *p.CompletionPercent)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return apperr.Validation("description cannot be empty")
	}
	if p.Dependency != nil {
		for _, code := range SplitDependencyCodes(*p.Dependency) {
			if strings.EqualFold(code, current.Code) {
				return apperr.Validation("task %s cannot depend on itself", current.Code)
			}
		}
	}
	return nil
}

// NormalizePatch derives cross-field side effects before a patch reaches
// storage: setting status to Complete forces completion_percent to 100,
// regardless of any percent carried in the patch. Kept separate from
// CheckPatch so the rule is testable in isolation from persistence.
func NormalizePatch(p TaskPatch) TaskPatch {
	if p.Status != nil && *p.Status == model.TaskComplete {
		full := 100
		p.CompletionPercent = &full
	}
	return p
}

// Changes renders the patch as a column->value map for a partial update.
// Absent fields are omitted so unchanged columns are never written.
func (p TaskPatch) Changes() map[string]any {
	ch := make(map[string]any)
	if p.Description != nil {
		ch["description"] = *p.Description
	}
	if p.StartDate != nil {
		ch["start_date"] = *p.StartDate
	}
	if p.DueDate != nil {
		ch["due_date"] = *p.DueDate
	}
	if p.DurationDays != nil {
		ch["duration_days"] = *p.DurationDays
	}
	if p.Dependency != nil {
		ch["dependency"] = *p.Dependency
	}
	if p.Owner != nil {
		ch["owner"] = *p.Owner
	}
	if p.Status != nil {
		ch["status"] = *p.Status
	}
	if p.Priority != nil {
		ch["priority"] = *p.Priority
	}
	if p.Phase != nil {
		ch["phase"] = *p.Phase
	}
	if p.BudgetCents != nil {
		ch["budget_cents"] = *p.BudgetCents
	}
	if p.ActualBudgetCents != nil {
		ch["actual_budget_cents"] = *p.ActualBudgetCents
	}
	if p.ApprovalRequired != nil {
		ch["approval_required"] = *p.ApprovalRequired
	}
	if p.Approver != nil {
		ch["approver"] = *p.Approver
	}
	if p.CompletionPercent != nil {
		ch["completion_percent"] = *p.CompletionPercent
	}
	if p.Notes != nil {
		ch["notes"] = *p.Notes
	}
	return ch
}
