package service

import (
	"context"
	"strings"
	"time"

	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/repo"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
	"github.com/planhub-io/planhub/internal/pkg/metrics"
	"github.com/planhub-io/planhub/internal/planner"
	"go.uber.org/zap"
)

type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*model.Task, error)
	Get(ctx context.Context, id uint) (*model.Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	Update(ctx context.Context, id uint, patch planner.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id uint) error
	BulkUpdate(ctx context.Context, projectID uint, ids []uint, patch planner.TaskPatch) (int64, error)
	ValidateDependencies(ctx context.Context, projectID uint) ([]planner.Issue, error)
}

type taskService struct {
	tasks    repo.TaskRepo
	projects repo.ProjectRepo
	log      *zap.Logger
	pub      EventPublisher
	once     OnceGuard
}

func NewTaskService(tasks repo.TaskRepo, projects repo.ProjectRepo, log *zap.Logger, pub EventPublisher, once OnceGuard) TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		log:      log,
		pub:      pub,
		once:     once,
	}
}

type CreateTaskInput struct {
	ProjectID         uint
	Description       string
	StartDate         *time.Time
	DueDate           *time.Time
	DurationDays      *int
	Dependency        string
	Owner             string
	Status            model.TaskStatus
	Priority          model.Priority
	Phase             string
	BudgetCents       int64
	ActualBudgetCents int64
	ApprovalRequired  model.Approval
	Approver          string
	CompletionPercent int
	Notes             string
}

// Create validates the input, allocates the next task code for the
// project and persists the task. Dependency codes are accepted as-is;
// referential integrity is the validator's concern.
func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if _, err := s.projects.Get(ctx, in.ProjectID); err != nil {
		return nil, mapNotFound(err, "project %d not found", in.ProjectID)
	}

	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.Validation("description cannot be empty")
	}
	if in.StartDate != nil && in.DueDate != nil && in.DueDate.Before(*in.StartDate) {
		return nil, apperr.Validation("due date cannot be before start date")
	}
	if in.DurationDays != nil && *in.DurationDays < 0 {
		return nil, apperr.Validation("duration_days cannot be negative")
	}
	if in.CompletionPercent < 0 || in.CompletionPercent > 100 {
		return nil, apperr.Validation("completion_percent must be between 0 and 100, got %d", in.CompletionPercent)
	}

	if in.Status == "" {
		in.Status = model.TaskNotStarted
	}
	if !in.Status.Valid() {
		return nil, apperr.Validation("invalid status %q", in.Status)
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, apperr.Validation("invalid priority %q", in.Priority)
	}
	if in.ApprovalRequired == "" {
		in.ApprovalRequired = model.ApprovalNo
	}
	if !in.ApprovalRequired.Valid() {
		return nil, apperr.Validation("invalid approval_required %q", in.ApprovalRequired)
	}

	codes, err := s.tasks.ListCodes(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	t := &model.Task{
		ProjectID:         in.ProjectID,
		Code:              planner.NextTaskCode(codes),
		Description:       strings.TrimSpace(in.Description),
		StartDate:         in.StartDate,
		DueDate:           in.DueDate,
		DurationDays:      in.DurationDays,
		Dependency:        in.Dependency,
		Owner:             in.Owner,
		Status:            in.Status,
		Priority:          in.Priority,
		Phase:             in.Phase,
		BudgetCents:       in.BudgetCents,
		ActualBudgetCents: in.ActualBudgetCents,
		ApprovalRequired:  in.ApprovalRequired,
		Approver:          in.Approver,
		CompletionPercent: in.CompletionPercent,
		Notes:             in.Notes,
	}
	if t.Status == model.TaskComplete {
		t.CompletionPercent = 100
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	metrics.TaskMutationCount.WithLabelValues("create").Inc()

	s.publish(ctx, "task.created", t)
	return t, nil
}

func (s *taskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "task %d not found", id)
	}
	return t, nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, mapNotFound(err, "project %d not found", projectID)
	}
	return s.tasks.ListByProject(ctx, projectID)
}

// Update runs the lifecycle guard against the persisted task, normalizes
// the patch and writes only the present fields.
func (s *taskService) Update(ctx context.Context, id uint, patch planner.TaskPatch) (*model.Task, error) {
	current, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "task %d not found", id)
	}

	if err := planner.CheckPatch(current, patch); err != nil {
		return nil, err
	}
	patch = planner.NormalizePatch(patch)

	changes := patch.Changes()
	if len(changes) > 0 {
		if err := s.tasks.Update(ctx, id, changes); err != nil {
			return nil, err
		}
	}
	metrics.TaskMutationCount.WithLabelValues("update").Inc()

	updated, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "task.updated", updated)
	if updated.Status == model.TaskComplete {
		s.announceCompletion(ctx, updated)
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, id uint) error {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return mapNotFound(err, "task %d not found", id)
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	metrics.TaskMutationCount.WithLabelValues("delete").Inc()

	s.publish(ctx, "task.deleted", map[string]any{"id": t.ID, "project_id": t.ProjectID, "task_id": t.Code})
	return nil
}

// BulkUpdate applies one patch across the selected tasks of a project.
// Ids outside the project are ignored, not errors; the returned count is
// how many rows actually changed. Status Complete dominates any percent
// in the patch, same as a single update.
func (s *taskService) BulkUpdate(ctx context.Context, projectID uint, ids []uint, patch planner.TaskPatch) (int64, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return 0, mapNotFound(err, "project %d not found", projectID)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if patch.Status != nil && !patch.Status.Valid() {
		return 0, apperr.Validation("invalid status %q", *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return 0, apperr.Validation("invalid priority %q", *patch.Priority)
	}
	if patch.CompletionPercent != nil && (*patch.CompletionPercent < 0 || *patch.CompletionPercent > 100) {
		return 0, apperr.Validation("completion_percent must be between 0 and 100, got %d", *patch.CompletionPercent)
	}

	patch = planner.NormalizePatch(patch)
	changes := patch.Changes()
	if len(changes) == 0 {
		return 0, nil
	}

	updated, err := s.tasks.BulkUpdate(ctx, projectID, ids, changes)
	if err != nil {
		return 0, err
	}
	metrics.TaskMutationCount.WithLabelValues("bulk_update").Inc()

	s.publish(ctx, "task.bulk_updated", map[string]any{
		"project_id":    projectID,
		"task_ids":      ids,
		"updated_count": updated,
	})
	return updated, nil
}

// ValidateDependencies surfaces the project's dependency punch list. Never
// blocks a write; callers invoke it explicitly.
func (s *taskService) ValidateDependencies(ctx context.Context, projectID uint) ([]planner.Issue, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, mapNotFound(err, "project %d not found", projectID)
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	issues := planner.ValidateDependencies(tasks)
	for _, issue := range issues {
		metrics.DependencyIssueCount.WithLabelValues(string(issue.Type)).Inc()
	}
	return issues, nil
}

func (s *taskService) publish(ctx context.Context, eventType string, payload any) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishJSON(ctx, eventType, payload); err != nil {
		s.log.Sugar().Warnw("publish event", "type", eventType, "err", err)
	}
}

// announceCompletion emits task.completed at most once per task; the
// redis once-guard keeps rewrites of the terminal state quiet.
func (s *taskService) announceCompletion(ctx context.Context, t *model.Task) {
	if s.pub == nil {
		return
	}
	if s.once != nil && !s.once.AcquireOnce(ctx, "task.completed", t.ID) {
		return
	}
	s.publish(ctx, "task.completed", t)
}
