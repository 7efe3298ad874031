package service

import (
	"context"
	"strings"
	"time"

	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/repo"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	Get(ctx context.Context, id uint) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, id uint, patch ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, id uint) error
}

type projectService struct {
	r   repo.ProjectRepo
	log *zap.Logger
	pub EventPublisher
}

func NewProjectService(r repo.ProjectRepo, log *zap.Logger, pub EventPublisher) ProjectService {
	return &projectService{r: r, log: log, pub: pub}
}

type CreateProjectInput struct {
	Name                 string
	Status               model.ProjectStatus
	StartDate            *time.Time
	TargetCompletionDate *time.Time
	BudgetCents          int64
	Settings             map[string]interface{}
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("project name cannot be empty")
	}
	if in.Status == "" {
		in.Status = model.ProjectPlanning
	}
	if !in.Status.Valid() {
		return nil, apperr.Validation("invalid project status %q", in.Status)
	}
	if in.StartDate != nil && in.TargetCompletionDate != nil && in.TargetCompletionDate.Before(*in.StartDate) {
		return nil, apperr.Validation("target completion date cannot be before start date")
	}

	p := &model.Project{
		Name:                 strings.TrimSpace(in.Name),
		Status:               in.Status,
		StartDate:            in.StartDate,
		TargetCompletionDate: in.TargetCompletionDate,
		BudgetCents:          in.BudgetCents,
		Settings:             datatypes.JSONMap(in.Settings),
	}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.pub != nil {
		if err := s.pub.PublishJSON(ctx, "project.created", p); err != nil {
			s.log.Sugar().Warnw("publish project.created", "project_id", p.ID, "err", err)
		}
	}
	return p, nil
}

func (s *projectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	p, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "project %d not found", id)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	return s.r.List(ctx)
}

// ProjectPatch is a partial project update; nil means unchanged.
type ProjectPatch struct {
	Name                 *string                `json:"name"`
	Status               *model.ProjectStatus   `json:"status"`
	StartDate            *time.Time             `json:"start_date"`
	TargetCompletionDate *time.Time             `json:"target_completion_date"`
	BudgetCents          *int64                 `json:"budget_cents"`
	Settings             map[string]interface{} `json:"settings"`
}

func (s *projectService) Update(ctx context.Context, id uint, patch ProjectPatch) (*model.Project, error) {
	if _, err := s.r.Get(ctx, id); err != nil {
		return nil, mapNotFound(err, "project %d not found", id)
	}

	changes := make(map[string]any)
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.Validation("project name cannot be empty")
		}
		changes["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperr.Validation("invalid project status %q", *patch.Status)
		}
		changes["status"] = *patch.Status
	}
	if patch.StartDate != nil {
		changes["start_date"] = *patch.StartDate
	}
	if patch.TargetCompletionDate != nil {
		changes["target_completion_date"] = *patch.TargetCompletionDate
	}
	if patch.BudgetCents != nil {
		changes["budget_cents"] = *patch.BudgetCents
	}
	if patch.Settings != nil {
		changes["settings"] = datatypes.JSONMap(patch.Settings)
	}

	if len(changes) > 0 {
		if err := s.r.Update(ctx, id, changes); err != nil {
			return nil, err
		}
	}

	p, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.pub != nil {
		if err := s.pub.PublishJSON(ctx, "project.updated", p); err != nil {
			s.log.Sugar().Warnw("publish project.updated", "project_id", id, "err", err)
		}
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.r.Get(ctx, id); err != nil {
		return mapNotFound(err, "project %d not found", id)
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}

	if s.pub != nil {
		if err := s.pub.PublishJSON(ctx, "project.deleted", map[string]any{"id": id}); err != nil {
			s.log.Sugar().Warnw("publish project.deleted", "project_id", id, "err", err)
		}
	}
	return nil
}
