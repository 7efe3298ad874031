package service

import (
	"context"
	"strings"

	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/repo"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
)

type RiskService interface {
	Create(ctx context.Context, in CreateRiskInput) (*model.Risk, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Risk, error)
	Update(ctx context.Context, id uint, patch RiskPatch) (*model.Risk, error)
	Delete(ctx context.Context, id uint) error
}

type riskService struct {
	risks    repo.RiskRepo
	projects repo.ProjectRepo
}

func NewRiskService(risks repo.RiskRepo, projects repo.ProjectRepo) RiskService {
	return &riskService{risks: risks, projects: projects}
}

type CreateRiskInput struct {
	ProjectID   uint
	Description string
	Likelihood  model.Priority
	Impact      model.Priority
	Mitigation  string
	Owner       string
}

func (s *riskService) Create(ctx context.Context, in CreateRiskInput) (*model.Risk, error) {
	if _, err := s.projects.Get(ctx, in.ProjectID); err != nil {
		return nil, mapNotFound(err, "project %d not found", in.ProjectID)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.Validation("risk description cannot be empty")
	}
	if in.Likelihood == "" {
		in.Likelihood = model.PriorityMedium
	}
	if in.Impact == "" {
		in.Impact = model.PriorityMedium
	}
	if !in.Likelihood.Valid() {
		return nil, apperr.Validation("invalid likelihood %q", in.Likelihood)
	}
	if !in.Impact.Valid() {
		return nil, apperr.Validation("invalid impact %q", in.Impact)
	}

	rk := &model.Risk{
		ProjectID:   in.ProjectID,
		Description: strings.TrimSpace(in.Description),
		Likelihood:  in.Likelihood,
		Impact:      in.Impact,
		Mitigation:  in.Mitigation,
		Owner:       in.Owner,
		Status:      model.RiskOpen,
	}
	return rk, s.risks.Create(ctx, rk)
}

func (s *riskService) ListByProject(ctx context.Context, projectID uint) ([]model.Risk, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, mapNotFound(err, "project %d not found", projectID)
	}
	return s.risks.ListByProject(ctx, projectID)
}

type RiskPatch struct {
	Description *string           `json:"description"`
	Likelihood  *model.Priority   `json:"likelihood"`
	Impact      *model.Priority   `json:"impact"`
	Mitigation  *string           `json:"mitigation"`
	Owner       *string           `json:"owner"`
	Status      *model.RiskStatus `json:"status"`
}

func (s *riskService) Update(ctx context.Context, id uint, patch RiskPatch) (*model.Risk, error) {
	if _, err := s.risks.Get(ctx, id); err != nil {
		return nil, mapNotFound(err, "risk %d not found", id)
	}

	changes := make(map[string]any)
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, apperr.Validation("risk description cannot be empty")
		}
		changes["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Likelihood != nil {
		if !patch.Likelihood.Valid() {
			return nil, apperr.Validation("invalid likelihood %q", *patch.Likelihood)
		}
		changes["likelihood"] = *patch.Likelihood
	}
	if patch.Impact != nil {
		if !patch.Impact.Valid() {
			return nil, apperr.Validation("invalid impact %q", *patch.Impact)
		}
		changes["impact"] = *patch.Impact
	}
	if patch.Mitigation != nil {
		changes["mitigation"] = *patch.Mitigation
	}
	if patch.Owner != nil {
		changes["owner"] = *patch.Owner
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperr.Validation("invalid risk status %q", *patch.Status)
		}
		changes["status"] = *patch.Status
	}

	if len(changes) > 0 {
		if err := s.risks.Update(ctx, id, changes); err != nil {
			return nil, err
		}
	}
	return s.risks.Get(ctx, id)
}

func (s *riskService) Delete(ctx context.Context, id uint) error {
	if _, err := s.risks.Get(ctx, id); err != nil {
		return mapNotFound(err, "risk %d not found", id)
	}
	return s.risks.Delete(ctx, id)
}
