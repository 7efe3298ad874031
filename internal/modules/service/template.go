package service

import (
	"context"
	"strings"

	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/repo"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
	"github.com/planhub-io/planhub/internal/planner"
	"go.uber.org/zap"
)

type TemplateService interface {
	Create(ctx context.Context, in CreateTemplateInput) (*model.Template, error)
	Get(ctx context.Context, id uint) (*model.Template, error)
	List(ctx context.Context) ([]model.Template, error)
	Delete(ctx context.Context, id uint) error
	Apply(ctx context.Context, templateID, projectID uint) (int, error)
}

type templateService struct {
	templates repo.TemplateRepo
	tasks     repo.TaskRepo
	projects  repo.ProjectRepo
	log       *zap.Logger
	pub       EventPublisher
}

func NewTemplateService(templates repo.TemplateRepo, tasks repo.TaskRepo, projects repo.ProjectRepo, log *zap.Logger, pub EventPublisher) TemplateService {
	return &templateService{
		templates: templates,
		tasks:     tasks,
		projects:  projects,
		log:       log,
		pub:       pub,
	}
}

type CreateTemplateInput struct {
	Name        string
	Description string
	Tasks       []CreateTemplateTaskInput
}

type CreateTemplateTaskInput struct {
	Description  string
	DurationDays *int
	Phase        string
	Priority     model.Priority
	Owner        string
}

func (s *templateService) Create(ctx context.Context, in CreateTemplateInput) (*model.Template, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("template name cannot be empty")
	}

	t := &model.Template{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}
	for i, tt := range in.Tasks {
		if strings.TrimSpace(tt.Description) == "" {
			return nil, apperr.Validation("template task %d: description cannot be empty", i+1)
		}
		prio := tt.Priority
		if prio == "" {
			prio = model.PriorityMedium
		}
		if !prio.Valid() {
			return nil, apperr.Validation("template task %d: invalid priority %q", i+1, tt.Priority)
		}
		t.Tasks = append(t.Tasks, model.TemplateTask{
			SortOrder:    i,
			Description:  strings.TrimSpace(tt.Description),
			DurationDays: tt.DurationDays,
			Phase:        tt.Phase,
			Priority:     prio,
			Owner:        tt.Owner,
		})
	}

	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *templateService) Get(ctx context.Context, id uint) (*model.Template, error) {
	t, err := s.templates.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "template %d not found", id)
	}
	return t, nil
}

func (s *templateService) List(ctx context.Context) ([]model.Template, error) {
	return s.templates.List(ctx)
}

func (s *templateService) Delete(ctx context.Context, id uint) error {
	if _, err := s.templates.Get(ctx, id); err != nil {
		return mapNotFound(err, "template %d not found", id)
	}
	return s.templates.Delete(ctx, id)
}

// Apply seeds a project with the template's task list. Every seeded task
// goes through the code allocator, so codes continue from whatever the
// project already has.
func (s *templateService) Apply(ctx context.Context, templateID, projectID uint) (int, error) {
	tpl, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return 0, mapNotFound(err, "template %d not found", templateID)
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return 0, mapNotFound(err, "project %d not found", projectID)
	}

	codes, err := s.tasks.ListCodes(ctx, projectID)
	if err != nil {
		return 0, err
	}

	created := make([]*model.Task, 0, len(tpl.Tasks))
	for _, tt := range tpl.Tasks {
		code := planner.NextTaskCode(codes)
		codes = append(codes, code)

		created = append(created, &model.Task{
			ProjectID:        projectID,
			Code:             code,
			Description:      tt.Description,
			DurationDays:     tt.DurationDays,
			Phase:            tt.Phase,
			Priority:         tt.Priority,
			Owner:            tt.Owner,
			Status:           model.TaskNotStarted,
			ApprovalRequired: model.ApprovalNo,
		})
	}

	if len(created) > 0 {
		if err := s.tasks.CreateBatch(ctx, created); err != nil {
			return 0, err
		}
	}

	if s.pub != nil {
		if err := s.pub.PublishJSON(ctx, "project.seeded", map[string]any{
			"project_id":  projectID,
			"template_id": templateID,
			"task_count":  len(created),
		}); err != nil {
			s.log.Sugar().Warnw("publish project.seeded", "project_id", projectID, "err", err)
		}
	}
	return len(created), nil
}
