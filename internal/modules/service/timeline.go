package service

import (
	"context"
	"time"

	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/repo"
	"github.com/planhub-io/planhub/internal/pkg/metrics"
	"github.com/planhub-io/planhub/internal/planner"
)

type TimelineService interface {
	Build(ctx context.Context, in BuildTimelineInput) (planner.Timeline, error)
	PhaseGroups(ctx context.Context, projectID uint) ([]planner.PhaseGroup, error)
}

type timelineService struct {
	tasks    repo.TaskRepo
	projects repo.ProjectRepo
}

func NewTimelineService(tasks repo.TaskRepo, projects repo.ProjectRepo) TimelineService {
	return &timelineService{tasks: tasks, projects: projects}
}

type BuildTimelineInput struct {
	// ProjectID scopes the timeline to one project; nil means every
	// project.
	ProjectID *uint

	// CriticalTaskIDs marks rows for critical-path highlighting.
	CriticalTaskIDs []uint
}

// Build derives the Gantt projection fresh from storage on every call;
// nothing about it is cached or persisted.
func (s *timelineService) Build(ctx context.Context, in BuildTimelineInput) (planner.Timeline, error) {
	start := time.Now()

	var projects []model.Project
	var tasks []model.Task

	if in.ProjectID != nil {
		p, err := s.projects.Get(ctx, *in.ProjectID)
		if err != nil {
			return planner.Timeline{}, mapNotFound(err, "project %d not found", *in.ProjectID)
		}
		projects = []model.Project{*p}
		if tasks, err = s.tasks.ListByProject(ctx, *in.ProjectID); err != nil {
			return planner.Timeline{}, err
		}
	} else {
		var err error
		if projects, err = s.projects.List(ctx); err != nil {
			return planner.Timeline{}, err
		}
		if tasks, err = s.tasks.ListAll(ctx); err != nil {
			return planner.Timeline{}, err
		}
	}

	byProject := make(map[uint][]model.Task, len(projects))
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}

	critical := make(map[uint]bool, len(in.CriticalTaskIDs))
	for _, id := range in.CriticalTaskIDs {
		critical[id] = true
	}

	tl := planner.BuildTimeline(projects, byProject, planner.TimelineOptions{
		CriticalTaskIDs: critical,
	})
	metrics.TimelineBuildDuration.Observe(time.Since(start).Seconds())
	return tl, nil
}

func (s *timelineService) PhaseGroups(ctx context.Context, projectID uint) ([]planner.PhaseGroup, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, mapNotFound(err, "project %d not found", projectID)
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return planner.GroupByPhase(tasks), nil
}
