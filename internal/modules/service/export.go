package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/planhub-io/planhub/internal/infra/blob"
	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/repo"
	"go.uber.org/zap"
)

type ExportService interface {
	ExportCSV(ctx context.Context, projectID uint) (*ExportResult, error)
}

type ExportResult struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	TaskCount int    `json:"task_count"`
}

type exportService struct {
	tasks    repo.TaskRepo
	projects repo.ProjectRepo
	blob     *blob.S3Deps
	log      *zap.Logger
	presign  func() time.Duration
}

func NewExportService(tasks repo.TaskRepo, projects repo.ProjectRepo, b *blob.S3Deps, log *zap.Logger, presign func() time.Duration) ExportService {
	return &exportService{
		tasks:    tasks,
		projects: projects,
		blob:     b,
		log:      log,
		presign:  presign,
	}
}

var exportHeader = []string{
	"Task ID", "Description", "Start Date", "Due Date", "Duration (days)",
	"Dependency", "Owner", "Status", "Priority", "Phase",
	"Budget", "Actual Budget", "Approval Required", "Approver",
	"Completion %", "Notes",
}

// ExportCSV renders the project's task table as CSV, stores it in the
// export bucket and hands back a presigned download URL.
func (s *exportService) ExportCSV(ctx context.Context, projectID uint) (*ExportResult, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, mapNotFound(err, "project %d not found", projectID)
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i := range tasks {
		if err := w.Write(exportRecord(&tasks[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%d/%s/%s.csv",
		p.ID, time.Now().UTC().Format("2006/01/02"), uuid.NewString())

	if err := s.blob.UploadBytes(ctx, key, "text/csv", buf.Bytes()); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.blob.PresignGet(ctx, key, s.presign())
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	s.log.Sugar().Infow("exported project plan", "project_id", p.ID, "tasks", len(tasks), "key", key)
	return &ExportResult{Key: key, URL: url, TaskCount: len(tasks)}, nil
}

func exportRecord(t *model.Task) []string {
	return []string{
		t.Code,
		t.Description,
		formatDate(t.StartDate),
		formatDate(t.DueDate),
		formatIntPtr(t.DurationDays),
		t.Dependency,
		t.Owner,
		string(t.Status),
		string(t.Priority),
		t.Phase,
		strconv.FormatInt(t.BudgetCents, 10),
		strconv.FormatInt(t.ActualBudgetCents, 10),
		string(t.ApprovalRequired),
		t.Approver,
		strconv.Itoa(t.CompletionPercent),
		t.Notes,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatIntPtr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
