package repo

import (
	"context"

	"github.com/planhub-io/planhub/internal/modules/model"
	"gorm.io/gorm"
)

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task) error
	CreateBatch(ctx context.Context, tasks []*model.Task) error
	Get(ctx context.Context, id uint) (*model.Task, error)
	Update(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error
	ListByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	ListAll(ctx context.Context) ([]model.Task, error)
	ListCodes(ctx context.Context, projectID uint) ([]string, error)
	BulkUpdate(ctx context.Context, projectID uint, ids []uint, changes map[string]any) (int64, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// CreateBatch creates tasks in one transaction, preserving slice order so
// allocated codes stay sequential (template seeding).
func (r *taskRepo) CreateBatch(ctx context.Context, tasks []*model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range tasks {
			if err := tx.Create(t).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *taskRepo) Get(ctx context.Context, id uint) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) Update(ctx context.Context, id uint, changes map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(changes).Error
}

func (r *taskRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task
	return tasks, r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("code ASC").Find(&tasks).Error
}

func (r *taskRepo) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	return tasks, r.db.WithContext(ctx).Order("project_id ASC, code ASC").Find(&tasks).Error
}

// ListCodes returns every task code currently present in the project, for
// the allocator's max scan.
func (r *taskRepo) ListCodes(ctx context.Context, projectID uint) ([]string, error) {
	var codes []string
	return codes, r.db.WithContext(ctx).Model(&model.Task{}).
		Where("project_id = ?", projectID).Pluck("code", &codes).Error
}

// BulkUpdate applies the same changes to every listed task that belongs
// to the project. Ids outside the project simply do not match; the
// returned count reflects rows actually updated so callers can detect
// partial application. The whole batch runs in one transaction.
func (r *taskRepo) BulkUpdate(ctx context.Context, projectID uint, ids []uint, changes map[string]any) (int64, error) {
	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).
			Where("project_id = ? AND id IN ?", projectID, ids).
			Updates(changes)
		if res.Error != nil {
			return res.Error
		}
		updated = res.RowsAffected
		return nil
	})
	return updated, err
}
