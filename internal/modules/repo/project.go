package repo

import (
	"context"

	"github.com/planhub-io/planhub/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id uint) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) Get(ctx context.Context, id uint) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	return projects, r.db.WithContext(ctx).Order("id ASC").Find(&projects).Error
}

func (r *projectRepo) Update(ctx context.Context, id uint, changes map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Updates(changes).Error
}

// Delete removes the project; tasks and risks go with it via the cascade
// constraint.
func (r *projectRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Project{}, id).Error
}
