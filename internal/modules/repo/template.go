package repo

import (
	"context"

	"github.com/planhub-io/planhub/internal/modules/model"
	"gorm.io/gorm"
)

type TemplateRepo interface {
	Create(ctx context.Context, t *model.Template) error
	Get(ctx context.Context, id uint) (*model.Template, error)
	List(ctx context.Context) ([]model.Template, error)
	Delete(ctx context.Context, id uint) error
}

type templateRepo struct{ db *gorm.DB }

func NewTemplateRepo(db *gorm.DB) TemplateRepo {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, t *model.Template) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *templateRepo) Get(ctx context.Context, id uint) (*model.Template, error) {
	var t model.Template
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *templateRepo) List(ctx context.Context) ([]model.Template, error) {
	var templates []model.Template
	return templates, r.db.WithContext(ctx).Order("id ASC").Find(&templates).Error
}

func (r *templateRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Template{}, id).Error
}
