package repo

import (
	"context"

	"github.com/planhub-io/planhub/internal/modules/model"
	"gorm.io/gorm"
)

type RiskRepo interface {
	Create(ctx context.Context, rk *model.Risk) error
	Get(ctx context.Context, id uint) (*model.Risk, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Risk, error)
	Update(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type riskRepo struct{ db *gorm.DB }

func NewRiskRepo(db *gorm.DB) RiskRepo {
	return &riskRepo{db: db}
}

func (r *riskRepo) Create(ctx context.Context, rk *model.Risk) error {
	return r.db.WithContext(ctx).Create(rk).Error
}

func (r *riskRepo) Get(ctx context.Context, id uint) (*model.Risk, error) {
	var rk model.Risk
	if err := r.db.WithContext(ctx).First(&rk, id).Error; err != nil {
		return nil, err
	}
	return &rk, nil
}

func (r *riskRepo) ListByProject(ctx context.Context, projectID uint) ([]model.Risk, error) {
	var risks []model.Risk
	return risks, r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id ASC").Find(&risks).Error
}

func (r *riskRepo) Update(ctx context.Context, id uint, changes map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Risk{}).Where("id = ?", id).Updates(changes).Error
}

func (r *riskRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Risk{}, id).Error
}
