package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cosspos/internal/model"
)

type DepartamentoRepository interface {
	Create(ctx context.Context, d *model.Departamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Departamento, error)
	List(ctx context.Context) ([]model.Departamento, error)
	Update(ctx context.Context, d *model.Departamento) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type departamentoRepo struct {
	db *gorm.DB
}

func NewDepartamentoRepository(db *gorm.DB) DepartamentoRepository {
	return &departamentoRepo{db: db}
}

func (r *departamentoRepo) Create(ctx context.Context, d *model.Departamento) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *departamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Departamento, error) {
	var d model.Departamento
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departamentoRepo) List(ctx context.Context) ([]model.Departamento, error) {
	var deps []model.Departamento
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre asc").Find(&deps).Error
	return deps, err
}

func (r *departamentoRepo) Update(ctx context.Context, d *model.Departamento) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *departamentoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Departamento{}).
		Where("id = ?", id).
		Update("activo", false).Error
}
