package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cosspos/internal/model"
)

// VentaRepository persists committed sales. Rows are never deleted; an
// anulación flips estado and records motive/timestamp.
type VentaRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filtro VentaFiltro) ([]model.Venta, error)
	UpdateAnulacionTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, motivo string, cuando time.Time) error
	DB() *gorm.DB
}

// VentaFiltro narrows sale listings.
type VentaFiltro struct {
	TurnoID *uuid.UUID
	Estado  string
	Desde   *time.Time
	Hasta   *time.Time
	Limit   int
	Offset  int
}

type ventaRepo struct {
	db *gorm.DB
}

func NewVentaRepository(db *gorm.DB) VentaRepository {
	return &ventaRepo{db: db}
}

func (r *ventaRepo) CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context, filtro VentaFiltro) ([]model.Venta, error) {
	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filtro.TurnoID != nil {
		q = q.Where("turno_id = ?", *filtro.TurnoID)
	}
	if filtro.Estado != "" {
		q = q.Where("estado = ?", filtro.Estado)
	}
	if filtro.Desde != nil {
		q = q.Where("created_at >= ?", *filtro.Desde)
	}
	if filtro.Hasta != nil {
		q = q.Where("created_at < ?", *filtro.Hasta)
	}
	if filtro.Limit <= 0 {
		filtro.Limit = 50
	}
	var ventas []model.Venta
	err := q.Order("created_at desc").Limit(filtro.Limit).Offset(filtro.Offset).Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) UpdateAnulacionTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, motivo string, cuando time.Time) error {
	return tx.WithContext(ctx).Model(&model.Venta{}).
		Where("id = ? AND estado = ?", id, model.VentaCompletada).
		Updates(map[string]interface{}{
			"estado":           model.VentaAnulada,
			"motivo_anulacion": motivo,
			"anulada_en":       cuando,
		}).Error
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
