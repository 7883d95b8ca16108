package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cosspos/internal/model"
)

// MovimientoStockRepository persists kardex entries. The ledger is
// append-only; there is deliberately no update or delete.
type MovimientoStockRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoStock) error
	List(ctx context.Context, filtro MovimientoFiltro) ([]model.MovimientoStock, error)
}

// MovimientoFiltro narrows kardex listings.
type MovimientoFiltro struct {
	ProductoID *uuid.UUID
	Tipo       string
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
	Offset     int
}

type movimientoStockRepo struct {
	db *gorm.DB
}

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) CreateTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *movimientoStockRepo) List(ctx context.Context, filtro MovimientoFiltro) ([]model.MovimientoStock, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoStock{}).Preload("Producto")
	if filtro.ProductoID != nil {
		q = q.Where("producto_id = ?", *filtro.ProductoID)
	}
	if filtro.Tipo != "" {
		q = q.Where("tipo = ?", filtro.Tipo)
	}
	if filtro.Desde != nil {
		q = q.Where("created_at >= ?", *filtro.Desde)
	}
	if filtro.Hasta != nil {
		q = q.Where("created_at < ?", *filtro.Hasta)
	}
	if filtro.Limit <= 0 {
		filtro.Limit = 100
	}
	var movs []model.MovimientoStock
	err := q.Order("created_at desc").Limit(filtro.Limit).Offset(filtro.Offset).Find(&movs).Error
	return movs, err
}
