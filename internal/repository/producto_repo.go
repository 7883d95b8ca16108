package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cosspos/internal/model"
)

// ProductoRepository abstracts product persistence. UpdateStockTx is the only
// stock writer and always runs inside the caller's transaction alongside the
// kardex row.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	List(ctx context.Context, filtro ProductoFiltro) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	UpdateStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) error
	ListStockBajo(ctx context.Context) ([]model.Producto, error)
	DB() *gorm.DB
}

// ProductoFiltro narrows List results. Zero value lists active products.
type ProductoFiltro struct {
	Busqueda       string
	DepartamentoID *uuid.UUID
	IncluirBajas   bool
	Limit          int
	Offset         int
}

type productoRepo struct {
	db *gorm.DB
}

func NewProductoRepository(db *gorm.DB) ProductoRepository {
	return &productoRepo{db: db}
}

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

func (r *productoRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	if err := tx.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Where("codigos::jsonb @> ?", fmt.Sprintf("[%q]", codigo)).
		Where("activo = true").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filtro ProductoFiltro) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if !filtro.IncluirBajas {
		q = q.Where("activo = true")
	}
	if filtro.Busqueda != "" {
		like := "%" + filtro.Busqueda + "%"
		q = q.Where("nombre ILIKE ? OR codigos::text ILIKE ?", like, like)
	}
	if filtro.DepartamentoID != nil {
		q = q.Where("departamento_id = ?", *filtro.DepartamentoID)
	}
	if filtro.Limit > 0 {
		q = q.Limit(filtro.Limit).Offset(filtro.Offset)
	}
	var productos []model.Producto
	err := q.Order("nombre asc").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("activo", true).Error
}

// UpdateStockTx applies an additive delta so concurrent writers never clobber
// each other's update.
func (r *productoRepo) UpdateStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("stock_actual", gorm.Expr("stock_actual + ?", delta)).Error
}

func (r *productoRepo) ListStockBajo(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock_actual <= stock_minimo").
		Order("stock_actual asc").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
