package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cosspos/internal/model"
)

// PedidoRepository persists deferred sales (orders and live-sale bags).
type PedidoRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	UpdateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filtro PedidoFiltro) ([]model.Pedido, error)
	DB() *gorm.DB
}

// PedidoFiltro narrows pedido listings.
type PedidoFiltro struct {
	Estado     string
	Plataforma string
	SoloBolsas bool
	Limit      int
	Offset     int
}

type pedidoRepo struct {
	db *gorm.DB
}

func NewPedidoRepository(db *gorm.DB) PedidoRepository {
	return &pedidoRepo{db: db}
}

func (r *pedidoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) UpdateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Save(p).Error
}

func (r *pedidoRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.Pedido{}, "id = ?", id).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) List(ctx context.Context, filtro PedidoFiltro) ([]model.Pedido, error) {
	q := r.db.WithContext(ctx).Model(&model.Pedido{})
	if filtro.Estado != "" {
		q = q.Where("estado = ?", filtro.Estado)
	}
	if filtro.Plataforma != "" {
		q = q.Where("plataforma = ?", filtro.Plataforma)
	}
	if filtro.SoloBolsas {
		q = q.Where("es_bolsa_abierta = true")
	}
	if filtro.Limit <= 0 {
		filtro.Limit = 50
	}
	var pedidos []model.Pedido
	err := q.Order("created_at desc").Limit(filtro.Limit).Offset(filtro.Offset).Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
