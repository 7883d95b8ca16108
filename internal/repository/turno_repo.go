package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cosspos/internal/model"
	"cosspos/internal/money"
)

// IncrementoTurno is the additive delta a committed sale (or expense, or
// partial payment) applies to the open turno's running totals.
type IncrementoTurno struct {
	Efectivo money.Centavos
	Digital  money.Centavos
	Tarjeta  money.Centavos
	Banco    money.Centavos
	Otros    money.Centavos
	Total    money.Centavos
	Items    int
	Gastos   money.Centavos
}

// TurnoRepository persists cash-register sessions and their expenses.
type TurnoRepository interface {
	Create(ctx context.Context, t *model.Turno) error
	FindAbierto(ctx context.Context) (*model.Turno, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	IncrementarTotalesTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, inc IncrementoTurno) error
	Cerrar(ctx context.Context, t *model.Turno) error
	CreateGastoTx(ctx context.Context, tx *gorm.DB, g *model.Gasto) error
	ListGastos(ctx context.Context, turnoID uuid.UUID) ([]model.Gasto, error)
	List(ctx context.Context, limit, offset int) ([]model.Turno, error)
	DB() *gorm.DB
}

type turnoRepo struct {
	db *gorm.DB
}

func NewTurnoRepository(db *gorm.DB) TurnoRepository {
	return &turnoRepo{db: db}
}

func (r *turnoRepo) Create(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) FindAbierto(ctx context.Context) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.TurnoAbierto).
		Order("opened_at desc").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	if err := r.db.WithContext(ctx).Preload("Gastos").First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// IncrementarTotalesTx bumps the running totals with column-level additive
// expressions; two concurrent sales both land even if they read the turno at
// the same instant.
func (r *turnoRepo) IncrementarTotalesTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, inc IncrementoTurno) error {
	updates := map[string]interface{}{}
	if inc.Efectivo != 0 {
		updates["ventas_efectivo"] = gorm.Expr("ventas_efectivo + ?", inc.Efectivo)
	}
	if inc.Digital != 0 {
		updates["ventas_digital"] = gorm.Expr("ventas_digital + ?", inc.Digital)
	}
	if inc.Tarjeta != 0 {
		updates["ventas_tarjeta"] = gorm.Expr("ventas_tarjeta + ?", inc.Tarjeta)
	}
	if inc.Banco != 0 {
		updates["ventas_banco"] = gorm.Expr("ventas_banco + ?", inc.Banco)
	}
	if inc.Otros != 0 {
		updates["ventas_otros"] = gorm.Expr("ventas_otros + ?", inc.Otros)
	}
	if inc.Total != 0 {
		updates["total_ventas"] = gorm.Expr("total_ventas + ?", inc.Total)
	}
	if inc.Items != 0 {
		updates["items_vendidos"] = gorm.Expr("items_vendidos + ?", inc.Items)
	}
	if inc.Gastos != 0 {
		updates["total_gastos"] = gorm.Expr("total_gastos + ?", inc.Gastos)
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Model(&model.Turno{}).
		Where("id = ? AND estado = ?", id, model.TurnoAbierto).
		Updates(updates).Error
}

// Cerrar persists the closing snapshot. The estado guard makes a double
// close a no-op at the database level.
func (r *turnoRepo) Cerrar(ctx context.Context, t *model.Turno) error {
	now := time.Now()
	t.ClosedAt = &now
	return r.db.WithContext(ctx).Model(&model.Turno{}).
		Where("id = ? AND estado = ?", t.ID, model.TurnoAbierto).
		Updates(map[string]interface{}{
			"estado":            model.TurnoCerrado,
			"efectivo_esperado": t.EfectivoEsperado,
			"efectivo_contado":  t.EfectivoContado,
			"diferencia":        t.Diferencia,
			"notas_cierre":      t.NotasCierre,
			"closed_at":         t.ClosedAt,
		}).Error
}

func (r *turnoRepo) CreateGastoTx(ctx context.Context, tx *gorm.DB, g *model.Gasto) error {
	return tx.WithContext(ctx).Create(g).Error
}

func (r *turnoRepo) ListGastos(ctx context.Context, turnoID uuid.UUID) ([]model.Gasto, error) {
	var gastos []model.Gasto
	err := r.db.WithContext(ctx).
		Where("turno_id = ?", turnoID).
		Order("created_at asc").
		Find(&gastos).Error
	return gastos, err
}

func (r *turnoRepo) List(ctx context.Context, limit, offset int) ([]model.Turno, error) {
	if limit <= 0 {
		limit = 30
	}
	var turnos []model.Turno
	err := r.db.WithContext(ctx).
		Order("opened_at desc").
		Limit(limit).Offset(offset).
		Find(&turnos).Error
	return turnos, err
}

func (r *turnoRepo) DB() *gorm.DB { return r.db }
