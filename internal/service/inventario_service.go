package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"cosspos/internal/model"
	"cosspos/internal/repository"
)

var (
	ErrTipoMovimiento   = errors.New("tipo de movimiento inválido")
	ErrCantidadInvalida = errors.New("la cantidad del movimiento no puede ser cero")
	ErrSignoMovimiento  = errors.New("el signo de la cantidad no corresponde al tipo de movimiento")
)

// MovimientoInput describes one ledger entry to apply. Cantidad is signed:
// ENTRADA requires positive, SALIDA requires negative, AJUSTE accepts both.
type MovimientoInput struct {
	ProductoID   uuid.UUID
	Tipo         string
	Cantidad     int
	Motivo       string
	Actor        string
	ReferenciaID *uuid.UUID
}

// InventarioService owns the kardex: every stock change flows through it so
// the movement row and the product counter always land together.
type InventarioService struct {
	productos   repository.ProductoRepository
	movimientos repository.MovimientoStockRepository
}

func NewInventarioService(p repository.ProductoRepository, m repository.MovimientoStockRepository) *InventarioService {
	return &InventarioService{productos: p, movimientos: m}
}

func validarMovimiento(in MovimientoInput) error {
	if in.Cantidad == 0 {
		return ErrCantidadInvalida
	}
	switch in.Tipo {
	case model.MovimientoEntrada:
		if in.Cantidad < 0 {
			return ErrSignoMovimiento
		}
	case model.MovimientoSalida:
		if in.Cantidad > 0 {
			return ErrSignoMovimiento
		}
	case model.MovimientoAjuste:
		// either sign
	default:
		return ErrTipoMovimiento
	}
	return nil
}

// AplicarMovimientoTx applies one movement inside the caller's transaction.
// It re-reads the product within the tx so StockAnterior reflects the row at
// write time, writes the immutable kardex entry, then bumps stock_actual
// additively. Negative resulting stock is allowed here; sale paths enforce
// sufficiency before committing.
func (s *InventarioService) AplicarMovimientoTx(ctx context.Context, tx *gorm.DB, in MovimientoInput) (*model.MovimientoStock, error) {
	if err := validarMovimiento(in); err != nil {
		return nil, err
	}
	producto, err := s.productos.FindByIDTx(ctx, tx, in.ProductoID)
	if err != nil {
		return nil, err
	}
	mov := &model.MovimientoStock{
		ProductoID:    in.ProductoID,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		StockAnterior: producto.StockActual,
		StockNuevo:    producto.StockActual + in.Cantidad,
		Motivo:        in.Motivo,
		Actor:         in.Actor,
		ReferenciaID:  in.ReferenciaID,
	}
	if err := s.movimientos.CreateTx(ctx, tx, mov); err != nil {
		return nil, err
	}
	if err := s.productos.UpdateStockTx(ctx, tx, in.ProductoID, in.Cantidad); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegistrarMovimiento applies a standalone manual movement (intake or
// adjustment) in its own transaction.
func (s *InventarioService) RegistrarMovimiento(ctx context.Context, in MovimientoInput) (*model.MovimientoStock, error) {
	var mov *model.MovimientoStock
	err := runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		var err error
		mov, err = s.AplicarMovimientoTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("producto_id", in.ProductoID.String()).
		Str("tipo", in.Tipo).
		Int("cantidad", in.Cantidad).
		Str("actor", in.Actor).
		Msg("movimiento de stock registrado")
	return mov, nil
}

// ListarMovimientos returns kardex entries, newest first.
func (s *InventarioService) ListarMovimientos(ctx context.Context, filtro repository.MovimientoFiltro) ([]model.MovimientoStock, error) {
	return s.movimientos.List(ctx, filtro)
}
