package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"cosspos/internal/model"
	"cosspos/internal/money"
	"cosspos/internal/pago"
	"cosspos/internal/repository"
)

// CierreResultado is the reconciliation outcome returned on shift close.
type CierreResultado struct {
	Turno      *model.Turno
	Esperado   money.Centavos
	Contado    money.Centavos
	Diferencia money.Centavos
}

// CajaService manages the cash-register session lifecycle and is the only
// writer of turno running totals.
type CajaService struct {
	turnos repository.TurnoRepository
}

func NewCajaService(turnos repository.TurnoRepository) *CajaService {
	return &CajaService{turnos: turnos}
}

// Abrir opens a new turno. Only one may be open at a time; the check here
// plus a partial unique index on estado='ABIERTO' guard the invariant.
func (s *CajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, montoInicial money.Centavos) (*model.Turno, error) {
	if montoInicial < 0 {
		return nil, ErrMontoInvalido
	}
	if _, err := s.turnos.FindAbierto(ctx); err == nil {
		return nil, ErrTurnoYaAbierto
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	turno := &model.Turno{
		Estado:       model.TurnoAbierto,
		UsuarioID:    usuarioID,
		MontoInicial: montoInicial,
		OpenedAt:     time.Now(),
	}
	if err := s.turnos.Create(ctx, turno); err != nil {
		return nil, err
	}
	log.Info().
		Str("turno_id", turno.ID.String()).
		Str("monto_inicial", montoInicial.String()).
		Msg("turno de caja abierto")
	return turno, nil
}

// TurnoAbierto returns the currently open turno or ErrSinTurnoAbierto.
func (s *CajaService) TurnoAbierto(ctx context.Context) (*model.Turno, error) {
	turno, err := s.turnos.FindAbierto(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSinTurnoAbierto
	}
	return turno, err
}

// Cerrar freezes the open turno: expected cash derives from the running
// totals (inicial + efectivo − gastos), the counted amount comes from the
// physical drawer, and the difference is recorded without judgement.
func (s *CajaService) Cerrar(ctx context.Context, contado money.Centavos, notas string) (*CierreResultado, error) {
	if contado < 0 {
		return nil, ErrMontoInvalido
	}
	turno, err := s.TurnoAbierto(ctx)
	if err != nil {
		return nil, err
	}
	esperado := turno.EsperadoEnCaja()
	diferencia := contado - esperado

	turno.EfectivoEsperado = &esperado
	turno.EfectivoContado = &contado
	turno.Diferencia = &diferencia
	if notas != "" {
		turno.NotasCierre = &notas
	}
	turno.Estado = model.TurnoCerrado
	if err := s.turnos.Cerrar(ctx, turno); err != nil {
		return nil, err
	}
	log.Info().
		Str("turno_id", turno.ID.String()).
		Str("esperado", esperado.String()).
		Str("contado", contado.String()).
		Str("diferencia", diferencia.String()).
		Msg("turno de caja cerrado")
	return &CierreResultado{
		Turno:      turno,
		Esperado:   esperado,
		Contado:    contado,
		Diferencia: diferencia,
	}, nil
}

// RegistrarGasto records a drawer expense against the open turno. The gasto
// row and the total_gastos increment commit together.
func (s *CajaService) RegistrarGasto(ctx context.Context, monto money.Centavos, descripcion, actor string) (*model.Gasto, error) {
	if monto <= 0 {
		return nil, ErrMontoInvalido
	}
	turno, err := s.TurnoAbierto(ctx)
	if err != nil {
		return nil, err
	}
	gasto := &model.Gasto{
		TurnoID:     turno.ID,
		Monto:       monto,
		Descripcion: descripcion,
		Actor:       actor,
	}
	err = runTx(ctx, s.turnos.DB(), func(tx *gorm.DB) error {
		if err := s.turnos.CreateGastoTx(ctx, tx, gasto); err != nil {
			return err
		}
		return s.turnos.IncrementarTotalesTx(ctx, tx, turno.ID, repository.IncrementoTurno{Gastos: monto})
	})
	if err != nil {
		return nil, err
	}
	return gasto, nil
}

// ContribuirTx applies a sale's classified payment contribution to the turno
// inside the caller's transaction. Negative contributions (voids) flow
// through the same path.
func (s *CajaService) ContribuirTx(ctx context.Context, tx *gorm.DB, turnoID uuid.UUID, c pago.Contribucion, items int) error {
	return s.turnos.IncrementarTotalesTx(ctx, tx, turnoID, repository.IncrementoTurno{
		Efectivo: c.Efectivo,
		Digital:  c.Digital,
		Tarjeta:  c.Tarjeta,
		Banco:    c.Banco,
		Otros:    c.Otros,
		Total:    c.Total(),
		Items:    items,
	})
}

// ReembolsarTx records a cash refund as an expense inside the caller's
// transaction (advance returned on order cancellation).
func (s *CajaService) ReembolsarTx(ctx context.Context, tx *gorm.DB, turnoID uuid.UUID, monto money.Centavos, descripcion, actor string) error {
	if monto <= 0 {
		return ErrMontoInvalido
	}
	gasto := &model.Gasto{
		TurnoID:     turnoID,
		Monto:       monto,
		Descripcion: descripcion,
		Actor:       actor,
	}
	if err := s.turnos.CreateGastoTx(ctx, tx, gasto); err != nil {
		return err
	}
	return s.turnos.IncrementarTotalesTx(ctx, tx, turnoID, repository.IncrementoTurno{Gastos: monto})
}

// Detalle returns a turno with its expenses loaded.
func (s *CajaService) Detalle(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	return s.turnos.FindByID(ctx, id)
}

// Historial lists past turnos, newest first.
func (s *CajaService) Historial(ctx context.Context, limit, offset int) ([]model.Turno, error) {
	return s.turnos.List(ctx, limit, offset)
}
