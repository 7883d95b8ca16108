package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"cosspos/internal/model"
	"cosspos/internal/money"
	"cosspos/internal/pago"
	"cosspos/internal/repository"
)

// PedidoInput creates a deferred sale: a social-media order or a live-sale
// bag. Anticipo, when present, is collected immediately against the open
// turno.
type PedidoInput struct {
	Items            []ItemInput
	ClienteNombre    string
	ClienteTelefono  string
	ClienteDireccion string
	Plataforma       string
	EsBolsaAbierta   bool
	Anticipo         *PagoInput
	UsuarioID        uuid.UUID
	Actor            string
}

// PedidoService manages the pedido lifecycle. Stock is reserved the moment a
// line enters a pedido and released on removal or cancellation; finalization
// converts the reservation into the sale without touching stock again.
type PedidoService struct {
	pedidos    repository.PedidoRepository
	productos  repository.ProductoRepository
	ventas     repository.VentaRepository
	caja       *CajaService
	inventario *InventarioService
}

func NewPedidoService(pe repository.PedidoRepository, pr repository.ProductoRepository, v repository.VentaRepository, caja *CajaService, inv *InventarioService) *PedidoService {
	return &PedidoService{pedidos: pe, productos: pr, ventas: v, caja: caja, inventario: inv}
}

// Crear opens a pedido, reserving stock for every catalog line. An optional
// anticipo is classified and contributed to the open turno in the same
// transaction.
func (s *PedidoService) Crear(ctx context.Context, in PedidoInput) (*model.Pedido, error) {
	lineas, err := resolverLineas(ctx, s.productos, in.Items, true)
	if err != nil {
		return nil, err
	}
	pedido := &model.Pedido{
		ID:               uuid.New(),
		Items:            lineas,
		ClienteNombre:    in.ClienteNombre,
		ClienteTelefono:  in.ClienteTelefono,
		ClienteDireccion: in.ClienteDireccion,
		Plataforma:       in.Plataforma,
		EsBolsaAbierta:   in.EsBolsaAbierta,
		Estado:           model.PedidoPendiente,
	}
	pedido.RecalcularTotales()

	var turno *model.Turno
	var contribucion pago.Contribucion
	if in.Anticipo != nil && in.Anticipo.Monto > 0 {
		if in.Anticipo.Monto > pedido.Total {
			return nil, pago.ErrSobrepagoNoPermitido
		}
		turno, err = s.caja.TurnoAbierto(ctx)
		if err != nil {
			return nil, err
		}
		pedido.Anticipo = in.Anticipo.Monto
		pedido.Saldo = pedido.Total - pedido.Anticipo
		contribucion.Sumar(pago.Clasificar(in.Anticipo.Etiqueta, in.Anticipo.Clase), in.Anticipo.Monto)
	}

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		if err := s.pedidos.CreateTx(ctx, tx, pedido); err != nil {
			return err
		}
		if err := s.reservarTx(ctx, tx, pedido.ID, lineas, in.Actor); err != nil {
			return err
		}
		if turno != nil {
			return s.caja.ContribuirTx(ctx, tx, turno.ID, contribucion, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("pedido_id", pedido.ID.String()).
		Str("total", pedido.Total.String()).
		Str("anticipo", pedido.Anticipo.String()).
		Bool("bolsa", pedido.EsBolsaAbierta).
		Msg("pedido creado")
	return pedido, nil
}

// AgregarItems adds lines to a pending pedido, reserving their stock. Lines
// for a product already in the pedido merge into it, keeping the original
// price snapshot.
func (s *PedidoService) AgregarItems(ctx context.Context, pedidoID uuid.UUID, items []ItemInput, actor string) (*model.Pedido, error) {
	pedido, err := s.pendiente(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	nuevas, err := resolverLineas(ctx, s.productos, items, true)
	if err != nil {
		return nil, err
	}
	for _, n := range nuevas {
		merged := false
		if !n.Generico {
			for i := range pedido.Items {
				if !pedido.Items[i].Generico && pedido.Items[i].ProductoID == n.ProductoID {
					pedido.Items[i].Cantidad += n.Cantidad
					merged = true
					break
				}
			}
		}
		if !merged {
			pedido.Items = append(pedido.Items, n)
		}
	}
	pedido.RecalcularTotales()

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		if err := s.reservarTx(ctx, tx, pedido.ID, nuevas, actor); err != nil {
			return err
		}
		return s.pedidos.UpdateTx(ctx, tx, pedido)
	})
	if err != nil {
		return nil, err
	}
	return pedido, nil
}

// QuitarItem removes the line at idx and returns its reserved stock. Removal
// that would leave the total below the already-collected anticipo is
// rejected; the anticipo would have to be refunded first.
func (s *PedidoService) QuitarItem(ctx context.Context, pedidoID uuid.UUID, idx int, actor string) (*model.Pedido, error) {
	pedido, err := s.pendiente(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(pedido.Items) {
		return nil, pago.ErrEntradaInvalida
	}
	quitada := pedido.Items[idx]
	pedido.Items = append(pedido.Items[:idx], pedido.Items[idx+1:]...)
	pedido.RecalcularTotales()
	if pedido.Saldo < 0 {
		return nil, ErrMontoInvalido
	}

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		if !quitada.Generico {
			_, err := s.inventario.AplicarMovimientoTx(ctx, tx, MovimientoInput{
				ProductoID:   quitada.ProductoID,
				Tipo:         model.MovimientoEntrada,
				Cantidad:     quitada.Cantidad,
				Motivo:       "Item retirado de pedido",
				Actor:        actor,
				ReferenciaID: &pedido.ID,
			})
			if err != nil {
				return err
			}
		}
		return s.pedidos.UpdateTx(ctx, tx, pedido)
	})
	if err != nil {
		return nil, err
	}
	return pedido, nil
}

// AbonoParcial collects a partial payment against the saldo. The amount may
// never exceed the outstanding balance.
func (s *PedidoService) AbonoParcial(ctx context.Context, pedidoID uuid.UUID, p PagoInput) (*model.Pedido, error) {
	pedido, err := s.pendiente(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if p.Monto <= 0 {
		return nil, ErrMontoInvalido
	}
	if p.Monto > pedido.Saldo {
		return nil, pago.ErrSobrepagoNoPermitido
	}
	turno, err := s.caja.TurnoAbierto(ctx)
	if err != nil {
		return nil, err
	}
	pedido.Anticipo += p.Monto
	pedido.Saldo = pedido.Total - pedido.Anticipo

	var contribucion pago.Contribucion
	contribucion.Sumar(pago.Clasificar(p.Etiqueta, p.Clase), p.Monto)

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		if err := s.pedidos.UpdateTx(ctx, tx, pedido); err != nil {
			return err
		}
		return s.caja.ContribuirTx(ctx, tx, turno.ID, contribucion, 0)
	})
	if err != nil {
		return nil, err
	}
	return pedido, nil
}

// Finalizar converts the pedido into a committed venta: the saldo is
// tendered now, the venta inherits the reserved stock (no second decrement),
// and the pedido row is removed in the same transaction.
func (s *PedidoService) Finalizar(ctx context.Context, pedidoID uuid.UUID, pagos []PagoInput, efectivoRecibido money.Centavos, usuarioID uuid.UUID, actor string) (*model.Venta, error) {
	pedido, err := s.pendiente(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	turno, err := s.caja.TurnoAbierto(ctx)
	if err != nil {
		return nil, err
	}
	res, err := armarTender(pedido.Saldo, pagos, efectivoRecibido)
	if err != nil {
		return nil, err
	}
	contribucion := pago.Contribuir(res.Entradas, res.Vuelto)

	metodo := res.Metodo
	if pedido.Anticipo > 0 {
		// paid across more than one moment, even if each leg was single-method
		metodo = pago.MetodoMixto
	}
	venta := &model.Venta{
		ID:            uuid.New(),
		TurnoID:       turno.ID,
		UsuarioID:     usuarioID,
		Items:         pedido.Items,
		Subtotal:      pedido.Subtotal,
		Total:         pedido.Total,
		Metodo:        metodo,
		Pagos:         pagosDeEntradas(res.Entradas),
		MontoRecibido: pedido.Anticipo + res.Recibido,
		Vuelto:        res.Vuelto,
		Estado:        model.VentaCompletada,
		PedidoID:      &pedido.ID,
	}

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		if err := s.ventas.CreateTx(ctx, tx, venta); err != nil {
			return err
		}
		if err := s.pedidos.DeleteTx(ctx, tx, pedido.ID); err != nil {
			return err
		}
		return s.caja.ContribuirTx(ctx, tx, turno.ID, contribucion, unidades(pedido.Items))
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("pedido_id", pedido.ID.String()).
		Str("venta_id", venta.ID.String()).
		Str("total", venta.Total.String()).
		Msg("pedido finalizado como venta")
	return venta, nil
}

// Cancelar returns every reserved unit to stock and removes the pedido. A
// collected anticipo is refunded from the open drawer as an expense.
func (s *PedidoService) Cancelar(ctx context.Context, pedidoID uuid.UUID, actor string) error {
	pedido, err := s.pendiente(ctx, pedidoID)
	if err != nil {
		return err
	}
	var turno *model.Turno
	if pedido.Anticipo > 0 {
		turno, err = s.caja.TurnoAbierto(ctx)
		if err != nil {
			return err
		}
	}

	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		for _, l := range pedido.Items {
			if l.Generico {
				continue
			}
			_, err := s.inventario.AplicarMovimientoTx(ctx, tx, MovimientoInput{
				ProductoID:   l.ProductoID,
				Tipo:         model.MovimientoEntrada,
				Cantidad:     l.Cantidad,
				Motivo:       "Cancelación de pedido",
				Actor:        actor,
				ReferenciaID: &pedido.ID,
			})
			if err != nil {
				return err
			}
		}
		if turno != nil {
			desc := fmt.Sprintf("Devolución de anticipo, pedido %s", pedido.ID)
			if err := s.caja.ReembolsarTx(ctx, tx, turno.ID, pedido.Anticipo, desc, actor); err != nil {
				return err
			}
		}
		return s.pedidos.DeleteTx(ctx, tx, pedido.ID)
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("pedido_id", pedido.ID.String()).
		Str("actor", actor).
		Msg("pedido cancelado")
	return nil
}

// Detalle returns one pedido.
func (s *PedidoService) Detalle(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	return s.pedidos.FindByID(ctx, id)
}

// Listar returns pedidos matching the filter.
func (s *PedidoService) Listar(ctx context.Context, filtro repository.PedidoFiltro) ([]model.Pedido, error) {
	return s.pedidos.List(ctx, filtro)
}

func (s *PedidoService) pendiente(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	pedido, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pedido.Estado != model.PedidoPendiente {
		return nil, ErrPedidoNoPendiente
	}
	return pedido, nil
}

func (s *PedidoService) reservarTx(ctx context.Context, tx *gorm.DB, pedidoID uuid.UUID, lineas []model.Linea, actor string) error {
	for _, l := range lineas {
		if l.Generico {
			continue
		}
		_, err := s.inventario.AplicarMovimientoTx(ctx, tx, MovimientoInput{
			ProductoID:   l.ProductoID,
			Tipo:         model.MovimientoSalida,
			Cantidad:     -l.Cantidad,
			Motivo:       "Reserva de pedido",
			Actor:        actor,
			ReferenciaID: &pedidoID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
