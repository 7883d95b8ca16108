package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"cosspos/internal/model"
	"cosspos/internal/money"
	"cosspos/internal/pago"
	"cosspos/internal/repository"
)

// metodoEfectivo is the implicit method for the zero-click cash checkout.
var metodoEfectivo = pago.Metodo{
	ID:               "efectivo",
	Etiqueta:         "EFECTIVO",
	Clase:            pago.ClaseEfectivo,
	PermiteSobrepago: true,
}

// VentaInput is a checkout request. Pagos lists the explicit tender entries;
// when empty, EfectivoRecibido is treated as a single implicit cash tender.
type VentaInput struct {
	Items            []ItemInput
	Pagos            []PagoInput
	EfectivoRecibido money.Centavos
	UsuarioID        uuid.UUID
	Actor            string
}

// VentaService commits and voids sales. A commit is one transaction: the
// venta row, one SALIDA per catalog line, and the turno contribution either
// all land or none do.
type VentaService struct {
	ventas     repository.VentaRepository
	productos  repository.ProductoRepository
	caja       *CajaService
	inventario *InventarioService
	alertas    ColaAlertas
}

func NewVentaService(v repository.VentaRepository, p repository.ProductoRepository, caja *CajaService, inv *InventarioService) *VentaService {
	return &VentaService{ventas: v, productos: p, caja: caja, inventario: inv}
}

// ConAlertas enables post-commit low-stock alert jobs.
func (s *VentaService) ConAlertas(c ColaAlertas) *VentaService {
	s.alertas = c
	return s
}

func armarTender(total money.Centavos, pagos []PagoInput, efectivoRecibido money.Centavos) (*pago.Resultado, error) {
	t := pago.NuevoTender(total)
	if len(pagos) == 0 {
		t.Ingresar(efectivoRecibido)
		return t.Finalizar(&metodoEfectivo)
	}
	for _, p := range pagos {
		m := pago.Metodo{
			ID:               p.MetodoID,
			Etiqueta:         p.Etiqueta,
			Clase:            p.Clase,
			PermiteSobrepago: p.PermiteSobrepago,
		}
		if err := t.Agregar(m, p.Monto); err != nil {
			return nil, err
		}
	}
	return t.Finalizar(nil)
}

// RegistrarVenta validates against the open turno and live stock, finalizes
// the tender, then commits sale, kardex and turno totals atomically.
func (s *VentaService) RegistrarVenta(ctx context.Context, in VentaInput) (*model.Venta, error) {
	turno, err := s.caja.TurnoAbierto(ctx)
	if err != nil {
		return nil, err
	}
	lineas, err := resolverLineas(ctx, s.productos, in.Items, true)
	if err != nil {
		return nil, err
	}
	total := totalLineas(lineas)

	res, err := armarTender(total, in.Pagos, in.EfectivoRecibido)
	if err != nil {
		return nil, err
	}
	contribucion := pago.Contribuir(res.Entradas, res.Vuelto)

	venta := &model.Venta{
		ID:            uuid.New(),
		TurnoID:       turno.ID,
		UsuarioID:     in.UsuarioID,
		Items:         lineas,
		Subtotal:      total,
		Total:         total,
		Metodo:        res.Metodo,
		Pagos:         pagosDeEntradas(res.Entradas),
		MontoRecibido: res.Recibido,
		Vuelto:        res.Vuelto,
		Estado:        model.VentaCompletada,
	}

	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if err := s.ventas.CreateTx(ctx, tx, venta); err != nil {
			return err
		}
		for _, l := range lineas {
			if l.Generico {
				continue
			}
			_, err := s.inventario.AplicarMovimientoTx(ctx, tx, MovimientoInput{
				ProductoID:   l.ProductoID,
				Tipo:         model.MovimientoSalida,
				Cantidad:     -l.Cantidad,
				Motivo:       "Venta",
				Actor:        in.Actor,
				ReferenciaID: &venta.ID,
			})
			if err != nil {
				return err
			}
		}
		return s.caja.ContribuirTx(ctx, tx, turno.ID, contribucion, unidades(lineas))
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("total", total.String()).
		Str("metodo", venta.Metodo).
		Str("vuelto", venta.Vuelto.String()).
		Msg("venta registrada")

	s.notificarStockBajo(ctx, lineas)
	return venta, nil
}

// notificarStockBajo enqueues an alert for each catalog line that fell to or
// below its minimum. Best-effort: a queue failure only logs.
func (s *VentaService) notificarStockBajo(ctx context.Context, lineas []model.Linea) {
	if s.alertas == nil {
		return
	}
	for _, l := range lineas {
		if l.Generico {
			continue
		}
		p, err := s.productos.FindByID(ctx, l.ProductoID)
		if err != nil {
			continue
		}
		if p.StockActual <= p.StockMinimo {
			if err := s.alertas.EncolarAlertaStock(ctx, p.ID); err != nil {
				log.Warn().Err(err).Str("producto_id", p.ID.String()).Msg("no se pudo encolar alerta de stock")
			}
		}
	}
}

// AnularVenta reverses a committed sale: estado flips to CANCELLED, each
// catalog line gets an inverse ENTRADA, and the turno totals receive the
// negated contribution. Only allowed while the owning turno is still open so
// a closed reconciliation is never rewritten.
func (s *VentaService) AnularVenta(ctx context.Context, id uuid.UUID, motivo, actor string) (*model.Venta, error) {
	venta, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venta.Estado == model.VentaAnulada {
		return nil, ErrVentaYaAnulada
	}
	turno, err := s.caja.Detalle(ctx, venta.TurnoID)
	if err != nil {
		return nil, err
	}
	if turno.Estado != model.TurnoAbierto {
		return nil, ErrTurnoCerrado
	}

	contribucion := pago.Contribuir(entradasDePagos(venta.Pagos), venta.Vuelto).Negada()
	cuando := time.Now()

	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if err := s.ventas.UpdateAnulacionTx(ctx, tx, venta.ID, motivo, cuando); err != nil {
			return err
		}
		for _, l := range venta.Items {
			if l.Generico {
				continue
			}
			_, err := s.inventario.AplicarMovimientoTx(ctx, tx, MovimientoInput{
				ProductoID:   l.ProductoID,
				Tipo:         model.MovimientoEntrada,
				Cantidad:     l.Cantidad,
				Motivo:       "Anulación de venta",
				Actor:        actor,
				ReferenciaID: &venta.ID,
			})
			if err != nil {
				return err
			}
		}
		return s.caja.ContribuirTx(ctx, tx, turno.ID, contribucion, -unidades(venta.Items))
	})
	if err != nil {
		return nil, err
	}

	venta.Estado = model.VentaAnulada
	venta.MotivoAnulacion = &motivo
	venta.AnuladaEn = &cuando
	log.Warn().
		Str("venta_id", venta.ID.String()).
		Str("motivo", motivo).
		Str("actor", actor).
		Msg("venta anulada")
	return venta, nil
}

// Detalle returns one sale.
func (s *VentaService) Detalle(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	return s.ventas.FindByID(ctx, id)
}

// Listar returns sales matching the filter.
func (s *VentaService) Listar(ctx context.Context, filtro repository.VentaFiltro) ([]model.Venta, error) {
	return s.ventas.List(ctx, filtro)
}

func pagosDeEntradas(entradas []pago.Entrada) []model.PagoVenta {
	out := make([]model.PagoVenta, len(entradas))
	for i, e := range entradas {
		out[i] = model.PagoVenta{MetodoID: e.MetodoID, Etiqueta: e.Etiqueta, Clase: e.Clase, Monto: e.Monto}
	}
	return out
}

func entradasDePagos(pagos []model.PagoVenta) []pago.Entrada {
	out := make([]pago.Entrada, len(pagos))
	for i, p := range pagos {
		out[i] = pago.Entrada{MetodoID: p.MetodoID, Etiqueta: p.Etiqueta, Clase: p.Clase, Monto: p.Monto}
	}
	return out
}
