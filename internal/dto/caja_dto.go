package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"cosspos/internal/model"
	"cosspos/internal/service"
)

// AbrirTurnoRequest opens a shift with the counted drawer float.
type AbrirTurnoRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial" binding:"required"`
}

// CerrarTurnoRequest closes the shift against the physically counted cash.
type CerrarTurnoRequest struct {
	EfectivoContado decimal.Decimal `json:"efectivo_contado" binding:"required"`
	Notas           string          `json:"notas"`
}

// GastoRequest records a drawer expense.
type GastoRequest struct {
	Monto       decimal.Decimal `json:"monto" binding:"required"`
	Descripcion string          `json:"descripcion" binding:"required,min=3"`
}

// TurnoResponse is the shift on the wire.
type TurnoResponse struct {
	ID             string `json:"id"`
	Estado         string `json:"estado"`
	MontoInicial   string `json:"monto_inicial"`
	VentasEfectivo string `json:"ventas_efectivo"`
	VentasDigital  string `json:"ventas_digital"`
	VentasTarjeta  string `json:"ventas_tarjeta"`
	VentasBanco    string `json:"ventas_banco"`
	VentasOtros    string `json:"ventas_otros"`
	TotalVentas    string `json:"total_ventas"`
	ItemsVendidos  int    `json:"items_vendidos"`
	TotalGastos    string `json:"total_gastos"`

	EfectivoEsperado *string `json:"efectivo_esperado,omitempty"`
	EfectivoContado  *string `json:"efectivo_contado,omitempty"`
	Diferencia       *string `json:"diferencia,omitempty"`
	NotasCierre      *string `json:"notas_cierre,omitempty"`

	OpenedAt time.Time  `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`

	Gastos []GastoResponse `json:"gastos,omitempty"`
}

// GastoResponse is one expense on the wire.
type GastoResponse struct {
	ID          string    `json:"id"`
	Monto       string    `json:"monto"`
	Descripcion string    `json:"descripcion"`
	Actor       string    `json:"actor,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeTurno maps the model to its wire shape.
func DeTurno(t *model.Turno) TurnoResponse {
	res := TurnoResponse{
		ID:             t.ID.String(),
		Estado:         t.Estado,
		MontoInicial:   deCentavos(t.MontoInicial),
		VentasEfectivo: deCentavos(t.VentasEfectivo),
		VentasDigital:  deCentavos(t.VentasDigital),
		VentasTarjeta:  deCentavos(t.VentasTarjeta),
		VentasBanco:    deCentavos(t.VentasBanco),
		VentasOtros:    deCentavos(t.VentasOtros),
		TotalVentas:    deCentavos(t.TotalVentas),
		ItemsVendidos:  t.ItemsVendidos,
		TotalGastos:    deCentavos(t.TotalGastos),
		OpenedAt:       t.OpenedAt,
		ClosedAt:       t.ClosedAt,
		NotasCierre:    t.NotasCierre,
	}
	if t.EfectivoEsperado != nil {
		s := deCentavos(*t.EfectivoEsperado)
		res.EfectivoEsperado = &s
	}
	if t.EfectivoContado != nil {
		s := deCentavos(*t.EfectivoContado)
		res.EfectivoContado = &s
	}
	if t.Diferencia != nil {
		s := deCentavos(*t.Diferencia)
		res.Diferencia = &s
	}
	for _, g := range t.Gastos {
		res.Gastos = append(res.Gastos, DeGasto(&g))
	}
	return res
}

// DeGasto maps one expense.
func DeGasto(g *model.Gasto) GastoResponse {
	return GastoResponse{
		ID:          g.ID.String(),
		Monto:       deCentavos(g.Monto),
		Descripcion: g.Descripcion,
		Actor:       g.Actor,
		CreatedAt:   g.CreatedAt,
	}
}

// CierreResponse is the reconciliation outcome on the wire.
type CierreResponse struct {
	Turno      TurnoResponse `json:"turno"`
	Esperado   string        `json:"esperado"`
	Contado    string        `json:"contado"`
	Diferencia string        `json:"diferencia"`
}

// DeCierre maps the reconciliation outcome.
func DeCierre(r *service.CierreResultado) CierreResponse {
	return CierreResponse{
		Turno:      DeTurno(r.Turno),
		Esperado:   deCentavos(r.Esperado),
		Contado:    deCentavos(r.Contado),
		Diferencia: deCentavos(r.Diferencia),
	}
}

// DeTurnos maps a listing.
func DeTurnos(turnos []model.Turno) []TurnoResponse {
	out := make([]TurnoResponse, len(turnos))
	for i := range turnos {
		out[i] = DeTurno(&turnos[i])
	}
	return out
}
