package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cosspos/internal/model"
	"cosspos/internal/service"
)

// VentaRequest is a checkout. With explicit pagos the amounts must cover the
// total; without them efectivo_recibido drives the implicit cash tender.
type VentaRequest struct {
	Items            []ItemRequest    `json:"items" binding:"required,min=1,dive"`
	Pagos            []PagoRequest    `json:"pagos" binding:"omitempty,dive"`
	EfectivoRecibido *decimal.Decimal `json:"efectivo_recibido"`
}

// AServicio converts the request; invalid UUIDs were already rejected by
// binding.
func (r VentaRequest) AServicio(usuarioID uuid.UUID, actor string) service.VentaInput {
	in := service.VentaInput{
		Items:     itemsAServicio(r.Items),
		UsuarioID: usuarioID,
		Actor:     actor,
	}
	for _, p := range r.Pagos {
		in.Pagos = append(in.Pagos, p.AServicio())
	}
	if r.EfectivoRecibido != nil {
		in.EfectivoRecibido = aCentavos(*r.EfectivoRecibido)
	}
	return in
}

func itemsAServicio(items []ItemRequest) []service.ItemInput {
	out := make([]service.ItemInput, 0, len(items))
	for _, it := range items {
		in := service.ItemInput{
			Nombre:   it.Nombre,
			Cantidad: it.Cantidad,
		}
		if it.ProductoID != nil {
			id, err := uuid.Parse(*it.ProductoID)
			if err == nil {
				in.ProductoID = &id
			}
		}
		if it.Precio != nil {
			in.Precio = aCentavos(*it.Precio)
		}
		out = append(out, in)
	}
	return out
}

// AnulacionRequest voids a sale.
type AnulacionRequest struct {
	Motivo string `json:"motivo" binding:"required,min=3"`
}

// LineaResponse is one item snapshot on the wire.
type LineaResponse struct {
	ProductoID string `json:"producto_id,omitempty"`
	Nombre     string `json:"nombre"`
	Precio     string `json:"precio"`
	Cantidad   int    `json:"cantidad"`
	Subtotal   string `json:"subtotal"`
	Generico   bool   `json:"generico,omitempty"`
}

// PagoResponse is one tender entry on the wire.
type PagoResponse struct {
	MetodoID string `json:"metodo_id"`
	Etiqueta string `json:"etiqueta"`
	Clase    string `json:"clase"`
	Monto    string `json:"monto"`
}

// VentaResponse is the committed sale.
type VentaResponse struct {
	ID              string          `json:"id"`
	TurnoID         string          `json:"turno_id"`
	Items           []LineaResponse `json:"items"`
	Subtotal        string          `json:"subtotal"`
	Total           string          `json:"total"`
	Metodo          string          `json:"metodo"`
	Pagos           []PagoResponse  `json:"pagos"`
	MontoRecibido   string          `json:"monto_recibido"`
	Vuelto          string          `json:"vuelto"`
	Estado          string          `json:"estado"`
	MotivoAnulacion *string         `json:"motivo_anulacion,omitempty"`
	AnuladaEn       *time.Time      `json:"anulada_en,omitempty"`
	PedidoID        *string         `json:"pedido_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// DeVenta maps the model to its wire shape.
func DeVenta(v *model.Venta) VentaResponse {
	res := VentaResponse{
		ID:              v.ID.String(),
		TurnoID:         v.TurnoID.String(),
		Items:           DeLineas(v.Items),
		Subtotal:        deCentavos(v.Subtotal),
		Total:           deCentavos(v.Total),
		Metodo:          v.Metodo,
		MontoRecibido:   deCentavos(v.MontoRecibido),
		Vuelto:          deCentavos(v.Vuelto),
		Estado:          v.Estado,
		MotivoAnulacion: v.MotivoAnulacion,
		AnuladaEn:       v.AnuladaEn,
		CreatedAt:       v.CreatedAt,
	}
	for _, p := range v.Pagos {
		res.Pagos = append(res.Pagos, PagoResponse{
			MetodoID: p.MetodoID,
			Etiqueta: p.Etiqueta,
			Clase:    p.Clase,
			Monto:    deCentavos(p.Monto),
		})
	}
	if v.PedidoID != nil {
		id := v.PedidoID.String()
		res.PedidoID = &id
	}
	return res
}

// DeVentas maps a listing.
func DeVentas(ventas []model.Venta) []VentaResponse {
	out := make([]VentaResponse, len(ventas))
	for i := range ventas {
		out[i] = DeVenta(&ventas[i])
	}
	return out
}

// DeLineas maps item snapshots.
func DeLineas(lineas []model.Linea) []LineaResponse {
	out := make([]LineaResponse, len(lineas))
	for i, l := range lineas {
		out[i] = LineaResponse{
			Nombre:   l.Nombre,
			Precio:   deCentavos(l.Precio),
			Cantidad: l.Cantidad,
			Subtotal: deCentavos(l.Subtotal()),
			Generico: l.Generico,
		}
		if !l.Generico {
			out[i].ProductoID = l.ProductoID.String()
		}
	}
	return out
}
