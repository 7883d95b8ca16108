package dto

import (
	"time"

	"cosspos/internal/model"
)

// MovimientoResponse is one kardex entry on the wire.
type MovimientoResponse struct {
	ID            string    `json:"id"`
	ProductoID    string    `json:"producto_id"`
	Producto      string    `json:"producto,omitempty"`
	Tipo          string    `json:"tipo"`
	Cantidad      int       `json:"cantidad"`
	StockAnterior int       `json:"stock_anterior"`
	StockNuevo    int       `json:"stock_nuevo"`
	Motivo        string    `json:"motivo,omitempty"`
	Actor         string    `json:"actor"`
	ReferenciaID  *string   `json:"referencia_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DeMovimiento maps one kardex entry.
func DeMovimiento(m *model.MovimientoStock) MovimientoResponse {
	res := MovimientoResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		Actor:         m.Actor,
		CreatedAt:     m.CreatedAt,
	}
	if m.Producto != nil {
		res.Producto = m.Producto.Nombre
	}
	if m.ReferenciaID != nil {
		id := m.ReferenciaID.String()
		res.ReferenciaID = &id
	}
	return res
}

// DeMovimientos maps a listing.
func DeMovimientos(movs []model.MovimientoStock) []MovimientoResponse {
	out := make([]MovimientoResponse, len(movs))
	for i := range movs {
		out[i] = DeMovimiento(&movs[i])
	}
	return out
}
