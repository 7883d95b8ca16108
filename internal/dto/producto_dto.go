package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cosspos/internal/model"
	"cosspos/internal/service"
)

// ProductoRequest creates or updates a catalog item.
type ProductoRequest struct {
	Nombre         string          `json:"nombre" binding:"required,min=2"`
	Codigos        []string        `json:"codigos"`
	PrecioVenta    decimal.Decimal `json:"precio_venta" binding:"required"`
	PrecioCosto    decimal.Decimal `json:"precio_costo"`
	StockInicial   int             `json:"stock_inicial" binding:"omitempty,gte=0"`
	StockMinimo    int             `json:"stock_minimo" binding:"omitempty,gte=0"`
	DepartamentoID *string         `json:"departamento_id" binding:"omitempty,uuid"`
}

func (r ProductoRequest) AServicio(actor string) service.ProductoInput {
	in := service.ProductoInput{
		Nombre:       r.Nombre,
		Codigos:      r.Codigos,
		PrecioVenta:  aCentavos(r.PrecioVenta),
		PrecioCosto:  aCentavos(r.PrecioCosto),
		StockInicial: r.StockInicial,
		StockMinimo:  r.StockMinimo,
		Actor:        actor,
	}
	if r.DepartamentoID != nil {
		if id, err := uuid.Parse(*r.DepartamentoID); err == nil {
			in.DepartamentoID = &id
		}
	}
	return in
}

// IngresoRequest registers a merchandise intake.
type IngresoRequest struct {
	Cantidad int    `json:"cantidad" binding:"required,gt=0"`
	Motivo   string `json:"motivo" binding:"required,min=3"`
}

// AjusteRequest corrects stock by a signed delta.
type AjusteRequest struct {
	Cantidad int    `json:"cantidad" binding:"required"`
	Motivo   string `json:"motivo" binding:"required,min=3"`
}

// ProductoResponse is the catalog item on the wire.
type ProductoResponse struct {
	ID             string    `json:"id"`
	Nombre         string    `json:"nombre"`
	Codigos        []string  `json:"codigos,omitempty"`
	PrecioVenta    string    `json:"precio_venta"`
	PrecioCosto    string    `json:"precio_costo"`
	StockActual    int       `json:"stock_actual"`
	StockMinimo    int       `json:"stock_minimo"`
	DepartamentoID *string   `json:"departamento_id,omitempty"`
	Activo         bool      `json:"activo"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DeProducto maps the model to its wire shape.
func DeProducto(p *model.Producto) ProductoResponse {
	res := ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Codigos:     p.Codigos,
		PrecioVenta: deCentavos(p.PrecioVenta),
		PrecioCosto: deCentavos(p.PrecioCosto),
		StockActual: p.StockActual,
		StockMinimo: p.StockMinimo,
		Activo:      p.Activo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.DepartamentoID != nil {
		id := p.DepartamentoID.String()
		res.DepartamentoID = &id
	}
	return res
}

// DeProductos maps a listing.
func DeProductos(productos []model.Producto) []ProductoResponse {
	out := make([]ProductoResponse, len(productos))
	for i := range productos {
		out[i] = DeProducto(&productos[i])
	}
	return out
}

// ConsultaPrecioResponse answers the price-check scanner.
type ConsultaPrecioResponse struct {
	Nombre      string `json:"nombre"`
	PrecioVenta string `json:"precio_venta"`
	StockActual int    `json:"stock_actual"`
}

func DeConsultaPrecio(p *model.Producto) ConsultaPrecioResponse {
	return ConsultaPrecioResponse{
		Nombre:      p.Nombre,
		PrecioVenta: deCentavos(p.PrecioVenta),
		StockActual: p.StockActual,
	}
}
