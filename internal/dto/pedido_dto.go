package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cosspos/internal/model"
	"cosspos/internal/service"
)

// PedidoRequest opens a deferred sale or a live-sale bag.
type PedidoRequest struct {
	Items            []ItemRequest `json:"items" binding:"required,min=1,dive"`
	ClienteNombre    string        `json:"cliente_nombre" binding:"required"`
	ClienteTelefono  string        `json:"cliente_telefono"`
	ClienteDireccion string        `json:"cliente_direccion"`
	Plataforma       string        `json:"plataforma"`
	EsBolsaAbierta   bool          `json:"es_bolsa_abierta"`
	Anticipo         *PagoRequest  `json:"anticipo"`
}

func (r PedidoRequest) AServicio(usuarioID uuid.UUID, actor string) service.PedidoInput {
	in := service.PedidoInput{
		Items:            itemsAServicio(r.Items),
		ClienteNombre:    r.ClienteNombre,
		ClienteTelefono:  r.ClienteTelefono,
		ClienteDireccion: r.ClienteDireccion,
		Plataforma:       r.Plataforma,
		EsBolsaAbierta:   r.EsBolsaAbierta,
		UsuarioID:        usuarioID,
		Actor:            actor,
	}
	if r.Anticipo != nil {
		p := r.Anticipo.AServicio()
		in.Anticipo = &p
	}
	return in
}

// AgregarItemsRequest appends lines to a pending pedido.
type AgregarItemsRequest struct {
	Items []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r AgregarItemsRequest) AServicio() []service.ItemInput {
	return itemsAServicio(r.Items)
}

// AbonoRequest collects a partial payment.
type AbonoRequest struct {
	Pago PagoRequest `json:"pago" binding:"required"`
}

// FinalizarPedidoRequest settles the saldo and converts to a sale.
type FinalizarPedidoRequest struct {
	Pagos            []PagoRequest    `json:"pagos" binding:"omitempty,dive"`
	EfectivoRecibido *decimal.Decimal `json:"efectivo_recibido"`
}

// PedidoResponse is the pedido on the wire.
type PedidoResponse struct {
	ID               string          `json:"id"`
	Items            []LineaResponse `json:"items"`
	Subtotal         string          `json:"subtotal"`
	Total            string          `json:"total"`
	Anticipo         string          `json:"anticipo"`
	Saldo            string          `json:"saldo"`
	ClienteNombre    string          `json:"cliente_nombre"`
	ClienteTelefono  string          `json:"cliente_telefono,omitempty"`
	ClienteDireccion string          `json:"cliente_direccion,omitempty"`
	Plataforma       string          `json:"plataforma,omitempty"`
	EsBolsaAbierta   bool            `json:"es_bolsa_abierta"`
	Estado           string          `json:"estado"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DePedido maps the model to its wire shape.
func DePedido(p *model.Pedido) PedidoResponse {
	return PedidoResponse{
		ID:               p.ID.String(),
		Items:            DeLineas(p.Items),
		Subtotal:         deCentavos(p.Subtotal),
		Total:            deCentavos(p.Total),
		Anticipo:         deCentavos(p.Anticipo),
		Saldo:            deCentavos(p.Saldo),
		ClienteNombre:    p.ClienteNombre,
		ClienteTelefono:  p.ClienteTelefono,
		ClienteDireccion: p.ClienteDireccion,
		Plataforma:       p.Plataforma,
		EsBolsaAbierta:   p.EsBolsaAbierta,
		Estado:           p.Estado,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// DePedidos maps a listing.
func DePedidos(pedidos []model.Pedido) []PedidoResponse {
	out := make([]PedidoResponse, len(pedidos))
	for i := range pedidos {
		out[i] = DePedido(&pedidos[i])
	}
	return out
}
