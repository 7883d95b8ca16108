package model

import (
	"time"

	"github.com/google/uuid"

	"cosspos/internal/money"
)

// PedidoPendiente is the only pedido state that ever persists: finalization
// converts the pedido into a Venta and cancellation returns its stock, and
// both remove the row in the same transaction.
const PedidoPendiente = "PENDING"

// Pedido is a deferred sale: a social-media order or a running "bolsa"
// (live-sale bag). Stock is reserved at creation time, not at finalization —
// a pending pedido holds real inventory so a second channel cannot oversell
// the same unit.
//
// Invariant after every mutation: Total == Subtotal and
// Saldo == Total − Anticipo, exact to the céntimo.
type Pedido struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Items    []Linea        `gorm:"serializer:json"`
	Subtotal money.Centavos `gorm:"not null"`
	Total    money.Centavos `gorm:"not null"`
	Anticipo money.Centavos `gorm:"not null;default:0"`
	Saldo    money.Centavos `gorm:"not null"`

	ClienteNombre    string
	ClienteTelefono  string
	ClienteDireccion string
	// Plataforma records the sale channel (facebook, tiktok, whatsapp, …).
	Plataforma string
	// EsBolsaAbierta marks a live running bag as opposed to a one-shot order.
	EsBolsaAbierta bool `gorm:"not null;default:false"`

	Estado    string `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecalcularTotales re-derives subtotal/total from the item snapshots and
// the saldo from the (unchanged) anticipo.
func (p *Pedido) RecalcularTotales() {
	var sub money.Centavos
	for _, l := range p.Items {
		sub += l.Subtotal()
	}
	p.Subtotal = sub
	p.Total = sub
	p.Saldo = p.Total - p.Anticipo
}
