package model

import (
	"time"

	"github.com/google/uuid"

	"cosspos/internal/money"
)

// Venta states. A committed venta is immutable except for the transition to
// CANCELLED (anulación), which reverses stock and turno effects but keeps
// the audit record.
const (
	VentaCompletada = "COMPLETED"
	VentaAnulada    = "CANCELLED"
)

// PagoVenta is one tender entry persisted on the venta.
type PagoVenta struct {
	MetodoID string         `json:"metodo_id"`
	Etiqueta string         `json:"etiqueta"`
	Clase    string         `json:"clase"`
	Monto    money.Centavos `json:"monto"`
}

// Venta is the terminal, audit-grade sale record. Invariant at commit time:
// MontoRecibido ≥ Total and Vuelto = MontoRecibido − Total.
type Venta struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnoID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	UsuarioID uuid.UUID      `gorm:"type:uuid;not null"`
	Items     []Linea        `gorm:"serializer:json"`
	Subtotal  money.Centavos `gorm:"not null"`
	Total     money.Centavos `gorm:"not null"`

	// Metodo is the single method's label, or "MIXED" for split tenders.
	Metodo        string         `gorm:"not null"`
	Pagos         []PagoVenta    `gorm:"serializer:json"`
	MontoRecibido money.Centavos `gorm:"not null"`
	Vuelto        money.Centavos `gorm:"not null;default:0"`

	Estado          string `gorm:"type:varchar(10);not null;default:'COMPLETED';index"`
	MotivoAnulacion *string
	AnuladaEn       *time.Time

	// PedidoID records provenance when the venta was finalized from a pedido.
	PedidoID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}
