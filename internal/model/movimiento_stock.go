package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement types. Sales and order reservations write SALIDA, returns and
// intake write ENTRADA, manual corrections write AJUSTE.
const (
	MovimientoEntrada = "ENTRADA"
	MovimientoSalida  = "SALIDA"
	MovimientoAjuste  = "AJUSTE"
)

// MovimientoStock is one immutable kardex entry. Rows are append-only: a
// reversal writes a new inverse row, never edits an existing one.
// Invariant: StockNuevo = StockAnterior + Cantidad, with StockAnterior
// re-read from the live product inside the same transaction.
type MovimientoStock struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"type:varchar(10);not null"`
	Cantidad      int       `gorm:"not null"` // signed: positive = entrada, negative = salida
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Motivo        string
	Actor         string `gorm:"not null"`
	// ReferenciaID links to the originating venta or pedido when applicable.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
