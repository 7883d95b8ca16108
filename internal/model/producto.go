package model

import (
	"time"

	"github.com/google/uuid"

	"cosspos/internal/money"
)

// Producto is a sellable item. Prices are stored in céntimos; StockActual is
// mutated exclusively through stock movements (see MovimientoStock) — no
// other code path writes it directly.
type Producto struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"index;not null"`
	// Codigos holds the primary SKU plus alternate barcodes.
	Codigos        []string       `gorm:"serializer:json"`
	PrecioVenta    money.Centavos `gorm:"not null"`
	PrecioCosto    money.Centavos `gorm:"not null;default:0"`
	StockActual    int            `gorm:"not null;default:0"`
	StockMinimo    int            `gorm:"not null;default:5"`
	DepartamentoID *uuid.UUID     `gorm:"type:uuid;index"`
	Activo         bool           `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Departamento *Departamento `gorm:"foreignKey:DepartamentoID"`
}

// Linea is a denormalized item snapshot embedded in pedidos and ventas.
// Price and cost are copied at add-time on purpose: a later price change
// must not alter an already-placed order's total.
type Linea struct {
	ProductoID uuid.UUID      `json:"producto_id"`
	Nombre     string         `json:"nombre"`
	Precio     money.Centavos `json:"precio"`
	Costo      money.Centavos `json:"costo"`
	Cantidad   int            `json:"cantidad"`
	// Generico marks a quick-sale item with no backing SKU; generic lines
	// never touch the stock ledger and may oversell freely.
	Generico bool `json:"generico"`
}

// Subtotal is precio × cantidad for the line.
func (l Linea) Subtotal() money.Centavos {
	return l.Precio * money.Centavos(l.Cantidad)
}
