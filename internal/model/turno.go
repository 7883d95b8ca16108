package model

import (
	"time"

	"github.com/google/uuid"

	"cosspos/internal/money"
)

// Turno states. CERRADO is terminal: a new turno must be opened to resume
// selling.
const (
	TurnoAbierto = "ABIERTO"
	TurnoCerrado = "CERRADO"
)

// Turno is one cash-register session from open to close. It exclusively owns
// its running totals; only the sale committer, the partial-payment path and
// the expense recorder mutate them, always via additive increments — never
// read-modify-write, never overwrite.
type Turno struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Estado       string         `gorm:"type:varchar(10);not null;default:'ABIERTO';index"`
	UsuarioID    uuid.UUID      `gorm:"type:uuid;not null"`
	MontoInicial money.Centavos `gorm:"not null"`

	// Running totals by drawer class, in céntimos.
	VentasEfectivo money.Centavos `gorm:"not null;default:0"`
	VentasDigital  money.Centavos `gorm:"not null;default:0"`
	VentasTarjeta  money.Centavos `gorm:"not null;default:0"`
	VentasBanco    money.Centavos `gorm:"not null;default:0"`
	VentasOtros    money.Centavos `gorm:"not null;default:0"`
	TotalVentas    money.Centavos `gorm:"not null;default:0"`
	ItemsVendidos  int            `gorm:"not null;default:0"`
	TotalGastos    money.Centavos `gorm:"not null;default:0"`

	// Closing snapshot — frozen by the cierre, nil while open.
	EfectivoEsperado *money.Centavos
	EfectivoContado  *money.Centavos
	Diferencia       *money.Centavos
	NotasCierre      *string

	OpenedAt time.Time
	ClosedAt *time.Time

	Gastos []Gasto `gorm:"foreignKey:TurnoID"`
}

// EsperadoEnCaja derives the reconciliation target: opening float plus cash
// sales minus cash expenses. Digital/card/bank money never sits in the
// drawer, so it does not participate.
func (t *Turno) EsperadoEnCaja() money.Centavos {
	return t.MontoInicial + t.VentasEfectivo - t.TotalGastos
}

// Gasto is an immutable expense record, always paid from the physical
// drawer.
type Gasto struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnoID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Monto       money.Centavos `gorm:"not null"`
	Descripcion string         `gorm:"not null"`
	Actor       string
	CreatedAt   time.Time
}
