// Package dto defines the HTTP request/response shapes. Amounts cross the
// wire as decimal strings ("45.50") and convert to integer céntimos at this
// boundary; everything past it is money.Centavos.
package dto

import (
	"github.com/shopspring/decimal"

	"cosspos/internal/money"
	"cosspos/internal/service"
)

// aCentavos converts a wire decimal to céntimos.
func aCentavos(d decimal.Decimal) money.Centavos {
	return money.ToCentavos(d)
}

// deCentavos renders céntimos as a two-decimal wire string.
func deCentavos(c money.Centavos) string {
	return c.String()
}

// PagoRequest is one tender entry.
type PagoRequest struct {
	MetodoID         string          `json:"metodo_id" binding:"required"`
	Etiqueta         string          `json:"etiqueta" binding:"required"`
	Clase            string          `json:"clase" binding:"omitempty,oneof=CASH DIGITAL CARD BANK OTHER"`
	Monto            decimal.Decimal `json:"monto" binding:"required"`
	PermiteSobrepago bool            `json:"permite_sobrepago"`
}

func (r PagoRequest) AServicio() service.PagoInput {
	return service.PagoInput{
		MetodoID:         r.MetodoID,
		Etiqueta:         r.Etiqueta,
		Clase:            r.Clase,
		Monto:            aCentavos(r.Monto),
		PermiteSobrepago: r.PermiteSobrepago,
	}
}

// ItemRequest is one cart line. Without producto_id it is a generic item and
// nombre/precio become required.
type ItemRequest struct {
	ProductoID *string          `json:"producto_id" binding:"omitempty,uuid"`
	Nombre     string           `json:"nombre"`
	Precio     *decimal.Decimal `json:"precio"`
	Cantidad   int              `json:"cantidad" binding:"required,gt=0"`
}
