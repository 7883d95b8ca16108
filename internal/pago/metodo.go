// Package pago models payment methods, tender splitting and the
// classification of tendered amounts into drawer classes. The classifier is
// the single source of truth shared by the sale committer and the void path:
// a sale and its later anulación must classify identically or the turno
// ledger drifts.
package pago

import (
	"strings"

	"cosspos/internal/money"
)

// Drawer classes. Every tender entry maps to exactly one.
const (
	ClaseEfectivo = "CASH"
	ClaseDigital  = "DIGITAL"
	ClaseTarjeta  = "CARD"
	ClaseBanco    = "BANK"
	ClaseOtros    = "OTHER"
)

// MetodoMixto is the method label recorded on a sale paid with more than one
// tender entry.
const MetodoMixto = "MIXED"

// Metodo describes one configured payment method as presented to the cashier.
type Metodo struct {
	ID       string
	Etiqueta string
	// Clase is the explicit class tag; empty means "classify by label".
	Clase string
	// PermiteSobrepago: cash accepts amounts above the remaining balance
	// (change is returned); digital wallets and cards normally do not.
	PermiteSobrepago bool
}

// vocabulario maps label fragments to classes. First match wins; order is
// load-bearing (e.g. "TARJETA BANCARIA" must classify as card, not bank).
var vocabulario = []struct {
	clase    string
	terminos []string
}{
	{ClaseEfectivo, []string{"EFECTIVO", "CASH", "CONTADO"}},
	{ClaseDigital, []string{"YAPE", "PLIN", "NEQUI", "BILLETERA", "WALLET", "MERCADO PAGO", "TUNKI", "LUKITA"}},
	{ClaseTarjeta, []string{"TARJETA", "POS", "CARD", "VISA", "MASTERCARD"}},
	{ClaseBanco, []string{"BANCO", "TRANSFERENCIA", "DEPOSITO", "DEPÓSITO", "BCP", "INTERBANK"}},
}

// Clasificar resolves a tender entry into one of the five drawer classes.
// Pure and deterministic: explicit tag first, then case-insensitive substring
// match of the label, else OTHER.
func Clasificar(etiqueta, claseExplicita string) string {
	switch claseExplicita {
	case ClaseEfectivo, ClaseDigital, ClaseTarjeta, ClaseBanco, ClaseOtros:
		return claseExplicita
	}
	mayus := strings.ToUpper(etiqueta)
	for _, v := range vocabulario {
		for _, t := range v.terminos {
			if strings.Contains(mayus, t) {
				return v.clase
			}
		}
	}
	return ClaseOtros
}

// Contribucion is the per-class breakdown a completed payment adds to the
// open turno's running totals.
type Contribucion struct {
	Efectivo money.Centavos
	Digital  money.Centavos
	Tarjeta  money.Centavos
	Banco    money.Centavos
	Otros    money.Centavos
}

// Sumar adds monto to the bucket for clase.
func (c *Contribucion) Sumar(clase string, monto money.Centavos) {
	switch clase {
	case ClaseEfectivo:
		c.Efectivo += monto
	case ClaseDigital:
		c.Digital += monto
	case ClaseTarjeta:
		c.Tarjeta += monto
	case ClaseBanco:
		c.Banco += monto
	default:
		c.Otros += monto
	}
}

// Total returns the sum across all classes.
func (c Contribucion) Total() money.Centavos {
	return c.Efectivo + c.Digital + c.Tarjeta + c.Banco + c.Otros
}

// Negada returns the inverse contribution, used to reverse a voided sale.
func (c Contribucion) Negada() Contribucion {
	return Contribucion{
		Efectivo: -c.Efectivo,
		Digital:  -c.Digital,
		Tarjeta:  -c.Tarjeta,
		Banco:    -c.Banco,
		Otros:    -c.Otros,
	}
}

// Contribuir classifies a finalized tender into per-class revenue. The
// change handed back to the customer comes out of the physical drawer, so it
// is deducted from the cash bucket: a 50.00 cash tender on a 38.00 total
// contributes 38.00 cash, not 50.00.
func Contribuir(entradas []Entrada, vuelto money.Centavos) Contribucion {
	var c Contribucion
	for _, e := range entradas {
		c.Sumar(Clasificar(e.Etiqueta, e.Clase), e.Monto)
	}
	c.Efectivo -= vuelto
	return c
}
