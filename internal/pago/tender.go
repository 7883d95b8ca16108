package pago

import (
	"errors"

	"cosspos/internal/money"
)

var (
	// ErrPagoInsuficiente: the committed entries do not cover the target.
	ErrPagoInsuficiente = errors.New("el pago no cubre el total de la venta")
	// ErrSobrepagoNoPermitido: the method does not accept more than the
	// remaining balance.
	ErrSobrepagoNoPermitido = errors.New("el monto no puede exceder el saldo restante")
	// ErrEntradaInvalida: non-positive amount or out-of-range index.
	ErrEntradaInvalida = errors.New("entrada de pago inválida")
)

// Entrada is one committed tender line.
type Entrada struct {
	MetodoID string
	Etiqueta string
	Clase    string
	Monto    money.Centavos
}

// Tender accumulates one or more payment entries against a required total.
// Nothing here is persisted; the committed entries only reach storage through
// the sale commit.
type Tender struct {
	objetivo  money.Centavos
	entradas  []Entrada
	pendiente money.Centavos // raw input not yet committed to an entry
}

// NuevoTender starts a tender against objetivo. The suggested input starts
// at the full amount so an exact single payment is one keystroke.
func NuevoTender(objetivo money.Centavos) *Tender {
	return &Tender{objetivo: objetivo, pendiente: objetivo}
}

// Objetivo returns the required total.
func (t *Tender) Objetivo() money.Centavos { return t.objetivo }

// Pendiente returns the raw, uncommitted input amount.
func (t *Tender) Pendiente() money.Centavos { return t.pendiente }

// Ingresar replaces the pending input (manual keypad entry).
func (t *Tender) Ingresar(monto money.Centavos) { t.pendiente = monto }

// SumarPendiente adds to the pending input. Cash quick-add denomination
// buttons go through here; they are not a separate code path.
func (t *Tender) SumarPendiente(monto money.Centavos) { t.pendiente += monto }

// Agregar commits monto as an entry for m and re-derives the suggested next
// input: the new remainder, or zero once fully covered.
func (t *Tender) Agregar(m Metodo, monto money.Centavos) error {
	if monto <= 0 {
		return ErrEntradaInvalida
	}
	if !m.PermiteSobrepago && monto > t.Restante() {
		return ErrSobrepagoNoPermitido
	}
	t.entradas = append(t.entradas, Entrada{
		MetodoID: m.ID,
		Etiqueta: m.Etiqueta,
		Clase:    Clasificar(m.Etiqueta, m.Clase),
		Monto:    monto,
	})
	t.pendiente = t.Restante()
	return nil
}

// ConfirmarPendiente commits the pending input as an entry for m.
func (t *Tender) ConfirmarPendiente(m Metodo) error {
	monto := t.pendiente
	if err := t.Agregar(m, monto); err != nil {
		return err
	}
	return nil
}

// Quitar removes the entry at index i and re-derives the remainder.
func (t *Tender) Quitar(i int) error {
	if i < 0 || i >= len(t.entradas) {
		return ErrEntradaInvalida
	}
	t.entradas = append(t.entradas[:i], t.entradas[i+1:]...)
	t.pendiente = t.Restante()
	return nil
}

// Entradas returns a copy of the committed entries.
func (t *Tender) Entradas() []Entrada {
	out := make([]Entrada, len(t.entradas))
	copy(out, t.entradas)
	return out
}

// Pagado is the running sum of committed entries.
func (t *Tender) Pagado() money.Centavos {
	var sum money.Centavos
	for _, e := range t.entradas {
		sum += e.Monto
	}
	return sum
}

// Restante is the uncovered part of the target, floored at zero.
func (t *Tender) Restante() money.Centavos {
	if r := t.objetivo - t.Pagado(); r > 0 {
		return r
	}
	return 0
}

// Cubierto reports whether the committed entries cover the target.
func (t *Tender) Cubierto() bool { return t.Pagado() >= t.objetivo }

// Vuelto is the change due: max(0, pagado − objetivo).
func (t *Tender) Vuelto() money.Centavos {
	if v := t.Pagado() - t.objetivo; v > 0 {
		return v
	}
	return 0
}

// Resultado is the immutable outcome of a finalized tender.
type Resultado struct {
	Entradas []Entrada
	// Metodo is the recorded method label: the single entry's label, or
	// MetodoMixto when more than one entry participated.
	Metodo   string
	Recibido money.Centavos
	Vuelto   money.Centavos
}

// Finalizar validates coverage and freezes the tender. When no entry was
// explicitly added but the raw input already covers the target, the input is
// treated as an implicit single tender for porDefecto (the zero-click cash
// checkout). A zero target with nothing tendered is already covered and
// finalizes with no entries: nothing is owed, so nothing needs entering.
func (t *Tender) Finalizar(porDefecto *Metodo) (*Resultado, error) {
	if len(t.entradas) == 0 && porDefecto != nil && t.pendiente > 0 && t.pendiente >= t.objetivo {
		if err := t.Agregar(*porDefecto, t.pendiente); err != nil {
			return nil, err
		}
	}
	if !t.Cubierto() {
		return nil, ErrPagoInsuficiente
	}
	res := &Resultado{
		Entradas: t.Entradas(),
		Recibido: t.Pagado(),
		Vuelto:   t.Vuelto(),
	}
	if len(res.Entradas) == 1 {
		res.Metodo = res.Entradas[0].Etiqueta
	} else {
		res.Metodo = MetodoMixto
	}
	return res, nil
}
