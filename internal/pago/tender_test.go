package pago

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cosspos/internal/money"
)

var (
	efectivo = Metodo{ID: "efectivo", Etiqueta: "EFECTIVO", PermiteSobrepago: true}
	yape     = Metodo{ID: "yape", Etiqueta: "YAPE"}
	tarjeta  = Metodo{ID: "pos", Etiqueta: "TARJETA"}
)

func TestTenderEfectivoExacto(t *testing.T) {
	tn := NuevoTender(4550)
	require.NoError(t, tn.Agregar(efectivo, 4550))

	assert.True(t, tn.Cubierto())
	assert.Zero(t, tn.Vuelto())

	res, err := tn.Finalizar(nil)
	require.NoError(t, err)
	assert.Equal(t, "EFECTIVO", res.Metodo)
	assert.Equal(t, money.Centavos(4550), res.Recibido)
	assert.Zero(t, res.Vuelto)
}

func TestTenderEfectivoConVuelto(t *testing.T) {
	tn := NuevoTender(3800)
	require.NoError(t, tn.Agregar(efectivo, 5000))

	res, err := tn.Finalizar(nil)
	require.NoError(t, err)
	assert.Equal(t, money.Centavos(5000), res.Recibido)
	assert.Equal(t, money.Centavos(1200), res.Vuelto)

	// the drawer only keeps the sale total
	c := Contribuir(res.Entradas, res.Vuelto)
	assert.Equal(t, money.Centavos(3800), c.Efectivo)
}

func TestTenderMixto(t *testing.T) {
	tn := NuevoTender(10000)
	require.NoError(t, tn.Agregar(efectivo, 6000))
	assert.Equal(t, money.Centavos(4000), tn.Restante())
	assert.Equal(t, money.Centavos(4000), tn.Pendiente(), "la sugerencia sigue al restante")
	require.NoError(t, tn.Agregar(yape, 4000))

	res, err := tn.Finalizar(nil)
	require.NoError(t, err)
	assert.Equal(t, MetodoMixto, res.Metodo)
	assert.Zero(t, res.Vuelto)

	c := Contribuir(res.Entradas, res.Vuelto)
	assert.Equal(t, money.Centavos(6000), c.Efectivo)
	assert.Equal(t, money.Centavos(4000), c.Digital)
}

func TestTenderInsuficiente(t *testing.T) {
	tn := NuevoTender(5000)
	require.NoError(t, tn.Agregar(yape, 3000))
	assert.False(t, tn.Cubierto())

	_, err := tn.Finalizar(nil)
	assert.ErrorIs(t, err, ErrPagoInsuficiente)
}

func TestTenderSobrepagoSoloEfectivo(t *testing.T) {
	tn := NuevoTender(3800)
	err := tn.Agregar(tarjeta, 5000)
	assert.ErrorIs(t, err, ErrSobrepagoNoPermitido)
	assert.Empty(t, tn.Entradas(), "la entrada rechazada no queda registrada")

	require.NoError(t, tn.Agregar(efectivo, 5000))
	assert.Equal(t, money.Centavos(1200), tn.Vuelto())
}

func TestTenderMontoInvalido(t *testing.T) {
	tn := NuevoTender(1000)
	assert.ErrorIs(t, tn.Agregar(efectivo, 0), ErrEntradaInvalida)
	assert.ErrorIs(t, tn.Agregar(efectivo, -500), ErrEntradaInvalida)
}

func TestTenderQuitar(t *testing.T) {
	tn := NuevoTender(10000)
	require.NoError(t, tn.Agregar(efectivo, 6000))
	require.NoError(t, tn.Agregar(yape, 4000))
	assert.True(t, tn.Cubierto())

	require.NoError(t, tn.Quitar(1))
	assert.False(t, tn.Cubierto())
	assert.Equal(t, money.Centavos(4000), tn.Restante())
	assert.ErrorIs(t, tn.Quitar(5), ErrEntradaInvalida)
}

func TestTenderCoberturaMonotona(t *testing.T) {
	// adding entries never lowers the amount paid
	tn := NuevoTender(10000)
	previo := tn.Pagado()
	for _, monto := range []money.Centavos{1000, 2500, 4000, 2500} {
		require.NoError(t, tn.Agregar(yape, monto))
		assert.GreaterOrEqual(t, tn.Pagado(), previo)
		previo = tn.Pagado()
	}
	assert.True(t, tn.Cubierto())
}

func TestTenderPendienteDenominaciones(t *testing.T) {
	// quick-add denomination buttons accumulate raw input, then one confirm
	tn := NuevoTender(4550)
	tn.Ingresar(0)
	tn.SumarPendiente(2000)
	tn.SumarPendiente(2000)
	tn.SumarPendiente(1000)
	require.NoError(t, tn.ConfirmarPendiente(efectivo))

	res, err := tn.Finalizar(nil)
	require.NoError(t, err)
	assert.Equal(t, money.Centavos(5000), res.Recibido)
	assert.Equal(t, money.Centavos(450), res.Vuelto)
}

func TestTenderImplicitoPorDefecto(t *testing.T) {
	// zero-click cash checkout: no explicit entry, raw input covers the total
	tn := NuevoTender(4550)
	tn.Ingresar(5000)
	res, err := tn.Finalizar(&efectivo)
	require.NoError(t, err)
	assert.Equal(t, "EFECTIVO", res.Metodo)
	assert.Equal(t, money.Centavos(5000), res.Recibido)
	assert.Equal(t, money.Centavos(450), res.Vuelto)
}

func TestTenderObjetivoCeroYaCubierto(t *testing.T) {
	// nothing owed: finalizes with no entries instead of forcing a fake pago
	tn := NuevoTender(0)
	assert.True(t, tn.Cubierto())

	res, err := tn.Finalizar(&efectivo)
	require.NoError(t, err)
	assert.Empty(t, res.Entradas)
	assert.Zero(t, res.Recibido)
	assert.Zero(t, res.Vuelto)
}

func TestTenderImplicitoInsuficiente(t *testing.T) {
	tn := NuevoTender(4550)
	tn.Ingresar(4000)
	_, err := tn.Finalizar(&efectivo)
	assert.ErrorIs(t, err, ErrPagoInsuficiente)
}
