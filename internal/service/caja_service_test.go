package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cosspos/internal/money"
	"cosspos/internal/pago"
)

func TestAbrirTurno(t *testing.T) {
	svc := NewCajaService(newStubTurnos())
	ctx := context.Background()

	turno, err := svc.Abrir(ctx, uuid.New(), 10000)
	require.NoError(t, err)
	assert.Equal(t, money.Centavos(10000), turno.MontoInicial)
	assert.False(t, turno.OpenedAt.IsZero(), "el turno registra su hora de apertura")

	abierto, err := svc.TurnoAbierto(ctx)
	require.NoError(t, err)
	assert.False(t, abierto.OpenedAt.IsZero())

	_, err = svc.Abrir(ctx, uuid.New(), 5000)
	assert.ErrorIs(t, err, ErrTurnoYaAbierto)
}

func TestAbrirTurnoMontoNegativo(t *testing.T) {
	svc := NewCajaService(newStubTurnos())
	_, err := svc.Abrir(context.Background(), uuid.New(), -100)
	assert.ErrorIs(t, err, ErrMontoInvalido)
}

func TestTurnoAbiertoSinTurno(t *testing.T) {
	svc := NewCajaService(newStubTurnos())
	_, err := svc.TurnoAbierto(context.Background())
	assert.ErrorIs(t, err, ErrSinTurnoAbierto)
}

func TestCierreConciliacion(t *testing.T) {
	// inicial 100.00 + efectivo 250.00 − gastos 30.00 = esperado 320.00
	turnos := newStubTurnos()
	svc := NewCajaService(turnos)
	ctx := context.Background()

	turno, err := svc.Abrir(ctx, uuid.New(), 10000)
	require.NoError(t, err)

	var ventas pago.Contribucion
	ventas.Sumar(pago.ClaseEfectivo, 25000)
	ventas.Sumar(pago.ClaseDigital, 8000)
	require.NoError(t, svc.ContribuirTx(ctx, nil, turno.ID, ventas, 12))

	_, err = svc.RegistrarGasto(ctx, 3000, "Bolsas y embalaje", "cajero1")
	require.NoError(t, err)

	res, err := svc.Cerrar(ctx, 30000, "faltó sencillo")
	require.NoError(t, err)
	assert.Equal(t, money.Centavos(32000), res.Esperado)
	assert.Equal(t, money.Centavos(-2000), res.Diferencia)

	// digital money never counts toward the drawer
	assert.Equal(t, money.Centavos(8000), res.Turno.VentasDigital)
	assert.Equal(t, money.Centavos(33000), res.Turno.TotalVentas)
}

func TestCierreCuadrado(t *testing.T) {
	turnos := newStubTurnos()
	svc := NewCajaService(turnos)
	ctx := context.Background()

	turno, _ := svc.Abrir(ctx, uuid.New(), 10000)
	var ventas pago.Contribucion
	ventas.Sumar(pago.ClaseEfectivo, 25000)
	require.NoError(t, svc.ContribuirTx(ctx, nil, turno.ID, ventas, 3))
	_, err := svc.RegistrarGasto(ctx, 3000, "Taxi de mercadería", "cajero1")
	require.NoError(t, err)

	res, err := svc.Cerrar(ctx, 32000, "")
	require.NoError(t, err)
	assert.Zero(t, res.Diferencia)

	// closing is terminal
	_, err = svc.Cerrar(ctx, 32000, "")
	assert.ErrorIs(t, err, ErrSinTurnoAbierto)
}

func TestGastoRequiereTurno(t *testing.T) {
	svc := NewCajaService(newStubTurnos())
	_, err := svc.RegistrarGasto(context.Background(), 1000, "Pasajes", "cajero1")
	assert.ErrorIs(t, err, ErrSinTurnoAbierto)
}

func TestGastoMontoInvalido(t *testing.T) {
	turnos := newStubTurnos()
	svc := NewCajaService(turnos)
	ctx := context.Background()
	_, err := svc.Abrir(ctx, uuid.New(), 0)
	require.NoError(t, err)

	_, err = svc.RegistrarGasto(ctx, 0, "nada", "cajero1")
	assert.ErrorIs(t, err, ErrMontoInvalido)
	_, err = svc.RegistrarGasto(ctx, -500, "negativo", "cajero1")
	assert.ErrorIs(t, err, ErrMontoInvalido)
}

func TestContribucionesAditivas(t *testing.T) {
	// two contributions accumulate, they never overwrite
	turnos := newStubTurnos()
	svc := NewCajaService(turnos)
	ctx := context.Background()

	turno, _ := svc.Abrir(ctx, uuid.New(), 0)
	var a, b pago.Contribucion
	a.Sumar(pago.ClaseEfectivo, 3800)
	b.Sumar(pago.ClaseEfectivo, 4550)
	require.NoError(t, svc.ContribuirTx(ctx, nil, turno.ID, a, 2))
	require.NoError(t, svc.ContribuirTx(ctx, nil, turno.ID, b, 1))

	actual, err := svc.TurnoAbierto(ctx)
	require.NoError(t, err)
	assert.Equal(t, money.Centavos(8350), actual.VentasEfectivo)
	assert.Equal(t, money.Centavos(8350), actual.TotalVentas)
	assert.Equal(t, 3, actual.ItemsVendidos)
}

func TestIncrementoCeroEsNoOp(t *testing.T) {
	turnos := newStubTurnos()
	svc := NewCajaService(turnos)
	ctx := context.Background()
	turno, _ := svc.Abrir(ctx, uuid.New(), 1000)

	require.NoError(t, svc.ContribuirTx(ctx, nil, turno.ID, pago.Contribucion{}, 0))
	actual, _ := svc.TurnoAbierto(ctx)
	assert.Zero(t, actual.TotalVentas)
}
