package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cosspos/internal/model"
	"cosspos/internal/money"
	"cosspos/internal/pago"
)

type entornoVentas struct {
	productos   *stubProductos
	movimientos *stubMovimientos
	turnos      *stubTurnos
	ventas      *stubVentas
	caja        *CajaService
	svc         *VentaService
}

func nuevoEntornoVentas(t *testing.T, productos ...*model.Producto) *entornoVentas {
	t.Helper()
	e := &entornoVentas{
		productos:   newStubProductos(productos...),
		movimientos: newStubMovimientos(),
		turnos:      newStubTurnos(),
		ventas:      newStubVentas(),
	}
	e.caja = NewCajaService(e.turnos)
	inv := NewInventarioService(e.productos, e.movimientos)
	e.svc = NewVentaService(e.ventas, e.productos, e.caja, inv)
	return e
}

func (e *entornoVentas) abrirTurno(t *testing.T, inicial money.Centavos) *model.Turno {
	t.Helper()
	turno, err := e.caja.Abrir(context.Background(), uuid.New(), inicial)
	require.NoError(t, err)
	return turno
}

func pagoEfectivo(monto money.Centavos) PagoInput {
	return PagoInput{MetodoID: "efectivo", Etiqueta: "EFECTIVO", Monto: monto, PermiteSobrepago: true}
}

func TestVentaEfectivoExacto(t *testing.T) {
	p := productoDePrueba(10) // precio 25.00
	e := nuevoEntornoVentas(t, p)
	e.abrirTurno(t, 10000)
	ctx := context.Background()

	// 45.50: un polo de 25.00 más un genérico de 20.50
	venta, err := e.svc.RegistrarVenta(ctx, VentaInput{
		Items: []ItemInput{
			{ProductoID: &p.ID, Cantidad: 1},
			{Nombre: "Ajuste bazar", Precio: 2050, Cantidad: 1},
		},
		Pagos:     []PagoInput{pagoEfectivo(4550)},
		UsuarioID: uuid.New(),
		Actor:     "cajero1",
	})
	require.NoError(t, err)

	assert.Equal(t, money.Centavos(4550), venta.Total)
	assert.Equal(t, "EFECTIVO", venta.Metodo)
	assert.Zero(t, venta.Vuelto)
	assert.Equal(t, model.VentaCompletada, venta.Estado)

	turno, _ := e.caja.TurnoAbierto(ctx)
	assert.Equal(t, money.Centavos(4550), turno.VentasEfectivo)
	assert.Equal(t, money.Centavos(4550), turno.TotalVentas)
	assert.Equal(t, 2, turno.ItemsVendidos)

	// only the catalog line touched stock
	actual, _ := e.productos.FindByID(ctx, p.ID)
	assert.Equal(t, 9, actual.StockActual)
	assert.Len(t, e.movimientos.porProducto(p.ID), 1)
}

func TestVentaConVuelto(t *testing.T) {
	p := productoDePrueba(10)
	p.PrecioVenta = 3800
	e := nuevoEntornoVentas(t, p)
	e.abrirTurno(t, 0)
	ctx := context.Background()

	venta, err := e.svc.RegistrarVenta(ctx, VentaInput{
		Items:     []ItemInput{{ProductoID: &p.ID, Cantidad: 1}},
		Pagos:     []PagoInput{pagoEfectivo(5000)},
		UsuarioID: uuid.New(),
		Actor:     "cajero1",
	})
	require.NoError(t, err)

	assert.Equal(t, money.Centavos(5000), venta.MontoRecibido)
	assert.Equal(t, money.Centavos(1200), venta.Vuelto)

	// el turno registra la venta, no el billete recibido
	turno, _ := e.caja.TurnoAbierto(ctx)
	assert.Equal(t, money.Centavos(3800), turno.VentasEfectivo)
}

func TestVentaMixta(t *testing.T) {
	p := productoDePrueba(10)
	p.PrecioVenta = 10000
	e := nuevoEntornoVentas(t, p)
	e.abrirTurno(t, 0)
	ctx := context.Background()

	venta, err := e.svc.RegistrarVenta(ctx, VentaInput{
		Items: []ItemInput{{ProductoID: &p.ID, Cantidad: 1}},
		Pagos: []PagoInput{
			pagoEfectivo(6000),
			{MetodoID: "yape", Etiqueta: "YAPE", Monto: 4000},
		},
		UsuarioID: uuid.New(),
		Actor:     "cajero1",
	})
	require.NoError(t, err)

	assert.Equal(t, pago.MetodoMixto, venta.Metodo)
	require.Len(t, venta.Pagos, 2)

	turno, _ := e.caja.TurnoAbierto(ctx)
	assert.Equal(t, money.Centavos(6000), turno.VentasEfectivo)
	assert.Equal(t, money.Centavos(4000), turno.VentasDigital)
}

func TestVentaEfectivoImplicito(t *testing.T) {
	p := productoDePrueba(5)
	e := nuevoEntornoVentas(t, p)
	e.abrirTurno(t, 0)

	venta, err := e.svc.RegistrarVenta(context.Background(), VentaInput{
		Items:            []ItemInput{{ProductoID: &p.ID, Cantidad: 1}},
		EfectivoRecibido: 3000,
		UsuarioID:        uuid.New(),
		Actor:            "cajero1",
	})
	require.NoError(t, err)
	assert.Equal(t, "EFECTIVO", venta.Metodo)
	assert.Equal(t, money.Centavos(500), venta.Vuelto)
}

func TestVentaSinTurno(t *testing.T) {
	p := productoDePrueba(5)
	e := nuevoEntornoVentas(t, p)

	_, err := e.svc.RegistrarVenta(context.Background(), VentaInput{
		Items: []ItemInput{{ProductoID: &p.ID, Cantidad: 1}},
		Pagos: []PagoInput{pagoEfectivo(2500)},
	})
	assert.ErrorIs(t, err, ErrSinTurnoAbierto)
}

func TestVentaCarritoVacio(t *testing.T) {
	e := nuevoEntornoVentas(t)
	e.abrirTurno(t, 0)
	_, err := e.svc.RegistrarVenta(context.Background(), VentaInput{Pagos: []PagoInput{pagoEfectivo(100)}})
	assert.ErrorIs(t, err, ErrCarritoVacio)
}

func TestVentaStockInsuficiente(t *testing.T) {
	p := productoDePrueba(2)
	e := nuevoEntornoVentas(t, p)
	e.abrirTurno(t, 0)
	ctx := context.Background()

	_, err := e.svc.RegistrarVenta(ctx, VentaInput{
		Items: []ItemInput{{ProductoID: &p.ID, Cantidad: 3}},
		Pagos: []PagoInput{pagoEfectivo(7500)},
	})
	assert.ErrorIs(t, err, ErrStockInsuficiente)

	// nothing was written
	actual, _ := e.productos.FindByID(ctx, p.ID)
	assert.Equal(t, 2, actual.StockActual)
	assert.Empty(t, e.movimientos.porProducto(p.ID))
}

func TestVentaPagoInsuficiente(t *testing.T) {
	p := productoDePrueba(5)
	e := nuevoEntornoVentas(t, p)
	e.abrirTurno(t, 0)

	_, err := e.svc.RegistrarVenta(context.Background(), VentaInput{
		Items: []ItemInput{{ProductoID: &p.ID, Cantidad: 1}},
		Pagos: []PagoInput{{MetodoID: "yape", Etiqueta: "YAPE", Monto: 1000}},
	})
	assert.ErrorIs(t, err, pago.ErrPagoInsuficiente)
}

func TestAnulacionRestituyeTodo(t *testing.T) {
	p := productoDePrueba(10)
	p.PrecioVenta = 3800
	e := nuevoEntornoVentas(t, p)
	e.abrirTurno(t, 10000)
	ctx := context.Background()

	venta, err := e.svc.RegistrarVenta(ctx, VentaInput{
		Items:     []ItemInput{{ProductoID: &p.ID, Cantidad: 2}},
		Pagos:     []PagoInput{pagoEfectivo(8000)},
		UsuarioID: uuid.New(),
		Actor:     "cajero1",
	})
	require.NoError(t, err)

	anulada, err := e.svc.AnularVenta(ctx, venta.ID, "cliente se arrepintió", "sup1")
	require.NoError(t, err)
	assert.Equal(t, model.VentaAnulada, anulada.Estado)
	require.NotNil(t, anulada.MotivoAnulacion)

	// stock vuelve a su valor original con un movimiento inverso, no con un
	// borrado del original
	actual, _ := e.productos.FindByID(ctx, p.ID)
	assert.Equal(t, 10, actual.StockActual)
	historial := e.movimientos.porProducto(p.ID)
	require.Len(t, historial, 2)
	assert.Equal(t, model.MovimientoSalida, historial[0].Tipo)
	assert.Equal(t, model.MovimientoEntrada, historial[1].Tipo)
	assert.Equal(t, -historial[0].Cantidad, historial[1].Cantidad)

	// el turno queda como si la venta nunca hubiera ocurrido
	turno, _ := e.caja.TurnoAbierto(ctx)
	assert.Zero(t, turno.VentasEfectivo)
	assert.Zero(t, turno.TotalVentas)
	assert.Zero(t, turno.ItemsVendidos)
}

func TestAnulacionDoble(t *testing.T) {
	p := productoDePrueba(10)
	e := nuevoEntornoVentas(t, p)
	e.abrirTurno(t, 0)
	ctx := context.Background()

	venta, err := e.svc.RegistrarVenta(ctx, VentaInput{
		Items: []ItemInput{{ProductoID: &p.ID, Cantidad: 1}},
		Pagos: []PagoInput{pagoEfectivo(2500)},
	})
	require.NoError(t, err)

	_, err = e.svc.AnularVenta(ctx, venta.ID, "error de cobro", "sup1")
	require.NoError(t, err)
	_, err = e.svc.AnularVenta(ctx, venta.ID, "otra vez", "sup1")
	assert.ErrorIs(t, err, ErrVentaYaAnulada)

	// el stock solo se restituyó una vez
	actual, _ := e.productos.FindByID(ctx, p.ID)
	assert.Equal(t, 10, actual.StockActual)
}

func TestAnulacionConTurnoCerrado(t *testing.T) {
	p := productoDePrueba(10)
	e := nuevoEntornoVentas(t, p)
	e.abrirTurno(t, 0)
	ctx := context.Background()

	venta, err := e.svc.RegistrarVenta(ctx, VentaInput{
		Items: []ItemInput{{ProductoID: &p.ID, Cantidad: 1}},
		Pagos: []PagoInput{pagoEfectivo(2500)},
	})
	require.NoError(t, err)

	_, err = e.caja.Cerrar(ctx, 2500, "")
	require.NoError(t, err)

	_, err = e.svc.AnularVenta(ctx, venta.ID, "tarde", "sup1")
	assert.ErrorIs(t, err, ErrTurnoCerrado)
}

func TestVentaGenericoNoTocaStock(t *testing.T) {
	e := nuevoEntornoVentas(t)
	e.abrirTurno(t, 0)

	venta, err := e.svc.RegistrarVenta(context.Background(), VentaInput{
		Items: []ItemInput{{Nombre: "Servicio de ajuste", Precio: 1500, Cantidad: 1}},
		Pagos: []PagoInput{pagoEfectivo(1500)},
	})
	require.NoError(t, err)
	assert.True(t, venta.Items[0].Generico)
}
