package service

import "errors"

// Domain errors surfaced to handlers; the error middleware maps them onto
// HTTP status codes. Messages are user-facing.
var (
	ErrSinTurnoAbierto   = errors.New("no hay un turno de caja abierto")
	ErrTurnoYaAbierto    = errors.New("ya existe un turno de caja abierto")
	ErrTurnoCerrado      = errors.New("el turno de caja ya fue cerrado")
	ErrVentaYaAnulada    = errors.New("la venta ya fue anulada")
	ErrPedidoNoPendiente = errors.New("el pedido no está pendiente")
	ErrCarritoVacio      = errors.New("la venta no tiene items")
	ErrMontoInvalido     = errors.New("el monto debe ser mayor a cero")
	ErrStockInsuficiente = errors.New("stock insuficiente para completar la operación")
	ErrCredenciales      = errors.New("usuario o contraseña incorrectos")
	ErrUsuarioInactivo   = errors.New("el usuario está deshabilitado")
)
