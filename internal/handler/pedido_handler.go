package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cosspos/internal/apierror"
	"cosspos/internal/dto"
	"cosspos/internal/money"
	"cosspos/internal/repository"
	"cosspos/internal/service"
)

// PedidoHandler exposes orders and live-sale bags.
type PedidoHandler struct {
	pedidos *service.PedidoService
}

func NewPedidoHandler(pedidos *service.PedidoService) *PedidoHandler {
	return &PedidoHandler{pedidos: pedidos}
}

// Crear godoc
// @Summary Crear pedido o bolsa
// @Tags pedidos
// @Accept json
// @Produce json
// @Param body body dto.PedidoRequest true "Pedido"
// @Success 201 {object} dto.PedidoResponse
// @Security BearerAuth
// @Router /pedidos [post]
func (h *PedidoHandler) Crear(c *gin.Context) {
	var req dto.PedidoRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	pedido, err := h.pedidos.Crear(c.Request.Context(), req.AServicio(claims.UsuarioID, claims.Username))
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DePedido(pedido))
}

// AgregarItems appends lines to a pending pedido.
func (h *PedidoHandler) AgregarItems(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var req dto.AgregarItemsRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	pedido, err := h.pedidos.AgregarItems(c.Request.Context(), id, req.AServicio(), claims.Username)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DePedido(pedido))
}

// QuitarItem removes one line by its position.
func (h *PedidoHandler) QuitarItem(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			apierror.New(http.StatusBadRequest, "índice de item inválido"))
		return
	}
	claims := sesion(c)
	pedido, err := h.pedidos.QuitarItem(c.Request.Context(), id, idx, claims.Username)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DePedido(pedido))
}

// Abonar collects a partial payment against the saldo.
func (h *PedidoHandler) Abonar(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var req dto.AbonoRequest
	if !bindear(c, &req) {
		return
	}
	pedido, err := h.pedidos.AbonoParcial(c.Request.Context(), id, req.Pago.AServicio())
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DePedido(pedido))
}

// Finalizar settles the saldo and converts the pedido into a sale.
func (h *PedidoHandler) Finalizar(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var req dto.FinalizarPedidoRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	var pagos []service.PagoInput
	for _, p := range req.Pagos {
		pagos = append(pagos, p.AServicio())
	}
	var efectivo money.Centavos
	if req.EfectivoRecibido != nil {
		efectivo = money.ToCentavos(*req.EfectivoRecibido)
	}
	venta, err := h.pedidos.Finalizar(c.Request.Context(), id, pagos, efectivo, claims.UsuarioID, claims.Username)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DeVenta(venta))
}

// Cancelar returns reserved stock and removes the pedido.
func (h *PedidoHandler) Cancelar(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	claims := sesion(c)
	if err := h.pedidos.Cancelar(c.Request.Context(), id, claims.Username); err != nil {
		fallar(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Detalle returns one pedido.
func (h *PedidoHandler) Detalle(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	pedido, err := h.pedidos.Detalle(c.Request.Context(), id)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DePedido(pedido))
}

// Listar returns pedidos filtered by estado, plataforma and bag flag.
func (h *PedidoHandler) Listar(c *gin.Context) {
	limit, offset := paginacion(c)
	filtro := repository.PedidoFiltro{
		Estado:     c.Query("estado"),
		Plataforma: c.Query("plataforma"),
		SoloBolsas: c.Query("bolsas") == "true",
		Limit:      limit,
		Offset:     offset,
	}
	pedidos, err := h.pedidos.Listar(c.Request.Context(), filtro)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DePedidos(pedidos))
}
