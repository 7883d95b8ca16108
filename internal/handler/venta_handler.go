package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cosspos/internal/dto"
	"cosspos/internal/repository"
	"cosspos/internal/service"
)

// VentaHandler exposes checkout, void and sale listings.
type VentaHandler struct {
	ventas *service.VentaService
}

func NewVentaHandler(ventas *service.VentaService) *VentaHandler {
	return &VentaHandler{ventas: ventas}
}

// Registrar godoc
// @Summary Registrar una venta
// @Tags ventas
// @Accept json
// @Produce json
// @Param body body dto.VentaRequest true "Venta"
// @Success 201 {object} dto.VentaResponse
// @Security BearerAuth
// @Router /ventas [post]
func (h *VentaHandler) Registrar(c *gin.Context) {
	var req dto.VentaRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	venta, err := h.ventas.RegistrarVenta(c.Request.Context(), req.AServicio(claims.UsuarioID, claims.Username))
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DeVenta(venta))
}

// Anular godoc
// @Summary Anular una venta
// @Tags ventas
// @Accept json
// @Produce json
// @Param id path string true "ID de la venta"
// @Param body body dto.AnulacionRequest true "Motivo"
// @Success 200 {object} dto.VentaResponse
// @Security BearerAuth
// @Router /ventas/{id}/anular [post]
func (h *VentaHandler) Anular(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var req dto.AnulacionRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	venta, err := h.ventas.AnularVenta(c.Request.Context(), id, req.Motivo, claims.Username)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeVenta(venta))
}

// Detalle returns one sale.
func (h *VentaHandler) Detalle(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	venta, err := h.ventas.Detalle(c.Request.Context(), id)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeVenta(venta))
}

// Listar returns sales filtered by turno, estado and date range.
func (h *VentaHandler) Listar(c *gin.Context) {
	limit, offset := paginacion(c)
	filtro := repository.VentaFiltro{
		Estado: c.Query("estado"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("turno_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filtro.TurnoID = &id
		}
	}
	if raw := c.Query("desde"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filtro.Desde = &t
		}
	}
	if raw := c.Query("hasta"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filtro.Hasta = &t
		}
	}
	ventas, err := h.ventas.Listar(c.Request.Context(), filtro)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeVentas(ventas))
}
