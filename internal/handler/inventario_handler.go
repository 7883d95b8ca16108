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

// InventarioHandler exposes the kardex.
type InventarioHandler struct {
	inventario *service.InventarioService
}

func NewInventarioHandler(inv *service.InventarioService) *InventarioHandler {
	return &InventarioHandler{inventario: inv}
}

// ListarMovimientos returns kardex entries filtered by product, type and
// date range, newest first.
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	limit, offset := paginacion(c)
	filtro := repository.MovimientoFiltro{
		Tipo:   c.Query("tipo"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("producto_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filtro.ProductoID = &id
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
	movs, err := h.inventario.ListarMovimientos(c.Request.Context(), filtro)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeMovimientos(movs))
}
