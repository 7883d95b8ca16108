package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cosspos/internal/dto"
	"cosspos/internal/repository"
	"cosspos/internal/service"
)

// ProductoHandler exposes the catalog and the price-check scanner.
type ProductoHandler struct {
	productos *service.ProductoService
}

func NewProductoHandler(productos *service.ProductoService) *ProductoHandler {
	return &ProductoHandler{productos: productos}
}

// Crear registers a catalog item, optionally with opening stock.
func (h *ProductoHandler) Crear(c *gin.Context) {
	var req dto.ProductoRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	p, err := h.productos.Crear(c.Request.Context(), req.AServicio(claims.Username))
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DeProducto(p))
}

// Detalle returns one product.
func (h *ProductoHandler) Detalle(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	p, err := h.productos.Obtener(c.Request.Context(), id)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeProducto(p))
}

// Listar searches the catalog.
func (h *ProductoHandler) Listar(c *gin.Context) {
	limit, offset := paginacion(c)
	filtro := repository.ProductoFiltro{
		Busqueda:     c.Query("q"),
		IncluirBajas: c.Query("incluir_bajas") == "true",
		Limit:        limit,
		Offset:       offset,
	}
	if raw := c.Query("departamento_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filtro.DepartamentoID = &id
		}
	}
	productos, err := h.productos.Listar(c.Request.Context(), filtro)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeProductos(productos))
}

// Actualizar updates catalog fields (never stock).
func (h *ProductoHandler) Actualizar(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var req dto.ProductoRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	p, err := h.productos.Actualizar(c.Request.Context(), id, req.AServicio(claims.Username))
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeProducto(p))
}

// Desactivar soft-deletes a product.
func (h *ProductoHandler) Desactivar(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	if err := h.productos.Desactivar(c.Request.Context(), id); err != nil {
		fallar(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivar restores a soft-deleted product.
func (h *ProductoHandler) Reactivar(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	if err := h.productos.Reactivar(c.Request.Context(), id); err != nil {
		fallar(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegistrarIngreso applies a merchandise intake through the kardex.
func (h *ProductoHandler) RegistrarIngreso(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var req dto.IngresoRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	mov, err := h.productos.RegistrarIngreso(c.Request.Context(), id, req.Cantidad, req.Motivo, claims.Username)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DeMovimiento(mov))
}

// Ajustar applies a signed stock correction through the kardex.
func (h *ProductoHandler) Ajustar(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var req dto.AjusteRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	mov, err := h.productos.Ajustar(c.Request.Context(), id, req.Cantidad, req.Motivo, claims.Username)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DeMovimiento(mov))
}

// StockBajo lists products at or below their minimum.
func (h *ProductoHandler) StockBajo(c *gin.Context) {
	productos, err := h.productos.StockBajo(c.Request.Context())
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeProductos(productos))
}

// ConsultaPrecio answers the public price-check scanner by barcode.
func (h *ProductoHandler) ConsultaPrecio(c *gin.Context) {
	codigo := c.Param("codigo")
	p, err := h.productos.BuscarPorCodigo(c.Request.Context(), codigo)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeConsultaPrecio(p))
}
