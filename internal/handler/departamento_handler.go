package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cosspos/internal/dto"
	"cosspos/internal/model"
	"cosspos/internal/repository"
)

// DepartamentoHandler exposes department CRUD. Thin enough that it talks to
// the repository directly.
type DepartamentoHandler struct {
	departamentos repository.DepartamentoRepository
}

func NewDepartamentoHandler(d repository.DepartamentoRepository) *DepartamentoHandler {
	return &DepartamentoHandler{departamentos: d}
}

func (h *DepartamentoHandler) Crear(c *gin.Context) {
	var req dto.DepartamentoRequest
	if !bindear(c, &req) {
		return
	}
	d := &model.Departamento{
		ID:          uuid.New(),
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := h.departamentos.Create(c.Request.Context(), d); err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DeDepartamento(d))
}

func (h *DepartamentoHandler) Listar(c *gin.Context) {
	deps, err := h.departamentos.List(c.Request.Context())
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeDepartamentos(deps))
}

func (h *DepartamentoHandler) Actualizar(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var req dto.DepartamentoRequest
	if !bindear(c, &req) {
		return
	}
	d, err := h.departamentos.FindByID(c.Request.Context(), id)
	if err != nil {
		fallar(c, err)
		return
	}
	d.Nombre = req.Nombre
	d.Descripcion = req.Descripcion
	if err := h.departamentos.Update(c.Request.Context(), d); err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeDepartamento(d))
}

func (h *DepartamentoHandler) Eliminar(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	if err := h.departamentos.SoftDelete(c.Request.Context(), id); err != nil {
		fallar(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
