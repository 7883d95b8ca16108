package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cosspos/internal/dto"
	"cosspos/internal/infra"
	"cosspos/internal/money"
	"cosspos/internal/service"
)

// CajaHandler exposes the shift lifecycle.
type CajaHandler struct {
	caja *service.CajaService
}

func NewCajaHandler(caja *service.CajaService) *CajaHandler {
	return &CajaHandler{caja: caja}
}

// Abrir godoc
// @Summary Abrir turno de caja
// @Tags caja
// @Accept json
// @Produce json
// @Param body body dto.AbrirTurnoRequest true "Monto inicial"
// @Success 201 {object} dto.TurnoResponse
// @Security BearerAuth
// @Router /caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirTurnoRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	turno, err := h.caja.Abrir(c.Request.Context(), claims.UsuarioID, money.ToCentavos(req.MontoInicial))
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DeTurno(turno))
}

// Cerrar godoc
// @Summary Cerrar turno de caja
// @Tags caja
// @Accept json
// @Produce json
// @Param body body dto.CerrarTurnoRequest true "Efectivo contado"
// @Success 200 {object} dto.CierreResponse
// @Security BearerAuth
// @Router /caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarTurnoRequest
	if !bindear(c, &req) {
		return
	}
	res, err := h.caja.Cerrar(c.Request.Context(), money.ToCentavos(req.EfectivoContado), req.Notas)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeCierre(res))
}

// Actual returns the open shift.
func (h *CajaHandler) Actual(c *gin.Context) {
	turno, err := h.caja.TurnoAbierto(c.Request.Context())
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeTurno(turno))
}

// RegistrarGasto records a drawer expense against the open shift.
func (h *CajaHandler) RegistrarGasto(c *gin.Context) {
	var req dto.GastoRequest
	if !bindear(c, &req) {
		return
	}
	claims := sesion(c)
	gasto, err := h.caja.RegistrarGasto(c.Request.Context(), money.ToCentavos(req.Monto), req.Descripcion, claims.Username)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DeGasto(gasto))
}

// Historial lists past shifts.
func (h *CajaHandler) Historial(c *gin.Context) {
	limit, offset := paginacion(c)
	turnos, err := h.caja.Historial(c.Request.Context(), limit, offset)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeTurnos(turnos))
}

// Detalle returns one shift with its expenses.
func (h *CajaHandler) Detalle(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	turno, err := h.caja.Detalle(c.Request.Context(), id)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeTurno(turno))
}

// ReportePDF streams the shift-close reconciliation as PDF.
func (h *CajaHandler) ReportePDF(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	turno, err := h.caja.Detalle(c.Request.Context(), id)
	if err != nil {
		fallar(c, err)
		return
	}
	pdf, err := infra.GenerarReporteCierre(turno, turno.Gastos)
	if err != nil {
		fallar(c, err)
		return
	}
	nombre := fmt.Sprintf("cierre-%s.pdf", turno.ID)
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
