package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"cosspos/internal/apierror"
	"cosspos/internal/pago"
	"cosspos/internal/service"
)

// ErrorHandler maps domain errors pushed via c.Error onto HTTP responses.
// Unknown errors become an opaque 500 so internals never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.Codigo, apiErr)
			return
		}

		status := estadoPara(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).
				Str("ruta", c.FullPath()).
				Str("request_id", c.GetString("request_id")).
				Msg("error no controlado")
			c.JSON(status, apierror.New(status, "error interno del servidor"))
			return
		}
		c.JSON(status, apierror.New(status, err.Error()))
	}
}

func estadoPara(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSinTurnoAbierto),
		errors.Is(err, service.ErrTurnoYaAbierto),
		errors.Is(err, service.ErrTurnoCerrado),
		errors.Is(err, service.ErrVentaYaAnulada),
		errors.Is(err, service.ErrPedidoNoPendiente),
		errors.Is(err, service.ErrStockInsuficiente):
		return http.StatusConflict
	case errors.Is(err, service.ErrCarritoVacio),
		errors.Is(err, service.ErrMontoInvalido),
		errors.Is(err, service.ErrTipoMovimiento),
		errors.Is(err, service.ErrCantidadInvalida),
		errors.Is(err, service.ErrSignoMovimiento),
		errors.Is(err, pago.ErrPagoInsuficiente),
		errors.Is(err, pago.ErrSobrepagoNoPermitido),
		errors.Is(err, pago.ErrEntradaInvalida):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrCredenciales),
		errors.Is(err, service.ErrUsuarioInactivo):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
