package handler

import (
	"net/http"
	"reflect"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cosspos/internal/apierror"
	"cosspos/internal/middleware"
	"cosspos/internal/service"
)

var registrarValidaciones sync.Once

// RegistrarValidaciones teaches the validator to treat decimal.Decimal as a
// plain number so tags like required/gt work on wire amounts.
func RegistrarValidaciones() {
	registrarValidaciones.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	})
}

// bindear decodes and validates the JSON body, answering 400 itself on
// failure.
func bindear(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			apierror.New(http.StatusBadRequest, "cuerpo de la solicitud inválido").ConDetalle(err.Error()))
		return false
	}
	return true
}

// fallar defers the error to the error-handler middleware.
func fallar(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// idDeRuta parses the :id path parameter.
func idDeRuta(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			apierror.New(http.StatusBadRequest, "identificador inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// sesion returns the authenticated claims; routes behind Auth always have
// them.
func sesion(c *gin.Context) *service.Claims {
	return middleware.ClaimsDe(c)
}

// paginacion reads limit/offset query params with sane caps.
func paginacion(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
