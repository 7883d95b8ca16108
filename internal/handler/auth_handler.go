package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cosspos/internal/dto"
	"cosspos/internal/service"
)

// AuthHandler exposes login and user management.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindear(c, &req) {
		return
	}
	token, usuario, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Usuario: dto.DeUsuario(usuario)})
}

// CrearUsuario registers a user (admin only).
func (h *AuthHandler) CrearUsuario(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindear(c, &req) {
		return
	}
	u, err := h.auth.CrearUsuario(c.Request.Context(), req.Username, req.Nombre, req.Password, req.Rol)
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DeUsuario(u))
}

// ListarUsuarios lists users (admin only).
func (h *AuthHandler) ListarUsuarios(c *gin.Context) {
	usuarios, err := h.auth.ListarUsuarios(c.Request.Context())
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeUsuarios(usuarios))
}

// CambiarPassword replaces a user's password (admin only).
func (h *AuthHandler) CambiarPassword(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var req dto.CambiarPasswordRequest
	if !bindear(c, &req) {
		return
	}
	if err := h.auth.CambiarPassword(c.Request.Context(), id, req.Password); err != nil {
		fallar(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
