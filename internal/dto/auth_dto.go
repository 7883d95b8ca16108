package dto

import (
	"cosspos/internal/model"
)

// LoginRequest authenticates a user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// CrearUsuarioRequest registers a user.
type CrearUsuarioRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Nombre   string `json:"nombre" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Rol      string `json:"rol" binding:"required,oneof=cajero supervisor administrador"`
}

// CambiarPasswordRequest replaces a user's password.
type CambiarPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// UsuarioResponse is the user on the wire; never includes the hash.
type UsuarioResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
	Activo   bool   `json:"activo"`
}

// DeUsuario maps the model to its wire shape.
func DeUsuario(u *model.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Rol:      u.Rol,
		Activo:   u.Activo,
	}
}

// DeUsuarios maps a listing.
func DeUsuarios(usuarios []model.Usuario) []UsuarioResponse {
	out := make([]UsuarioResponse, len(usuarios))
	for i := range usuarios {
		out[i] = DeUsuario(&usuarios[i])
	}
	return out
}

// DepartamentoRequest creates or updates a department.
type DepartamentoRequest struct {
	Nombre      string  `json:"nombre" binding:"required,min=2"`
	Descripcion *string `json:"descripcion"`
}

// DepartamentoResponse is the department on the wire.
type DepartamentoResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      bool    `json:"activo"`
}

func DeDepartamento(d *model.Departamento) DepartamentoResponse {
	return DepartamentoResponse{
		ID:          d.ID.String(),
		Nombre:      d.Nombre,
		Descripcion: d.Descripcion,
		Activo:      d.Activo,
	}
}

func DeDepartamentos(deps []model.Departamento) []DepartamentoResponse {
	out := make([]DepartamentoResponse, len(deps))
	for i := range deps {
		out[i] = DeDepartamento(&deps[i])
	}
	return out
}
