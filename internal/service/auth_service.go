package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"cosspos/internal/model"
	"cosspos/internal/repository"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UsuarioID uuid.UUID `json:"usuario_id"`
	Username  string    `json:"username"`
	Rol       string    `json:"rol"`
	jwt.RegisteredClaims
}

// AuthService issues JWTs and manages users.
type AuthService struct {
	usuarios repository.UsuarioRepository
	secreto  []byte
	duracion time.Duration
}

func NewAuthService(u repository.UsuarioRepository, secreto string, duracion time.Duration) *AuthService {
	return &AuthService{usuarios: u, secreto: []byte(secreto), duracion: duracion}
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.Usuario, error) {
	u, err := s.usuarios.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrCredenciales
	}
	if !u.Activo {
		return "", nil, ErrUsuarioInactivo
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		log.Warn().Str("username", username).Msg("intento de login fallido")
		return "", nil, ErrCredenciales
	}
	token, err := s.firmar(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) firmar(u *model.Usuario) (string, error) {
	ahora := time.Now()
	claims := Claims{
		UsuarioID: u.ID,
		Username:  u.Username,
		Rol:       u.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(ahora),
			ExpiresAt: jwt.NewNumericDate(ahora.Add(s.duracion)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secreto)
}

// Validar parses and verifies a token, returning its claims.
func (s *AuthService) Validar(tokenStr string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secreto, nil
	})
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

// CrearUsuario registers a user with a bcrypt-hashed password.
func (s *AuthService) CrearUsuario(ctx context.Context, username, nombre, password, rol string) (*model.Usuario, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.Usuario{
		ID:           uuid.New(),
		Username:     username,
		Nombre:       nombre,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	if err := s.usuarios.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CambiarPassword re-hashes and stores a new password.
func (s *AuthService) CambiarPassword(ctx context.Context, id uuid.UUID, password string) error {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.usuarios.Update(ctx, u)
}

// ListarUsuarios returns all users.
func (s *AuthService) ListarUsuarios(ctx context.Context) ([]model.Usuario, error) {
	return s.usuarios.List(ctx)
}
