// seeduser creates the first administrator directly against the database.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"cosspos/internal/config"
	"cosspos/internal/infra"
	"cosspos/internal/repository"
	"cosspos/internal/service"
)

func main() {
	username := flag.String("username", "admin", "nombre de usuario")
	nombre := flag.String("nombre", "Administrador", "nombre completo")
	password := flag.String("password", "", "contraseña (obligatoria)")
	rol := flag.String("rol", "administrador", "rol: cajero|supervisor|administrador")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("la contraseña es obligatoria: -password")
	}

	cfg, err := config.Cargar()
	if err != nil {
		log.Fatal().Err(err).Msg("cargando configuración")
	}
	db, err := infra.ConectarDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conectando a postgres")
	}

	auth := service.NewAuthService(repository.NewUsuarioRepository(db), cfg.JWTSecreto, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u, err := auth.CrearUsuario(ctx, *username, *nombre, *password, *rol)
	if err != nil {
		log.Fatal().Err(err).Msg("creando usuario")
	}
	log.Info().Str("id", u.ID.String()).Str("username", u.Username).Str("rol", u.Rol).Msg("usuario creado")
}
