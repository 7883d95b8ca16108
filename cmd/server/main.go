package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cosspos/internal/config"
	"cosspos/internal/handler"
	"cosspos/internal/infra"
	"cosspos/internal/repository"
	"cosspos/internal/router"
	"cosspos/internal/service"
	"cosspos/internal/worker"
)

func main() {
	cfg, err := config.Cargar()
	if err != nil {
		log.Fatal().Err(err).Msg("cargando configuración")
	}
	if cfg.EsProduccion() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := infra.ConectarDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializando postgres")
	}
	rdb, err := infra.ConectarRedis(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializando redis")
	}
	mailer := infra.NewMailer(cfg)

	productoRepo := repository.NewProductoRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	departamentoRepo := repository.NewDepartamentoRepository(db)

	pool := worker.NewPool(rdb, cfg.WorkersAlertas)
	pool.Registrar(worker.TipoAlertaStock, worker.NewAlertaStockHandler(productoRepo, mailer))
	pool.Registrar(worker.TipoEmail, worker.NewEmailHandler(mailer))

	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo)
	cajaSvc := service.NewCajaService(turnoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, cajaSvc, inventarioSvc).ConAlertas(pool)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, ventaRepo, cajaSvc, inventarioSvc)
	productoSvc := service.NewProductoService(productoRepo, inventarioSvc, rdb)
	authSvc := service.NewAuthService(usuarioRepo, cfg.JWTSecreto, cfg.JWTDuracion)

	r := router.New(cfg, authSvc, router.Handlers{
		Health:        handler.NewHealthHandler(db, rdb),
		Auth:          handler.NewAuthHandler(authSvc),
		Productos:     handler.NewProductoHandler(productoSvc),
		Departamentos: handler.NewDepartamentoHandler(departamentoRepo),
		Inventario:    handler.NewInventarioHandler(inventarioSvc),
		Caja:          handler.NewCajaHandler(cajaSvc),
		Ventas:        handler.NewVentaHandler(ventaSvc),
		Pedidos:       handler.NewPedidoHandler(pedidoSvc),
		Admin:         handler.NewAdminHandler(pool),
	})

	ctx, detener := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer detener()

	pool.Iniciar(ctx)
	worker.IniciarCronAlertas(ctx, pool, productoRepo, cfg.AlertasCadaCuanto)

	srv := &http.Server{
		Addr:         ":" + cfg.PuertoHTTP,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		log.Info().Str("puerto", cfg.PuertoHTTP).Msg("servidor http escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("servidor http")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal recibida, apagando")

	apagado, cancelar := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelar()
	if err := srv.Shutdown(apagado); err != nil {
		log.Error().Err(err).Msg("apagando servidor http")
	}
	pool.Esperar()
	log.Info().Msg("apagado completo")
}
