//go:build integration

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"

	"cosspos/internal/config"
	"cosspos/internal/handler"
	"cosspos/internal/infra"
	"cosspos/internal/repository"
	"cosspos/internal/router"
	"cosspos/internal/service"
	"cosspos/internal/worker"
)

type entorno struct {
	srv   *httptest.Server
	token string
	db    *gorm.DB
}

func levantarEntorno(t *testing.T) *entorno {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.RunContainer(ctx,
		postgres.WithDatabase("cosspos_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	rd, err := tcredis.RunContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rd.Terminate(ctx) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	puerto, err := pg.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	redisHost, err := rd.Host(ctx)
	require.NoError(t, err)
	redisPuerto, err := rd.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	cfg := &config.Config{
		Entorno:        "test",
		DBHost:         host,
		DBPuerto:       puerto.Port(),
		DBUsuario:      "postgres",
		DBPassword:     "postgres",
		DBNombre:       "cosspos_test",
		DBSSLMode:      "disable",
		RedisAddr:      fmt.Sprintf("%s:%s", redisHost, redisPuerto.Port()),
		JWTSecreto:     "secreto-de-prueba",
		JWTDuracion:    time.Hour,
		RateLimitRPS:   1000,
		WorkersAlertas: 1,
	}

	db, err := infra.ConectarDB(cfg)
	require.NoError(t, err)
	rdb, err := infra.ConectarRedis(cfg)
	require.NoError(t, err)

	productoRepo := repository.NewProductoRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	departamentoRepo := repository.NewDepartamentoRepository(db)

	pool := worker.NewPool(rdb, 1)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo)
	cajaSvc := service.NewCajaService(turnoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, cajaSvc, inventarioSvc)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, ventaRepo, cajaSvc, inventarioSvc)
	productoSvc := service.NewProductoService(productoRepo, inventarioSvc, rdb)
	authSvc := service.NewAuthService(usuarioRepo, cfg.JWTSecreto, cfg.JWTDuracion)

	_, err = authSvc.CrearUsuario(ctx, "admin", "Admin", "clave-segura-123", "administrador")
	require.NoError(t, err)

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
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	e := &entorno{srv: srv, db: db}

	var login struct {
		Token string `json:"token"`
	}
	e.post(t, "/api/v1/auth/login", map[string]any{
		"username": "admin",
		"password": "clave-segura-123",
	}, http.StatusOK, &login)
	e.token = login.Token
	return e
}

func (e *entorno) post(t *testing.T, ruta string, cuerpo any, esperado int, out any) {
	t.Helper()
	raw, err := json.Marshal(cuerpo)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, e.srv.URL+ruta, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, esperado, res.StatusCode, "POST %s", ruta)
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
}

func (e *entorno) get(t *testing.T, ruta string, out any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.srv.URL+ruta, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+e.token)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode, "GET %s", ruta)
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
}

func TestFlujoCompletoDeVenta(t *testing.T) {
	e := levantarEntorno(t)

	var producto struct {
		ID          string `json:"id"`
		StockActual int    `json:"stock_actual"`
	}
	e.post(t, "/api/v1/productos", map[string]any{
		"nombre":        "Polo básico",
		"codigos":       []string{"7750001001"},
		"precio_venta":  "38.00",
		"precio_costo":  "20.00",
		"stock_inicial": 10,
	}, http.StatusCreated, &producto)
	require.Equal(t, 10, producto.StockActual)

	e.post(t, "/api/v1/caja/abrir", map[string]any{"monto_inicial": "100.00"}, http.StatusCreated, nil)

	// venta en efectivo con vuelto: 50.00 sobre 38.00
	var venta struct {
		ID     string `json:"id"`
		Total  string `json:"total"`
		Vuelto string `json:"vuelto"`
		Metodo string `json:"metodo"`
	}
	e.post(t, "/api/v1/ventas", map[string]any{
		"items": []map[string]any{{"producto_id": producto.ID, "cantidad": 1}},
		"pagos": []map[string]any{{
			"metodo_id": "efectivo", "etiqueta": "EFECTIVO",
			"monto": "50.00", "permite_sobrepago": true,
		}},
	}, http.StatusCreated, &venta)
	assert.Equal(t, "38.00", venta.Total)
	assert.Equal(t, "12.00", venta.Vuelto)
	assert.Equal(t, "EFECTIVO", venta.Metodo)

	var actual struct {
		StockActual int `json:"stock_actual"`
	}
	e.get(t, "/api/v1/productos/"+producto.ID, &actual)
	assert.Equal(t, 9, actual.StockActual)

	// el turno solo retiene el total de la venta
	var turno struct {
		VentasEfectivo string `json:"ventas_efectivo"`
	}
	e.get(t, "/api/v1/caja/actual", &turno)
	assert.Equal(t, "38.00", turno.VentasEfectivo)

	// anulación: stock y caja regresan
	e.post(t, "/api/v1/ventas/"+venta.ID+"/anular",
		map[string]any{"motivo": "cliente se arrepintió"}, http.StatusOK, nil)
	e.get(t, "/api/v1/productos/"+producto.ID, &actual)
	assert.Equal(t, 10, actual.StockActual)

	// cierre cuadrado: 100.00 inicial + 0 ventas vigentes
	var cierre struct {
		Esperado   string `json:"esperado"`
		Diferencia string `json:"diferencia"`
	}
	e.post(t, "/api/v1/caja/cerrar", map[string]any{
		"efectivo_contado": "100.00",
	}, http.StatusOK, &cierre)
	assert.Equal(t, "100.00", cierre.Esperado)
	assert.Equal(t, "0.00", cierre.Diferencia)
}

func TestFlujoDePedido(t *testing.T) {
	e := levantarEntorno(t)

	var producto struct {
		ID string `json:"id"`
	}
	e.post(t, "/api/v1/productos", map[string]any{
		"nombre":        "Blusa de lino",
		"precio_venta":  "25.00",
		"stock_inicial": 5,
	}, http.StatusCreated, &producto)
	e.post(t, "/api/v1/caja/abrir", map[string]any{"monto_inicial": "0.00"}, http.StatusCreated, nil)

	var pedido struct {
		ID    string `json:"id"`
		Total string `json:"total"`
		Saldo string `json:"saldo"`
	}
	e.post(t, "/api/v1/pedidos", map[string]any{
		"items":          []map[string]any{{"producto_id": producto.ID, "cantidad": 3}},
		"cliente_nombre": "Rosa Quispe",
		"plataforma":     "facebook",
	}, http.StatusCreated, &pedido)
	assert.Equal(t, "75.00", pedido.Total)
	assert.Equal(t, "75.00", pedido.Saldo)

	var actual struct {
		StockActual int `json:"stock_actual"`
	}
	e.get(t, "/api/v1/productos/"+producto.ID, &actual)
	assert.Equal(t, 2, actual.StockActual, "la reserva descuenta al crear")

	// cancelar devuelve las 3 unidades
	e.post(t, "/api/v1/pedidos/"+pedido.ID+"/cancelar", map[string]any{}, http.StatusNoContent, nil)
	e.get(t, "/api/v1/productos/"+producto.ID, &actual)
	assert.Equal(t, 5, actual.StockActual)
}
