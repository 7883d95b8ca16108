// Package router assembles the HTTP surface.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cosspos/internal/config"
	"cosspos/internal/handler"
	"cosspos/internal/middleware"
	"cosspos/internal/service"
)

// Roles.
const (
	RolCajero        = "cajero"
	RolSupervisor    = "supervisor"
	RolAdministrador = "administrador"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Productos     *handler.ProductoHandler
	Departamentos *handler.DepartamentoHandler
	Inventario    *handler.InventarioHandler
	Caja          *handler.CajaHandler
	Ventas        *handler.VentaHandler
	Pedidos       *handler.PedidoHandler
	Admin         *handler.AdminHandler
}

// New builds the gin engine with the full middleware chain and route table.
func New(cfg *config.Config, auth *service.AuthService, h Handlers) *gin.Engine {
	if cfg.EsProduccion() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegistrarValidaciones()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimiter(cfg.RateLimitRPS))
	r.Use(middleware.ErrorHandler())

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	if !cfg.EsProduccion() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api/v1")

	// público: el verificador de precios de góndola no lleva sesión
	api.GET("/consulta-precio/:codigo", h.Productos.ConsultaPrecio)
	api.POST("/auth/login", h.Auth.Login)

	priv := api.Group("")
	priv.Use(middleware.Auth(auth))

	{
		priv.GET("/productos", h.Productos.Listar)
		priv.GET("/productos/stock-bajo", h.Productos.StockBajo)
		priv.GET("/productos/:id", h.Productos.Detalle)
		admin := priv.Group("", middleware.RequireRole(RolSupervisor, RolAdministrador))
		admin.POST("/productos", h.Productos.Crear)
		admin.PUT("/productos/:id", h.Productos.Actualizar)
		admin.DELETE("/productos/:id", h.Productos.Desactivar)
		admin.POST("/productos/:id/reactivar", h.Productos.Reactivar)
		admin.POST("/productos/:id/ingresos", h.Productos.RegistrarIngreso)
		admin.POST("/productos/:id/ajustes", h.Productos.Ajustar)
	}

	{
		priv.GET("/departamentos", h.Departamentos.Listar)
		admin := priv.Group("", middleware.RequireRole(RolSupervisor, RolAdministrador))
		admin.POST("/departamentos", h.Departamentos.Crear)
		admin.PUT("/departamentos/:id", h.Departamentos.Actualizar)
		admin.DELETE("/departamentos/:id", h.Departamentos.Eliminar)
	}

	priv.GET("/inventario/movimientos", h.Inventario.ListarMovimientos)

	{
		priv.POST("/caja/abrir", h.Caja.Abrir)
		priv.POST("/caja/cerrar", h.Caja.Cerrar)
		priv.GET("/caja/actual", h.Caja.Actual)
		priv.POST("/caja/gastos", h.Caja.RegistrarGasto)
		priv.GET("/caja/turnos", h.Caja.Historial)
		priv.GET("/caja/turnos/:id", h.Caja.Detalle)
		priv.GET("/caja/turnos/:id/reporte.pdf", h.Caja.ReportePDF)
	}

	{
		priv.POST("/ventas", h.Ventas.Registrar)
		priv.GET("/ventas", h.Ventas.Listar)
		priv.GET("/ventas/:id", h.Ventas.Detalle)
		priv.POST("/ventas/:id/anular",
			middleware.RequireRole(RolSupervisor, RolAdministrador), h.Ventas.Anular)
	}

	{
		priv.POST("/pedidos", h.Pedidos.Crear)
		priv.GET("/pedidos", h.Pedidos.Listar)
		priv.GET("/pedidos/:id", h.Pedidos.Detalle)
		priv.POST("/pedidos/:id/items", h.Pedidos.AgregarItems)
		priv.DELETE("/pedidos/:id/items/:idx", h.Pedidos.QuitarItem)
		priv.POST("/pedidos/:id/abonos", h.Pedidos.Abonar)
		priv.POST("/pedidos/:id/finalizar", h.Pedidos.Finalizar)
		priv.POST("/pedidos/:id/cancelar", h.Pedidos.Cancelar)
	}

	{
		soloAdmin := priv.Group("", middleware.RequireRole(RolAdministrador))
		soloAdmin.POST("/usuarios", h.Auth.CrearUsuario)
		soloAdmin.GET("/usuarios", h.Auth.ListarUsuarios)
		soloAdmin.PUT("/usuarios/:id/password", h.Auth.CambiarPassword)
		soloAdmin.GET("/admin/dlq", h.Admin.ListarDLQ)
		soloAdmin.POST("/admin/dlq/reencolar", h.Admin.ReencolarDLQ)
	}

	return r
}
