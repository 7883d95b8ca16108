package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"cosspos/internal/model"
	"cosspos/internal/money"
	"cosspos/internal/repository"
)

// The cache covers only the price-check lookup: stock moves on every sale,
// so a general product cache would serve stale counts. A 60s TTL on the
// gondola scanner is acceptable drift.
const (
	cacheTTLConsulta = time.Minute
	cacheKeyConsulta = "consulta:%s"
)

// ProductoInput creates or updates a catalog item. StockInicial only applies
// on creation and lands as an ENTRADA movement, never as a direct write.
type ProductoInput struct {
	Nombre         string
	Codigos        []string
	PrecioVenta    money.Centavos
	PrecioCosto    money.Centavos
	StockInicial   int
	StockMinimo    int
	DepartamentoID *uuid.UUID
	Actor          string
}

// ProductoService handles the catalog with a Redis read-through cache for
// the hot price-check path. The cache is best-effort: a Redis failure only
// logs and falls through to Postgres.
type ProductoService struct {
	productos  repository.ProductoRepository
	inventario *InventarioService
	rdb        *redis.Client
}

func NewProductoService(p repository.ProductoRepository, inv *InventarioService, rdb *redis.Client) *ProductoService {
	return &ProductoService{productos: p, inventario: inv, rdb: rdb}
}

// Crear registers the product and, when StockInicial > 0, applies the
// opening ENTRADA through the kardex.
func (s *ProductoService) Crear(ctx context.Context, in ProductoInput) (*model.Producto, error) {
	if in.PrecioVenta < 0 || in.PrecioCosto < 0 || in.StockInicial < 0 {
		return nil, ErrMontoInvalido
	}
	p := &model.Producto{
		ID:             uuid.New(),
		Nombre:         in.Nombre,
		Codigos:        in.Codigos,
		PrecioVenta:    in.PrecioVenta,
		PrecioCosto:    in.PrecioCosto,
		StockMinimo:    in.StockMinimo,
		DepartamentoID: in.DepartamentoID,
		Activo:         true,
	}
	if err := s.productos.Create(ctx, p); err != nil {
		return nil, err
	}
	if in.StockInicial > 0 {
		mov, err := s.inventario.RegistrarMovimiento(ctx, MovimientoInput{
			ProductoID: p.ID,
			Tipo:       model.MovimientoEntrada,
			Cantidad:   in.StockInicial,
			Motivo:     "Stock inicial",
			Actor:      in.Actor,
		})
		if err != nil {
			return nil, err
		}
		p.StockActual = mov.StockNuevo
	}
	return p, nil
}

// Obtener returns a product straight from the database.
func (s *ProductoService) Obtener(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	return s.productos.FindByID(ctx, id)
}

// BuscarPorCodigo resolves a scanned barcode to its product, read-through
// cached for the gondola scanner.
func (s *ProductoService) BuscarPorCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	key := fmt.Sprintf(cacheKeyConsulta, codigo)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var p model.Producto
			if json.Unmarshal(raw, &p) == nil {
				return &p, nil
			}
		}
	}
	p, err := s.productos.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	s.cachear(ctx, key, p)
	return p, nil
}

// Listar returns catalog items matching the filter.
func (s *ProductoService) Listar(ctx context.Context, filtro repository.ProductoFiltro) ([]model.Producto, error) {
	return s.productos.List(ctx, filtro)
}

// Actualizar updates catalog fields. Stock is not among them: it only moves
// through the kardex.
func (s *ProductoService) Actualizar(ctx context.Context, id uuid.UUID, in ProductoInput) (*model.Producto, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.PrecioVenta < 0 || in.PrecioCosto < 0 {
		return nil, ErrMontoInvalido
	}
	p.Nombre = in.Nombre
	p.Codigos = in.Codigos
	p.PrecioVenta = in.PrecioVenta
	p.PrecioCosto = in.PrecioCosto
	p.StockMinimo = in.StockMinimo
	p.DepartamentoID = in.DepartamentoID
	if err := s.productos.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidar(ctx, id)
	return p, nil
}

// RegistrarIngreso applies a merchandise intake as an ENTRADA movement.
func (s *ProductoService) RegistrarIngreso(ctx context.Context, id uuid.UUID, cantidad int, motivo, actor string) (*model.MovimientoStock, error) {
	if cantidad <= 0 {
		return nil, ErrCantidadInvalida
	}
	mov, err := s.inventario.RegistrarMovimiento(ctx, MovimientoInput{
		ProductoID: id,
		Tipo:       model.MovimientoEntrada,
		Cantidad:   cantidad,
		Motivo:     motivo,
		Actor:      actor,
	})
	if err != nil {
		return nil, err
	}
	s.invalidar(ctx, id)
	return mov, nil
}

// Ajustar corrects stock by a signed delta (physical count differences).
func (s *ProductoService) Ajustar(ctx context.Context, id uuid.UUID, cantidad int, motivo, actor string) (*model.MovimientoStock, error) {
	mov, err := s.inventario.RegistrarMovimiento(ctx, MovimientoInput{
		ProductoID: id,
		Tipo:       model.MovimientoAjuste,
		Cantidad:   cantidad,
		Motivo:     motivo,
		Actor:      actor,
	})
	if err != nil {
		return nil, err
	}
	s.invalidar(ctx, id)
	return mov, nil
}

// Desactivar soft-deletes a product; Reactivar undoes it.
func (s *ProductoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if err := s.productos.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidar(ctx, id)
	return nil
}

func (s *ProductoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if err := s.productos.Reactivar(ctx, id); err != nil {
		return err
	}
	s.invalidar(ctx, id)
	return nil
}

// StockBajo lists active products at or below their minimum.
func (s *ProductoService) StockBajo(ctx context.Context) ([]model.Producto, error) {
	return s.productos.ListStockBajo(ctx)
}

func (s *ProductoService) cachear(ctx context.Context, key string, p *model.Producto) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, cacheTTLConsulta).Err(); err != nil {
		log.Warn().Err(err).Str("producto_id", p.ID.String()).Msg("no se pudo cachear producto")
	}
}

// invalidar drops the cached price-check entries for a product's barcodes.
func (s *ProductoService) invalidar(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		return
	}
	for _, codigo := range p.Codigos {
		key := fmt.Sprintf(cacheKeyConsulta, codigo)
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			log.Warn().Err(err).Str("codigo", codigo).Msg("no se pudo invalidar cache de consulta")
		}
	}
}
