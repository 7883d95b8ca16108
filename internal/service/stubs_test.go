package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cosspos/internal/model"
	"cosspos/internal/repository"
)

// In-memory repositories. DB() returns nil so runTx executes the closure
// directly, letting the services run without Postgres.

type stubProductos struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Producto
}

var _ repository.ProductoRepository = (*stubProductos)(nil)

func newStubProductos(productos ...*model.Producto) *stubProductos {
	s := &stubProductos{items: map[uuid.UUID]*model.Producto{}}
	for _, p := range productos {
		cp := *p
		s.items[p.ID] = &cp
	}
	return s
}

func (s *stubProductos) Create(_ context.Context, p *model.Producto) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProductos) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductos) FindByIDTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return s.FindByID(ctx, id)
}

func (s *stubProductos) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.items {
		for _, c := range p.Codigos {
			if c == codigo && p.Activo {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductos) List(_ context.Context, _ repository.ProductoFiltro) ([]model.Producto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Producto
	for _, p := range s.items {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProductos) Update(_ context.Context, p *model.Producto) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProductos) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.items[id]; ok {
		p.Activo = false
	}
	return nil
}

func (s *stubProductos) Reactivar(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.items[id]; ok {
		p.Activo = true
	}
	return nil
}

func (s *stubProductos) UpdateStockTx(_ context.Context, _ *gorm.DB, id uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockActual += delta
	return nil
}

func (s *stubProductos) ListStockBajo(_ context.Context) ([]model.Producto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Producto
	for _, p := range s.items {
		if p.Activo && p.StockActual <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductos) DB() *gorm.DB { return nil }

type stubMovimientos struct {
	mu    sync.Mutex
	items []model.MovimientoStock
}

var _ repository.MovimientoStockRepository = (*stubMovimientos)(nil)

func newStubMovimientos() *stubMovimientos { return &stubMovimientos{} }

func (s *stubMovimientos) CreateTx(_ context.Context, _ *gorm.DB, m *model.MovimientoStock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	s.items = append(s.items, *m)
	return nil
}

func (s *stubMovimientos) List(_ context.Context, filtro repository.MovimientoFiltro) ([]model.MovimientoStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.MovimientoStock
	for _, m := range s.items {
		if filtro.ProductoID != nil && m.ProductoID != *filtro.ProductoID {
			continue
		}
		if filtro.Tipo != "" && m.Tipo != filtro.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *stubMovimientos) porProducto(id uuid.UUID) []model.MovimientoStock {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.MovimientoStock
	for _, m := range s.items {
		if m.ProductoID == id {
			out = append(out, m)
		}
	}
	return out
}

type stubTurnos struct {
	mu     sync.Mutex
	items  map[uuid.UUID]*model.Turno
	gastos []model.Gasto
}

var _ repository.TurnoRepository = (*stubTurnos)(nil)

func newStubTurnos() *stubTurnos {
	return &stubTurnos{items: map[uuid.UUID]*model.Turno{}}
}

func (s *stubTurnos) Create(_ context.Context, t *model.Turno) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	s.items[t.ID] = &cp
	return nil
}

func (s *stubTurnos) FindAbierto(_ context.Context) (*model.Turno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.Estado == model.TurnoAbierto {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTurnos) FindByID(_ context.Context, id uuid.UUID) (*model.Turno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	for _, g := range s.gastos {
		if g.TurnoID == id {
			cp.Gastos = append(cp.Gastos, g)
		}
	}
	return &cp, nil
}

func (s *stubTurnos) IncrementarTotalesTx(_ context.Context, _ *gorm.DB, id uuid.UUID, inc repository.IncrementoTurno) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.items[id]
	if !ok || t.Estado != model.TurnoAbierto {
		return nil
	}
	t.VentasEfectivo += inc.Efectivo
	t.VentasDigital += inc.Digital
	t.VentasTarjeta += inc.Tarjeta
	t.VentasBanco += inc.Banco
	t.VentasOtros += inc.Otros
	t.TotalVentas += inc.Total
	t.ItemsVendidos += inc.Items
	t.TotalGastos += inc.Gastos
	return nil
}

func (s *stubTurnos) Cerrar(_ context.Context, t *model.Turno) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	actual, ok := s.items[t.ID]
	if !ok || actual.Estado != model.TurnoAbierto {
		return nil
	}
	actual.Estado = model.TurnoCerrado
	actual.EfectivoEsperado = t.EfectivoEsperado
	actual.EfectivoContado = t.EfectivoContado
	actual.Diferencia = t.Diferencia
	actual.NotasCierre = t.NotasCierre
	actual.ClosedAt = t.ClosedAt
	return nil
}

func (s *stubTurnos) CreateGastoTx(_ context.Context, _ *gorm.DB, g *model.Gasto) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.CreatedAt = time.Now()
	s.gastos = append(s.gastos, *g)
	return nil
}

func (s *stubTurnos) ListGastos(_ context.Context, turnoID uuid.UUID) ([]model.Gasto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Gasto
	for _, g := range s.gastos {
		if g.TurnoID == turnoID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *stubTurnos) List(_ context.Context, _, _ int) ([]model.Turno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Turno
	for _, t := range s.items {
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubTurnos) DB() *gorm.DB { return nil }

type stubVentas struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Venta
}

var _ repository.VentaRepository = (*stubVentas)(nil)

func newStubVentas() *stubVentas {
	return &stubVentas{items: map[uuid.UUID]*model.Venta{}}
}

func (s *stubVentas) CreateTx(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	cp := *v
	s.items[v.ID] = &cp
	return nil
}

func (s *stubVentas) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *stubVentas) List(_ context.Context, _ repository.VentaFiltro) ([]model.Venta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Venta
	for _, v := range s.items {
		out = append(out, *v)
	}
	return out, nil
}

func (s *stubVentas) UpdateAnulacionTx(_ context.Context, _ *gorm.DB, id uuid.UUID, motivo string, cuando time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok || v.Estado != model.VentaCompletada {
		return nil
	}
	v.Estado = model.VentaAnulada
	v.MotivoAnulacion = &motivo
	v.AnuladaEn = &cuando
	return nil
}

func (s *stubVentas) DB() *gorm.DB { return nil }

type stubPedidos struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Pedido
}

var _ repository.PedidoRepository = (*stubPedidos)(nil)

func newStubPedidos() *stubPedidos {
	return &stubPedidos{items: map[uuid.UUID]*model.Pedido{}}
}

func (s *stubPedidos) CreateTx(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubPedidos) UpdateTx(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubPedidos) DeleteTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *stubPedidos) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubPedidos) List(_ context.Context, _ repository.PedidoFiltro) ([]model.Pedido, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Pedido
	for _, p := range s.items {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubPedidos) DB() *gorm.DB { return nil }
