package service

import (
	"context"

	"github.com/google/uuid"

	"cosspos/internal/model"
	"cosspos/internal/money"
	"cosspos/internal/repository"
)

// ItemInput is one cart line as received from the handler. A nil ProductoID
// marks a generic quick-sale item priced on the spot.
type ItemInput struct {
	ProductoID *uuid.UUID
	Nombre     string
	Precio     money.Centavos
	Cantidad   int
}

// PagoInput is one tender entry as received from the handler.
type PagoInput struct {
	MetodoID         string
	Etiqueta         string
	Clase            string
	Monto            money.Centavos
	PermiteSobrepago bool
}

// resolverLineas materializes cart inputs into denormalized line snapshots.
// Catalog items get their current price and cost copied; generic items carry
// the ad-hoc price. With verificarStock, catalog lines are checked against
// live stock before any write happens.
func resolverLineas(ctx context.Context, productos repository.ProductoRepository, items []ItemInput, verificarStock bool) ([]model.Linea, error) {
	if len(items) == 0 {
		return nil, ErrCarritoVacio
	}
	lineas := make([]model.Linea, 0, len(items))
	for _, it := range items {
		if it.Cantidad <= 0 {
			return nil, ErrMontoInvalido
		}
		if it.ProductoID == nil {
			if it.Precio < 0 {
				return nil, ErrMontoInvalido
			}
			lineas = append(lineas, model.Linea{
				Nombre:   it.Nombre,
				Precio:   it.Precio,
				Cantidad: it.Cantidad,
				Generico: true,
			})
			continue
		}
		p, err := productos.FindByID(ctx, *it.ProductoID)
		if err != nil {
			return nil, err
		}
		if verificarStock && p.StockActual < it.Cantidad {
			return nil, ErrStockInsuficiente
		}
		lineas = append(lineas, model.Linea{
			ProductoID: p.ID,
			Nombre:     p.Nombre,
			Precio:     p.PrecioVenta,
			Costo:      p.PrecioCosto,
			Cantidad:   it.Cantidad,
		})
	}
	return lineas, nil
}

func totalLineas(lineas []model.Linea) money.Centavos {
	var total money.Centavos
	for _, l := range lineas {
		total += l.Subtotal()
	}
	return total
}

func unidades(lineas []model.Linea) int {
	var n int
	for _, l := range lineas {
		n += l.Cantidad
	}
	return n
}
