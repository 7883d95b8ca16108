package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"cosspos/internal/infra"
	"cosspos/internal/repository"
)

// AlertaStockPayload identifies the product that crossed its minimum.
type AlertaStockPayload struct {
	ProductoID uuid.UUID `json:"producto_id"`
}

// NewAlertaStockHandler builds the handler that emails a low-stock warning.
// The product is re-read at send time; if it was restocked meanwhile the
// alert is dropped silently.
func NewAlertaStockHandler(productos repository.ProductoRepository, mailer *infra.Mailer) Handler {
	return func(ctx context.Context, job Job) error {
		var payload AlertaStockPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return err
		}
		p, err := productos.FindByID(ctx, payload.ProductoID)
		if err != nil {
			return err
		}
		if p.StockActual > p.StockMinimo {
			return nil
		}
		asunto := fmt.Sprintf("Stock bajo: %s", p.Nombre)
		cuerpo := fmt.Sprintf(
			`<h3>Alerta de stock</h3>
			<p>El producto <b>%s</b> tiene <b>%d</b> unidades (mínimo %d).</p>
			<p>Registre una entrada de mercadería para reponerlo.</p>`,
			p.Nombre, p.StockActual, p.StockMinimo,
		)
		return mailer.Enviar(asunto, cuerpo)
	}
}
