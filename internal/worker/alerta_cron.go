package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"cosspos/internal/repository"
)

// IniciarCronAlertas periodically sweeps the catalog and queues an alert for
// every product at or below its minimum. This catches products that crossed
// the threshold through manual adjustments, where the sale path's immediate
// alert never fires.
func IniciarCronAlertas(ctx context.Context, pool *Pool, productos repository.ProductoRepository, cada time.Duration) {
	if cada <= 0 {
		cada = 6 * time.Hour
	}
	go func() {
		ticker := time.NewTicker(cada)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				bajos, err := productos.ListStockBajo(ctx)
				if err != nil {
					log.Error().Err(err).Msg("barrido de stock bajo falló")
					continue
				}
				for _, p := range bajos {
					if err := pool.EncolarAlertaStock(ctx, p.ID); err != nil {
						log.Warn().Err(err).Str("producto_id", p.ID.String()).Msg("no se pudo encolar alerta")
					}
				}
				if len(bajos) > 0 {
					log.Info().Int("productos", len(bajos)).Msg("alertas de stock encoladas")
				}
			}
		}
	}()
}
