// Package worker runs background jobs over a Redis list queue: producers
// LPush, a fixed pool of workers BRPop, and jobs that exhaust their retries
// land in a dead-letter queue for manual replay.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	colaPrincipal = "cosspos:jobs"
	colaDLQ       = "cosspos:jobs:dlq"
	maxIntentos   = 3
	esperaBRPop   = 5 * time.Second
)

// Job types.
const (
	TipoAlertaStock = "alerta_stock"
	TipoEmail       = "email"
)

// Job is one queued unit of work.
type Job struct {
	ID       string          `json:"id"`
	Tipo     string          `json:"tipo"`
	Payload  json.RawMessage `json:"payload"`
	Intentos int             `json:"intentos"`
	CreadoEn time.Time       `json:"creado_en"`
}

// Handler processes one job. Returning an error re-enqueues until the retry
// budget runs out.
type Handler func(ctx context.Context, job Job) error

// Pool owns the queue and the worker goroutines.
type Pool struct {
	rdb      *redis.Client
	workers  int
	handlers map[string]Handler
	wg       sync.WaitGroup
}

func NewPool(rdb *redis.Client, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{rdb: rdb, workers: workers, handlers: map[string]Handler{}}
}

// Registrar binds a handler to a job type. Must happen before Iniciar.
func (p *Pool) Registrar(tipo string, h Handler) {
	p.handlers[tipo] = h
}

// Encolar serializes payload and pushes a job.
func (p *Pool) Encolar(ctx context.Context, tipo string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{
		ID:       uuid.NewString(),
		Tipo:     tipo,
		Payload:  raw,
		CreadoEn: time.Now(),
	}
	return p.push(ctx, colaPrincipal, job)
}

// EncolarAlertaStock queues a low-stock alert for one product.
func (p *Pool) EncolarAlertaStock(ctx context.Context, productoID uuid.UUID) error {
	return p.Encolar(ctx, TipoAlertaStock, AlertaStockPayload{ProductoID: productoID})
}

// Iniciar launches the worker goroutines. They drain until ctx is cancelled.
func (p *Pool) Iniciar(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(n int) {
			defer p.wg.Done()
			p.correr(ctx, n)
		}(i)
	}
	log.Info().Int("workers", p.workers).Msg("pool de workers iniciado")
}

// Esperar blocks until every worker has exited.
func (p *Pool) Esperar() { p.wg.Wait() }

func (p *Pool) correr(ctx context.Context, n int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		res, err := p.rdb.BRPop(ctx, esperaBRPop, colaPrincipal).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Error().Err(err).Int("worker", n).Msg("error leyendo la cola")
			time.Sleep(time.Second)
			continue
		}
		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Error().Err(err).Msg("job ilegible descartado")
			continue
		}
		p.procesar(ctx, job)
	}
}

func (p *Pool) procesar(ctx context.Context, job Job) {
	h, ok := p.handlers[job.Tipo]
	if !ok {
		log.Error().Str("tipo", job.Tipo).Str("job_id", job.ID).Msg("job sin handler, enviado a DLQ")
		_ = p.push(ctx, colaDLQ, job)
		return
	}
	if err := h(ctx, job); err != nil {
		job.Intentos++
		if job.Intentos >= maxIntentos {
			log.Error().Err(err).Str("job_id", job.ID).Int("intentos", job.Intentos).
				Msg("job agotó reintentos, enviado a DLQ")
			_ = p.push(ctx, colaDLQ, job)
			return
		}
		log.Warn().Err(err).Str("job_id", job.ID).Int("intentos", job.Intentos).Msg("job reintentado")
		_ = p.push(ctx, colaPrincipal, job)
	}
}

func (p *Pool) push(ctx context.Context, cola string, job Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return p.rdb.LPush(ctx, cola, raw).Err()
}
