package infra

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitoAbierto is returned while the breaker refuses calls.
var ErrCircuitoAbierto = errors.New("circuito abierto: servicio externo no disponible")

const (
	estadoCerrado = iota
	estadoAbierto
	estadoSemiAbierto
)

// CircuitBreaker guards an external dependency (SMTP). After umbral
// consecutive failures it opens for enfriamiento; the first call afterwards
// probes half-open.
type CircuitBreaker struct {
	mu           sync.Mutex
	estado       int
	fallas       int
	umbral       int
	enfriamiento time.Duration
	abiertoHasta time.Time
}

func NewCircuitBreaker(umbral int, enfriamiento time.Duration) *CircuitBreaker {
	return &CircuitBreaker{umbral: umbral, enfriamiento: enfriamiento}
}

// Ejecutar runs fn through the breaker.
func (cb *CircuitBreaker) Ejecutar(fn func() error) error {
	if !cb.permitir() {
		return ErrCircuitoAbierto
	}
	err := fn()
	cb.registrar(err)
	return err
}

func (cb *CircuitBreaker) permitir() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch cb.estado {
	case estadoAbierto:
		if time.Now().After(cb.abiertoHasta) {
			cb.estado = estadoSemiAbierto
			return true
		}
		return false
	default:
		return true
	}
}

func (cb *CircuitBreaker) registrar(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err == nil {
		cb.estado = estadoCerrado
		cb.fallas = 0
		return
	}
	cb.fallas++
	if cb.estado == estadoSemiAbierto || cb.fallas >= cb.umbral {
		cb.estado = estadoAbierto
		cb.abiertoHasta = time.Now().Add(cb.enfriamiento)
	}
}
