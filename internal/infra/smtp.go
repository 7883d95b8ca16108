package infra

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"

	"cosspos/internal/config"
)

// Mailer sends operational emails through SMTP, guarded by a circuit breaker
// so a dead relay cannot pile up worker retries.
type Mailer struct {
	cfg     *config.Config
	breaker *CircuitBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		cfg:     cfg,
		breaker: NewCircuitBreaker(3, 2*time.Minute),
	}
}

// Habilitado reports whether SMTP is configured at all.
func (m *Mailer) Habilitado() bool {
	return m.cfg.SMTPHost != "" && m.cfg.AlertasDestino != ""
}

// Enviar sends one email through the breaker.
func (m *Mailer) Enviar(asunto, cuerpoHTML string) error {
	if !m.Habilitado() {
		log.Debug().Str("asunto", asunto).Msg("smtp no configurado, correo omitido")
		return nil
	}
	return m.breaker.Ejecutar(func() error {
		e := email.NewEmail()
		e.From = m.cfg.SMTPRemitente
		e.To = []string{m.cfg.AlertasDestino}
		e.Subject = asunto
		e.HTML = []byte(cuerpoHTML)
		addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPuerto)
		auth := smtp.PlainAuth("", m.cfg.SMTPUsuario, m.cfg.SMTPPassword, m.cfg.SMTPHost)
		return e.Send(addr, auth)
	})
}
