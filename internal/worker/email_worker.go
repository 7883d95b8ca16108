package worker

import (
	"context"
	"encoding/json"

	"cosspos/internal/infra"
)

// EmailPayload is a generic operational email.
type EmailPayload struct {
	Asunto     string `json:"asunto"`
	CuerpoHTML string `json:"cuerpo_html"`
}

// NewEmailHandler builds the handler that delivers queued emails through the
// breaker-guarded mailer.
func NewEmailHandler(mailer *infra.Mailer) Handler {
	return func(ctx context.Context, job Job) error {
		var payload EmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return err
		}
		return mailer.Enviar(payload.Asunto, payload.CuerpoHTML)
	}
}
