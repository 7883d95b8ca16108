// Package apierror defines the HTTP error envelope.
package apierror

// APIError is the JSON body returned on any failed request.
type APIError struct {
	Codigo  int    `json:"codigo"`
	Mensaje string `json:"mensaje"`
	Detalle string `json:"detalle,omitempty"`
}

func New(codigo int, mensaje string) *APIError {
	return &APIError{Codigo: codigo, Mensaje: mensaje}
}

func (e *APIError) Error() string { return e.Mensaje }

// ConDetalle attaches extra context for the client.
func (e *APIError) ConDetalle(detalle string) *APIError {
	e.Detalle = detalle
	return e
}
