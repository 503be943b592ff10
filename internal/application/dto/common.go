package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse estado del servicio y de la base de datos.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	DB      string `json:"db"`
}
