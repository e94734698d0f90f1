package dto

// ErrorResponse respuesta de error estándar del API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
