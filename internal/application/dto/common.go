package dto

// ErrorResponse cuerpo de error HTTP. Message se muestra tal cual al usuario.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
