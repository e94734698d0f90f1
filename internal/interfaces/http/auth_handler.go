package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/vendipos/backoffice-api/internal/application/dto"
	"github.com/vendipos/backoffice-api/pkg/config"
	"github.com/vendipos/backoffice-api/pkg/jwt"
)

// AuthHandler emite tokens para el API de operación. No hay usuarios: los
// operadores comparten una clave que se intercambia por un JWT de vida corta.
type AuthHandler struct {
	cfg config.JWTConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(cfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Token intercambia la clave de operador por un JWT.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.TokenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.OperatorKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "operator_key es requerido"})
	}
	if h.cfg.OperatorKey == "" ||
		subtle.ConstantTimeCompare([]byte(in.OperatorKey), []byte(h.cfg.OperatorKey)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "clave inválida"})
	}
	token, err := jwt.Generate(h.cfg.Secret, "operator", h.cfg.Issuer, h.cfg.Expiration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.TokenResponse{Token: token})
}
