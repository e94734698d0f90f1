package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/vendipos/backoffice-api/internal/application/dto"
	"github.com/vendipos/backoffice-api/internal/application/sales"
	"github.com/vendipos/backoffice-api/pkg/logger"
)

// Header de firma de los webhooks de la plataforma de pagos.
const signatureHeader = "X-Square-Hmacsha256-Signature"

// SaleEnqueuer encola el procesamiento de una venta. Devuelve false si ya había
// un job con el mismo external_payment_id (encolado idempotente).
type SaleEnqueuer interface {
	EnqueueProcessSale(ctx context.Context, payload sales.JobPayload) (enqueued bool, err error)
}

// paymentEvent es el sobre del webhook payment.updated.
type paymentEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			Payment struct {
				ID         string `json:"id"`
				Status     string `json:"status"`
				LocationID string `json:"location_id"`
				OrderID    string `json:"order_id"`
			} `json:"payment"`
		} `json:"object"`
	} `json:"data"`
}

// WebhookHandler recibe notificaciones de pago, verifica la firma HMAC y
// encola el job de procesamiento. Responde rápido: todo el trabajo pesado
// ocurre en el worker.
type WebhookHandler struct {
	enqueuer        SaleEnqueuer
	signatureKey    string
	notificationURL string
	log             *logger.Logger
}

// NewWebhookHandler construye el receptor de webhooks. notificationURL es la
// URL pública registrada en la plataforma; entra en el cálculo de la firma.
func NewWebhookHandler(enqueuer SaleEnqueuer, signatureKey, notificationURL string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		enqueuer:        enqueuer,
		signatureKey:    signatureKey,
		notificationURL: notificationURL,
		log:             log.Component("webhook"),
	}
}

// HandlePayment procesa POST /webhooks/payments.
// Siempre devuelve 200 para eventos válidos ya conocidos: la plataforma
// reintenta cualquier respuesta no-2xx y el encolado ya es idempotente.
func (h *WebhookHandler) HandlePayment(c *fiber.Ctx) error {
	body := c.Body()

	if !h.verifySignature(c.Get(signatureHeader), body) {
		h.log.Warn().Msg("webhook con firma inválida descartado")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}

	var event paymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	payment := event.Data.Object.Payment
	// Solo los pagos completados generan venta; el resto se confirma sin efecto.
	if payment.Status != "COMPLETED" {
		return c.SendStatus(fiber.StatusOK)
	}
	if payment.ID == "" || payment.LocationID == "" || payment.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "evento de pago incompleto"})
	}

	payload := sales.JobPayload{
		ExternalPaymentID:  payment.ID,
		LocationExternalID: payment.LocationID,
		OrderReference:     payment.OrderID,
		Payload:            json.RawMessage(body),
	}
	enqueued, err := h.enqueuer.EnqueueProcessSale(c.Context(), payload)
	if err != nil {
		h.log.Error().Err(err).Str("external_payment_id", payment.ID).Msg("no se pudo encolar el job")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "ENQUEUE_FAILED", Message: "no se pudo encolar el evento"})
	}
	if !enqueued {
		h.log.Debug().Str("external_payment_id", payment.ID).Msg("evento duplicado, job ya encolado")
	}
	return c.SendStatus(fiber.StatusOK)
}

// verifySignature valida el HMAC-SHA256 en base64 sobre URL+cuerpo.
func (h *WebhookHandler) verifySignature(signature string, body []byte) bool {
	if h.signatureKey == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.signatureKey))
	mac.Write([]byte(h.notificationURL))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
