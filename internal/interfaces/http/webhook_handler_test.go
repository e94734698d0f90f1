package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendipos/backoffice-api/internal/application/sales"
	apphttp "github.com/vendipos/backoffice-api/internal/interfaces/http"
	"github.com/vendipos/backoffice-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del receptor de webhooks: firma HMAC, filtrado de estados y encolado
// idempotente.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSignatureKey    = "webhook-signature-key-test"
	testNotificationURL = "https://backoffice.example.com/webhooks/payments"
)

// fakeEnqueuer registra los payloads encolados; duplicate simula un TaskID
// ya existente.
type fakeEnqueuer struct {
	enqueued  []sales.JobPayload
	duplicate bool
	err       error
}

func (f *fakeEnqueuer) EnqueueProcessSale(_ context.Context, payload sales.JobPayload) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.duplicate {
		return false, nil
	}
	f.enqueued = append(f.enqueued, payload)
	return true, nil
}

func buildWebhookApp(enqueuer *fakeEnqueuer) *fiber.App {
	app := fiber.New()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	handler := apphttp.NewWebhookHandler(enqueuer, testSignatureKey, testNotificationURL, log)
	app.Post("/webhooks/payments", handler.HandlePayment)
	return app
}

func sign(t *testing.T, body []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(testSignatureKey))
	mac.Write([]byte(testNotificationURL))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(t *testing.T, app *fiber.App, body []byte, signature string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Square-Hmacsha256-Signature", signature)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

var completedEvent = []byte(`{
	"type": "payment.updated",
	"data": {"object": {"payment": {
		"id": "PAY-1",
		"status": "COMPLETED",
		"location_id": "SQ-LOC-1",
		"order_id": "ORD-1"
	}}}
}`)

// TestWebhook_EventoValidoEncola: firma correcta + pago completado → 200 y un
// job con las claves del evento.
func TestWebhook_EventoValidoEncola(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	app := buildWebhookApp(enqueuer)

	resp := postWebhook(t, app, completedEvent, sign(t, completedEvent))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, enqueuer.enqueued, 1)
	payload := enqueuer.enqueued[0]
	assert.Equal(t, "PAY-1", payload.ExternalPaymentID)
	assert.Equal(t, "SQ-LOC-1", payload.LocationExternalID)
	assert.Equal(t, "ORD-1", payload.OrderReference)
	assert.NotEmpty(t, payload.Payload, "el cuerpo crudo viaja para diagnóstico")
}

// TestWebhook_FirmaInvalida: firma incorrecta → 401 y nada encolado.
func TestWebhook_FirmaInvalida(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	app := buildWebhookApp(enqueuer)

	resp := postWebhook(t, app, completedEvent, "ZmlybWEtaW52YWxpZGE=")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, enqueuer.enqueued)
}

// TestWebhook_SinFirma: sin header de firma → 401.
func TestWebhook_SinFirma(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	app := buildWebhookApp(enqueuer)

	resp := postWebhook(t, app, completedEvent, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, enqueuer.enqueued)
}

// TestWebhook_DuplicadoResponde200: el mismo evento entregado otra vez sigue
// respondiendo 200; el encolado idempotente garantiza un solo job.
func TestWebhook_DuplicadoResponde200(t *testing.T) {
	enqueuer := &fakeEnqueuer{duplicate: true}
	app := buildWebhookApp(enqueuer)

	resp := postWebhook(t, app, completedEvent, sign(t, completedEvent))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, enqueuer.enqueued, "no debe crearse un segundo job")
}

// TestWebhook_PagoNoCompletado: estados distintos de COMPLETED se confirman
// sin encolar nada.
func TestWebhook_PagoNoCompletado(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	app := buildWebhookApp(enqueuer)

	body := []byte(`{"type":"payment.updated","data":{"object":{"payment":{"id":"PAY-2","status":"PENDING","location_id":"SQ-LOC-1","order_id":"ORD-2"}}}}`)
	resp := postWebhook(t, app, body, sign(t, body))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, enqueuer.enqueued)
}

// TestWebhook_EventoIncompleto: pago completado sin order_id es 400.
func TestWebhook_EventoIncompleto(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	app := buildWebhookApp(enqueuer)

	body := []byte(`{"type":"payment.updated","data":{"object":{"payment":{"id":"PAY-3","status":"COMPLETED","location_id":"SQ-LOC-1"}}}}`)
	resp := postWebhook(t, app, body, sign(t, body))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, enqueuer.enqueued)
}

// TestWebhook_ErrorDeEncolado: si el broker no responde, 500 para que la
// plataforma reintente la entrega.
func TestWebhook_ErrorDeEncolado(t *testing.T) {
	enqueuer := &fakeEnqueuer{err: assert.AnError}
	app := buildWebhookApp(enqueuer)

	resp := postWebhook(t, app, completedEvent, sign(t, completedEvent))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
