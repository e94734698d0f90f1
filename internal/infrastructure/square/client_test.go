package square_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/infrastructure/square"
)

const orderJSON = `{
	"order": {
		"id": "ORD-1",
		"created_at": "2026-03-01T10:00:00Z",
		"line_items": [
			{
				"catalog_object_id": "VAR-1",
				"quantity": "7",
				"total_money": {"amount": 3500, "currency": "USD"}
			},
			{
				"catalog_object_id": "VAR-2",
				"quantity": "0.5",
				"total_money": {"amount": 199, "currency": "USD"}
			}
		]
	}
}`

// TestFetchOrder_DecodificaOrden: cantidades string y montos en centavos se
// vuelven decimales exactos.
func TestFetchOrder_DecodificaOrden(t *testing.T) {
	var gotAuth, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Square-Version")
		assert.Equal(t, "/v2/orders/ORD-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(orderJSON))
	}))
	defer srv.Close()

	client := square.NewClient(srv.URL, "test-token", "2024-01-18")
	order, err := client.FetchOrder(context.Background(), "ORD-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2024-01-18", gotVersion)
	assert.Equal(t, "ORD-1", order.ReferenceID)
	require.Len(t, order.Lines, 2)

	assert.Equal(t, "VAR-1", order.Lines[0].ExternalVariationID)
	assert.True(t, order.Lines[0].Quantity.Equal(decimal.NewFromInt(7)))
	assert.True(t, order.Lines[0].TotalPrice.Equal(decimal.RequireFromString("35.00")),
		"3500 centavos = 35.00, fue %s", order.Lines[0].TotalPrice)

	assert.True(t, order.Lines[1].Quantity.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, order.Lines[1].TotalPrice.Equal(decimal.RequireFromString("1.99")))
}

// TestFetchOrder_ErrorHTTP: cualquier status no exitoso es ErrUpstream
// (transitorio para la cola).
func TestFetchOrder_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := square.NewClient(srv.URL, "test-token", "2024-01-18")
	_, err := client.FetchOrder(context.Background(), "ORD-1")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// TestFetchOrder_RespuestaIlegible: un cuerpo que no es JSON también es upstream.
func TestFetchOrder_RespuestaIlegible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>mantenimiento</html>"))
	}))
	defer srv.Close()

	client := square.NewClient(srv.URL, "test-token", "2024-01-18")
	_, err := client.FetchOrder(context.Background(), "ORD-1")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// TestFetchOrder_CantidadInvalida: una cantidad no numérica es entrada
// inválida, no fallo upstream: reintentar no la arregla.
func TestFetchOrder_CantidadInvalida(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"order":{"id":"ORD-1","line_items":[{"catalog_object_id":"VAR-1","quantity":"siete","total_money":{"amount":100}}]}}`))
	}))
	defer srv.Close()

	client := square.NewClient(srv.URL, "test-token", "2024-01-18")
	_, err := client.FetchOrder(context.Background(), "ORD-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
}

// TestFetchOrder_ServidorCaido: fallo de conexión es upstream.
func TestFetchOrder_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close() // cerrado a propósito

	client := square.NewClient(srv.URL, "test-token", "2024-01-18")
	_, err := client.FetchOrder(context.Background(), "ORD-1")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
