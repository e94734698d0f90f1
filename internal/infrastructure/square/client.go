package square

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/application/sales"
	"github.com/vendipos/backoffice-api/internal/domain"
)

// Ensure Client implements sales.OrderFetcher.
var _ sales.OrderFetcher = (*Client)(nil)

// Client consulta el API REST de la plataforma de pagos (órdenes por referencia).
// Cualquier fallo de red o respuesta no exitosa se reporta como domain.ErrUpstream
// para que la cola lo clasifique como transitorio y reintente.
type Client struct {
	baseURL    string
	token      string
	apiVersion string
	httpClient *http.Client
}

// NewClient construye el cliente con timeout propio (independiente del ctx del job).
func NewClient(baseURL, token, apiVersion string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Formato de respuesta de GET /v2/orders/{order_id}.
type orderEnvelope struct {
	Order orderBody `json:"order"`
}

type orderBody struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	LineItems []orderLine `json:"line_items"`
}

type orderLine struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Quantity        string `json:"quantity"` // la plataforma lo serializa como string
	TotalMoney      money  `json:"total_money"`
}

type money struct {
	Amount   int64  `json:"amount"` // unidades mínimas de la moneda (centavos)
	Currency string `json:"currency"`
}

// FetchOrder trae el detalle completo de la orden: líneas con referencia de
// catálogo, cantidad y precio total por línea.
func (c *Client) FetchOrder(ctx context.Context, orderReference string) (*sales.Order, error) {
	url := fmt.Sprintf("%s/v2/orders/%s", c.baseURL, orderReference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("armar request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Square-Version", c.apiVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrUpstream, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s devolvió %d", domain.ErrUpstream, url, resp.StatusCode)
	}

	var envelope orderEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decodificar orden: %v", domain.ErrUpstream, err)
	}
	return toOrder(envelope.Order)
}

func toOrder(body orderBody) (*sales.Order, error) {
	order := &sales.Order{
		ReferenceID: body.ID,
		CreatedAt:   body.CreatedAt,
		Lines:       make([]sales.OrderLine, 0, len(body.LineItems)),
	}
	for _, li := range body.LineItems {
		qty, err := decimal.NewFromString(li.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: cantidad inválida %q en orden %s", domain.ErrInvalidInput, li.Quantity, body.ID)
		}
		order.Lines = append(order.Lines, sales.OrderLine{
			ExternalVariationID: li.CatalogObjectID,
			Quantity:            qty,
			// El monto viene en unidades mínimas: exponente -2 lo vuelve decimal exacto.
			TotalPrice: decimal.New(li.TotalMoney.Amount, -2),
		})
	}
	return order, nil
}
