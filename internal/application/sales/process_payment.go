package sales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
	"github.com/vendipos/backoffice-api/pkg/logger"
)

// JobPayload es el payload del job encolado por el receptor de webhooks.
// La clave del job (encolado idempotente) es ExternalPaymentID.
type JobPayload struct {
	ExternalPaymentID  string          `json:"external_payment_id"`
	LocationExternalID string          `json:"location_external_id"`
	OrderReference     string          `json:"order_reference"`
	Payload            json.RawMessage `json:"payload,omitempty"` // cuerpo crudo del evento, para diagnóstico
}

// Validate rechaza payloads estructuralmente incompletos. Un payload malformado
// no va a volverse válido reintentando, así que el error es terminal.
func (p JobPayload) Validate() error {
	if p.ExternalPaymentID == "" || p.LocationExternalID == "" || p.OrderReference == "" {
		return fmt.Errorf("%w: payload incompleto (payment=%q location=%q order=%q)",
			domain.ErrInvalidInput, p.ExternalPaymentID, p.LocationExternalID, p.OrderReference)
	}
	return nil
}

// saleLine es una línea ya mapeada a producto interno y validada. TotalPrice es
// el total reportado por la plataforma y es la fuente del ingreso; UnitPrice se
// deriva solo con fines informativos.
type saleLine struct {
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// ProcessPaymentUseCase convierte una notificación de pago en una venta con
// costeo FIFO. Orquesta: validación → chequeo de idempotencia → consulta de la
// orden a la plataforma → mapeo de líneas → transacción única (venta + líneas +
// decremento de lotes + auditoría + totales).
type ProcessPaymentUseCase struct {
	txRunner  TxRunner
	locations repository.LocationRepository
	sales     repository.SaleRepository
	mapper    *CatalogMapper
	orders    OrderFetcher
	log       *logger.Logger
}

// NewProcessPaymentUseCase construye el caso de uso.
func NewProcessPaymentUseCase(
	txRunner TxRunner,
	locations repository.LocationRepository,
	salesRepo repository.SaleRepository,
	mapper *CatalogMapper,
	orders OrderFetcher,
	log *logger.Logger,
) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		txRunner:  txRunner,
		locations: locations,
		sales:     salesRepo,
		mapper:    mapper,
		orders:    orders,
		log:       log,
	}
}

// Process ejecuta el pipeline completo para un job. Es seguro ante entregas
// repetidas (at-least-once): si ya existe una venta con el mismo
// external_payment_id, termina sin efectos.
func (uc *ProcessPaymentUseCase) Process(ctx context.Context, payload JobPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	// Chequeo de idempotencia: la cola garantiza at-least-once, no exactly-once.
	existing, err := uc.sales.GetByExternalPaymentID(ctx, payload.ExternalPaymentID)
	if err != nil {
		return fmt.Errorf("chequeo de idempotencia: %w", err)
	}
	if existing != nil {
		uc.log.Info().
			Str("external_payment_id", payload.ExternalPaymentID).
			Str("sale_id", existing.ID).
			Msg("pago ya procesado, job ignorado")
		return nil
	}

	// Creación perezosa de la ubicación al primer external_id observado.
	location, err := uc.locations.GetOrCreateByExternalID(ctx, payload.LocationExternalID, payload.LocationExternalID)
	if err != nil {
		return fmt.Errorf("resolver ubicación %s: %w", payload.LocationExternalID, err)
	}

	order, err := uc.orders.FetchOrder(ctx, payload.OrderReference)
	if err != nil {
		return fmt.Errorf("consultar orden %s: %w", payload.OrderReference, err)
	}

	lines, err := uc.mapLines(ctx, payload, order)
	if err != nil {
		return err
	}

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		builder := NewSaleBuilder(repos)
		if _, err := builder.CreateSale(ctx, payload.ExternalPaymentID, location.ID, order.CreatedAt); err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := builder.AddItem(ctx, line.ProductID, line.Quantity, line.UnitPrice, line.TotalPrice); err != nil {
				return err
			}
		}
		return builder.Finalize(ctx)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		// Otro worker ganó la carrera por el índice único: mismo resultado que
		// el chequeo de idempotencia, la venta ya existe.
		uc.log.Info().
			Str("external_payment_id", payload.ExternalPaymentID).
			Msg("venta creada concurrentemente por otro worker, job ignorado")
		return nil
	}
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("external_payment_id", payload.ExternalPaymentID).
		Str("location_id", location.ID).
		Int("lines", len(lines)).
		Msg("venta registrada")
	return nil
}

// mapLines resuelve cada línea a producto interno y deriva cantidad y precio
// unitario. Cualquier línea inválida o sin mapeo aborta el job completo: no hay
// aceptación parcial de líneas.
func (uc *ProcessPaymentUseCase) mapLines(ctx context.Context, payload JobPayload, order *Order) ([]saleLine, error) {
	if len(order.Lines) == 0 {
		return nil, fmt.Errorf("%w: la orden %s no tiene líneas", domain.ErrInvalidInput, payload.OrderReference)
	}

	lines := make([]saleLine, 0, len(order.Lines))
	for _, ol := range order.Lines {
		if !ol.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: cantidad no positiva (%s) para variación %s",
				domain.ErrInvalidInput, ol.Quantity, ol.ExternalVariationID)
		}
		if ol.TotalPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo (%s) para variación %s",
				domain.ErrInvalidInput, ol.TotalPrice, ol.ExternalVariationID)
		}

		productID, err := uc.mapper.Resolve(ctx, ol.ExternalVariationID, payload.LocationExternalID)
		if err != nil {
			return nil, fmt.Errorf("mapear variación %s: %w", ol.ExternalVariationID, err)
		}

		lines = append(lines, saleLine{
			ProductID:  productID,
			Quantity:   ol.Quantity,
			UnitPrice:  ol.TotalPrice.Div(ol.Quantity),
			TotalPrice: ol.TotalPrice,
		})
	}
	return lines, nil
}
