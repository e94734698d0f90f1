package sales_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/application/sales"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Un memStore hace de base de datos; los repos fake operan
// sobre él y el fakeTxRunner simula la atomicidad con snapshot + restore.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	lots         []*entity.InventoryLot
	sales        []*entity.Sale
	items        []*entity.SaleItem
	consumptions []*entity.InventoryConsumption
	locations    []*entity.Location
	mappings     []*entity.CatalogMapping
	products     []*entity.Product
}

func newMemStore() *memStore { return &memStore{} }

// clone copia el estado completo (valores, no punteros) para poder restaurarlo.
func (s *memStore) clone() *memStore {
	c := &memStore{}
	for _, v := range s.lots {
		cp := *v
		c.lots = append(c.lots, &cp)
	}
	for _, v := range s.sales {
		cp := *v
		c.sales = append(c.sales, &cp)
	}
	for _, v := range s.items {
		cp := *v
		c.items = append(c.items, &cp)
	}
	for _, v := range s.consumptions {
		cp := *v
		c.consumptions = append(c.consumptions, &cp)
	}
	for _, v := range s.locations {
		cp := *v
		c.locations = append(c.locations, &cp)
	}
	for _, v := range s.mappings {
		cp := *v
		c.mappings = append(c.mappings, &cp)
	}
	for _, v := range s.products {
		cp := *v
		c.products = append(c.products, &cp)
	}
	return c
}

// ── repos fake ────────────────────────────────────────────────────────────────

type fakeLotRepo struct{ s *memStore }

func (r *fakeLotRepo) Create(_ context.Context, lot *entity.InventoryLot) error {
	if lot.ID == "" {
		lot.ID = uuid.NewString()
	}
	r.s.lots = append(r.s.lots, lot)
	return nil
}

func (r *fakeLotRepo) GetByID(_ context.Context, id string) (*entity.InventoryLot, error) {
	for _, l := range r.s.lots {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLotRepo) ListAvailable(_ context.Context, productID, locationID string) ([]*entity.InventoryLot, error) {
	var out []*entity.InventoryLot
	for _, l := range r.s.lots {
		if l.ProductID == productID && l.LocationID == locationID && l.Quantity.GreaterThan(decimal.Zero) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) ListAvailableForUpdate(ctx context.Context, productID, locationID string) ([]*entity.InventoryLot, error) {
	return r.ListAvailable(ctx, productID, locationID)
}

func (r *fakeLotRepo) Deduct(_ context.Context, lotID string, quantity decimal.Decimal) error {
	for _, l := range r.s.lots {
		if l.ID == lotID {
			if l.Quantity.LessThan(quantity) {
				return &domain.LedgerCorruptionError{LotID: lotID, Requested: quantity}
			}
			l.Quantity = l.Quantity.Sub(quantity)
			return nil
		}
	}
	return &domain.LedgerCorruptionError{LotID: lotID, Requested: quantity}
}

type fakeSaleRepo struct{ s *memStore }

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	for _, existing := range r.s.sales {
		if existing.ExternalPaymentID == sale.ExternalPaymentID {
			return domain.ErrDuplicate
		}
	}
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	r.s.sales = append(r.s.sales, sale)
	return nil
}

func (r *fakeSaleRepo) GetByExternalPaymentID(_ context.Context, externalPaymentID string) (*entity.Sale, error) {
	for _, s := range r.s.sales {
		if s.ExternalPaymentID == externalPaymentID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) UpdateTotals(_ context.Context, saleID string, revenue, cost, profit decimal.Decimal) error {
	for _, s := range r.s.sales {
		if s.ID == saleID {
			s.TotalRevenue = revenue
			s.TotalCost = cost
			s.GrossProfit = profit
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSaleItemRepo struct{ s *memStore }

func (r *fakeSaleItemRepo) Create(_ context.Context, item *entity.SaleItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	r.s.items = append(r.s.items, item)
	return nil
}

func (r *fakeSaleItemRepo) ListBySale(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, i := range r.s.items {
		if i.SaleID == saleID {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeConsumptionRepo struct{ s *memStore }

func (r *fakeConsumptionRepo) Create(_ context.Context, c *entity.InventoryConsumption) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.s.consumptions = append(r.s.consumptions, c)
	return nil
}

func (r *fakeConsumptionRepo) ListBySaleItem(_ context.Context, saleItemID string) ([]*entity.InventoryConsumption, error) {
	var out []*entity.InventoryConsumption
	for _, c := range r.s.consumptions {
		if c.SaleItemID == saleItemID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeLocationRepo struct{ s *memStore }

func (r *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	for _, l := range r.s.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) GetByExternalID(_ context.Context, externalID string) (*entity.Location, error) {
	for _, l := range r.s.locations {
		if l.ExternalID == externalID {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) GetOrCreateByExternalID(ctx context.Context, externalID, name string) (*entity.Location, error) {
	if existing, _ := r.GetByExternalID(ctx, externalID); existing != nil {
		return existing, nil
	}
	loc := &entity.Location{ID: uuid.NewString(), ExternalID: externalID, Name: name}
	r.s.locations = append(r.s.locations, loc)
	return loc, nil
}

type fakeMappingRepo struct{ s *memStore }

func (r *fakeMappingRepo) GetByVariationAndLocation(_ context.Context, externalVariationID, locationID string) (*entity.CatalogMapping, error) {
	for _, m := range r.s.mappings {
		if m.ExternalVariationID == externalVariationID && m.LocationID != nil && *m.LocationID == locationID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMappingRepo) GetGlobalByVariation(_ context.Context, externalVariationID string) (*entity.CatalogMapping, error) {
	for _, m := range r.s.mappings {
		if m.ExternalVariationID == externalVariationID && m.LocationID == nil {
			return m, nil
		}
	}
	return nil, nil
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.s.products = append(r.s.products, p)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

// ── tx runner fake ────────────────────────────────────────────────────────────

// fakeTxRunner simula la atomicidad: toma un snapshot del store antes de la
// función y lo restaura si falla. Así los tests verifican todo-o-nada sin DB.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(repos sales.TxRepos) error) error {
	snapshot := r.s.clone()
	repos := sales.TxRepos{
		Lots:         &fakeLotRepo{s: r.s},
		Sales:        &fakeSaleRepo{s: r.s},
		SaleItems:    &fakeSaleItemRepo{s: r.s},
		Consumptions: &fakeConsumptionRepo{s: r.s},
	}
	if err := fn(repos); err != nil {
		*r.s = *snapshot
		return err
	}
	return nil
}

// ── order fetcher fake ────────────────────────────────────────────────────────

type fakeOrderFetcher struct {
	orders map[string]*sales.Order
	err    error
	calls  int
}

func (f *fakeOrderFetcher) FetchOrder(_ context.Context, orderReference string) (*sales.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	order, ok := f.orders[orderReference]
	if !ok {
		return nil, fmt.Errorf("%w: orden %s no encontrada", domain.ErrUpstream, orderReference)
	}
	return order, nil
}
