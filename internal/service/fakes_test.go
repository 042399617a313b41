package service_test

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/domain"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/repository"
)

// In-memory fakes. DB() returns nil so runTx executes callbacks directly;
// every Tx method ignores its *gorm.DB argument.

// ── DrawerRepository ─────────────────────────────────────────────────────────

type fakeDrawerRepo struct {
	drawers map[uuid.UUID]*model.CashDrawer
}

func newFakeDrawerRepo() *fakeDrawerRepo {
	return &fakeDrawerRepo{drawers: make(map[uuid.UUID]*model.CashDrawer)}
}

func (r *fakeDrawerRepo) DB() *gorm.DB { return nil }

func (r *fakeDrawerRepo) CreateOpen(_ context.Context, d *model.CashDrawer) error {
	// Mirrors the partial unique index: at most one open row.
	for _, existing := range r.drawers {
		if existing.Status == model.DrawerStatusOpen {
			return domain.ErrDrawerAlreadyOpen
		}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.drawers[d.ID] = d
	return nil
}

func (r *fakeDrawerRepo) FindOpen(_ context.Context) (*model.CashDrawer, error) {
	for _, d := range r.drawers {
		if d.Status == model.DrawerStatusOpen {
			return d, nil
		}
	}
	return nil, domain.ErrNoOpenDrawer
}

func (r *fakeDrawerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashDrawer, error) {
	d, ok := r.drawers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (r *fakeDrawerRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.CashDrawer, error) {
	d, ok := r.drawers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (r *fakeDrawerRepo) UpdateTx(_ *gorm.DB, d *model.CashDrawer) error {
	r.drawers[d.ID] = d
	return nil
}

func (r *fakeDrawerRepo) List(_ context.Context, filter dto.DrawerHistoryFilter) ([]model.CashDrawer, int64, error) {
	var all []model.CashDrawer
	for _, d := range r.drawers {
		if filter.Status != "" && filter.Status != "all" && d.Status != filter.Status {
			continue
		}
		if filter.Operator != "" && !strings.Contains(strings.ToLower(d.OperatorName), strings.ToLower(filter.Operator)) {
			continue
		}
		all = append(all, *d)
	}
	total := int64(len(all))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

var _ repository.DrawerRepository = (*fakeDrawerRepo)(nil)

// ── MovementRepository ───────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []model.CashMovement
}

func (r *fakeMovementRepo) DB() *gorm.DB { return nil }

func (r *fakeMovementRepo) CreateTx(_ *gorm.DB, m *model.CashMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashMovement, error) {
	for i := range r.movements {
		if r.movements[i].ID == id {
			return &r.movements[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeMovementRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	for i := range r.movements {
		if r.movements[i].ID == id {
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeMovementRepo) ListByDrawer(_ context.Context, drawerID uuid.UUID) ([]model.CashMovement, error) {
	return r.byDrawer(drawerID), nil
}

func (r *fakeMovementRepo) ListByDrawerTx(_ *gorm.DB, drawerID uuid.UUID) ([]model.CashMovement, error) {
	return r.byDrawer(drawerID), nil
}

func (r *fakeMovementRepo) byDrawer(drawerID uuid.UUID) []model.CashMovement {
	var result []model.CashMovement
	for _, m := range r.movements {
		if m.CashDrawerID == drawerID {
			result = append(result, m)
		}
	}
	return result
}

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

// ── SaleRepository ───────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales      []model.Sale
	nextTicket int
}

func (r *fakeSaleRepo) DB() *gorm.DB { return nil }

func (r *fakeSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			return &r.sales[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeSaleRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.nextTicket++
	return r.nextTicket, nil
}

func (r *fakeSaleRepo) ListByDrawer(_ context.Context, drawerID uuid.UUID) ([]model.Sale, error) {
	return r.byDrawer(drawerID), nil
}

func (r *fakeSaleRepo) ListByDrawerTx(_ *gorm.DB, drawerID uuid.UUID) ([]model.Sale, error) {
	return r.byDrawer(drawerID), nil
}

func (r *fakeSaleRepo) byDrawer(drawerID uuid.UUID) []model.Sale {
	var result []model.Sale
	for _, s := range r.sales {
		if s.CashDrawerID == drawerID {
			result = append(result, s)
		}
	}
	return result
}

func (r *fakeSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	all := r.sales
	if filter.DrawerID != "" {
		id, err := uuid.Parse(filter.DrawerID)
		if err != nil {
			return nil, 0, err
		}
		all = r.byDrawer(id)
	}
	return all, int64(len(all)), nil
}

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

// ── ProductRepository ────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
	// failDecrementFor simulates a concurrent sale draining stock between
	// the pre-flight check and the in-transaction decrement.
	failDecrementFor map[uuid.UUID]bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:         make(map[uuid.UUID]*model.Product),
		failDecrementFor: make(map[uuid.UUID]bool),
	}
}

func (r *fakeProductRepo) DB() *gorm.DB { return nil }

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	return r.find(id)
}

func (r *fakeProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.find(id)
}

func (r *fakeProductRepo) find(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	if r.failDecrementFor[id] || !p.Active || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *fakeProductRepo) CreateStockMovementTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// openDrawer seeds an open drawer directly into the fake.
func openDrawer(r *fakeDrawerRepo, opening string) *model.CashDrawer {
	d := &model.CashDrawer{
		ID:            uuid.New(),
		OperatorName:  "Ezequiel",
		OpeningAmount: dec(opening),
		Status:        model.DrawerStatusOpen,
		OpenedAt:      time.Now(),
	}
	r.drawers[d.ID] = d
	return d
}
