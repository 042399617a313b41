package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/domain"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
)

// DrawerRepository is the data access contract for cash drawers. Services
// depend on this interface, not on the concrete GORM implementation.
type DrawerRepository interface {
	// CreateOpen inserts a new drawer in open status. The partial unique
	// index ux_cash_drawers_open makes the insert itself the uniqueness
	// check: a losing racer gets domain.ErrDrawerAlreadyOpen.
	CreateOpen(ctx context.Context, d *model.CashDrawer) error
	FindOpen(ctx context.Context) (*model.CashDrawer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashDrawer, error)
	// FindByIDForUpdateTx locks the drawer row for the duration of tx, so
	// close-time reconciliation reads and the status flip happen against
	// the same consistent state.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.CashDrawer, error)
	UpdateTx(tx *gorm.DB, d *model.CashDrawer) error
	List(ctx context.Context, filter dto.DrawerHistoryFilter) ([]model.CashDrawer, int64, error)
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type drawerRepo struct{ db *gorm.DB }

func NewDrawerRepository(db *gorm.DB) DrawerRepository { return &drawerRepo{db: db} }

func (r *drawerRepo) DB() *gorm.DB { return r.db }

func (r *drawerRepo) CreateOpen(ctx context.Context, d *model.CashDrawer) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if isUniqueViolation(err) {
		return domain.ErrDrawerAlreadyOpen
	}
	return err
}

func (r *drawerRepo) FindOpen(ctx context.Context) (*model.CashDrawer, error) {
	var d model.CashDrawer
	err := r.db.WithContext(ctx).Where("status = ?", model.DrawerStatusOpen).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoOpenDrawer
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *drawerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashDrawer, error) {
	var d model.CashDrawer
	err := r.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *drawerRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.CashDrawer, error) {
	var d model.CashDrawer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *drawerRepo) UpdateTx(tx *gorm.DB, d *model.CashDrawer) error {
	return tx.Save(d).Error
}

func (r *drawerRepo) List(ctx context.Context, filter dto.DrawerHistoryFilter) ([]model.CashDrawer, int64, error) {
	var drawers []model.CashDrawer
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CashDrawer{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Operator != "" {
		q = q.Where("operator_name ILIKE ?", "%"+filter.Operator+"%")
	}
	if filter.DateFrom != "" {
		q = q.Where("DATE(opened_at) >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("DATE(opened_at) <= ?", filter.DateTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("opened_at DESC").Offset(offset).Limit(filter.Limit).Find(&drawers).Error
	return drawers, total, err
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
