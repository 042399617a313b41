package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/domain"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
)

type SaleRepository interface {
	// Create runs inside the sale transaction — callers must pass the tx.
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error)
	ListByDrawer(ctx context.Context, drawerID uuid.UUID) ([]model.Sale, error)
	ListByDrawerTx(tx *gorm.DB, drawerID uuid.UUID) ([]model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Postgres sequence keeps ticket numbers gap-tolerant but strictly
	// increasing even under concurrent sales.
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('sales_ticket_number_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) ListByDrawer(ctx context.Context, drawerID uuid.UUID) ([]model.Sale, error) {
	return r.listByDrawer(r.db.WithContext(ctx), drawerID)
}

func (r *saleRepo) ListByDrawerTx(tx *gorm.DB, drawerID uuid.UUID) ([]model.Sale, error) {
	return r.listByDrawer(tx, drawerID)
}

func (r *saleRepo) listByDrawer(db *gorm.DB, drawerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := db.Where("cash_drawer_id = ?", drawerID).Order("created_at ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.DrawerID != "" {
		q = q.Where("cash_drawer_id = ?", filter.DrawerID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}
