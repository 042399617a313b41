package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/domain"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
)

// MovementRepository persists manual cash outflows. Movements are never
// updated; they are created while a drawer is open and may be deleted only
// while that drawer is still open.
type MovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.CashMovement) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashMovement, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	ListByDrawer(ctx context.Context, drawerID uuid.UUID) ([]model.CashMovement, error)
	ListByDrawerTx(tx *gorm.DB, drawerID uuid.UUID) ([]model.CashMovement, error)
	DB() *gorm.DB
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository { return &movementRepo{db: db} }

func (r *movementRepo) DB() *gorm.DB { return r.db }

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.CashMovement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashMovement, error) {
	var m model.CashMovement
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movementRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Delete(&model.CashMovement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *movementRepo) ListByDrawer(ctx context.Context, drawerID uuid.UUID) ([]model.CashMovement, error) {
	return r.listByDrawer(r.db.WithContext(ctx), drawerID)
}

func (r *movementRepo) ListByDrawerTx(tx *gorm.DB, drawerID uuid.UUID) ([]model.CashMovement, error) {
	return r.listByDrawer(tx, drawerID)
}

func (r *movementRepo) listByDrawer(db *gorm.DB, drawerID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := db.Where("cash_drawer_id = ?", drawerID).Order("created_at ASC").Find(&movs).Error
	return movs, err
}
