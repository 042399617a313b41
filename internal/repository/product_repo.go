package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/domain"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
)

// ProductRepository exposes the stock facet of the catalog. Full product CRUD
// lives in the admin application; this core reads products and decrements
// stock inside sale transactions.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	// DecrementStockTx applies a conditional decrement: the UPDATE only
	// matches when the product is active and has at least qty units, so a
	// concurrent sale that drained the stock first leaves zero rows
	// affected and applied=false. Stock can never go negative.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (applied bool, err error)
	CreateStockMovementTx(tx *gorm.DB, m *model.StockMovement) error
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.findByID(tx, id)
}

func (r *productRepo) findByID(db *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND active = true AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *productRepo) CreateStockMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}
