package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/domain"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/money"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/repository"
)

type SaleService interface {
	ProcessSale(ctx context.Context, req dto.ProcessSaleRequest) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo        repository.SaleRepository
	drawerRepo  repository.DrawerRepository
	productRepo repository.ProductRepository
	cache       *summaryCache
}

func NewSaleService(
	repo repository.SaleRepository,
	drawerRepo repository.DrawerRepository,
	productRepo repository.ProductRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) SaleService {
	return &saleService{
		repo:        repo,
		drawerRepo:  drawerRepo,
		productRepo: productRepo,
		cache:       newSummaryCache(rdb, cacheTTL),
	}
}

// ── ProcessSale ──────────────────────────────────────────────────────────────
// The one multi-entity mutation in the system. Sequence:
//   1. Resolve the open drawer; fail if none.
//   2. Pre-flight: resolve each product, reject not-found / inactive /
//      insufficient stock with the offending line item identified.
//   3. Validate arithmetic before any write: per-line subtotal, declared
//      total, mixed-payment split.
//   4. One transaction: lock the drawer row (serializes against Close),
//      insert Sale + items, conditionally decrement stock per item, record a
//      stock movement per item. A decrement that matches no row means a
//      concurrent sale won the remaining units — the whole unit rolls back.
// No step outside the transaction writes anything, so every failure leaves
// stock and sales exactly as they were.

func (s *saleService) ProcessSale(ctx context.Context, req dto.ProcessSaleRequest) (*dto.SaleResponse, error) {
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return nil, domain.NewValidation("payment_method", "unknown payment method")
	}
	if len(req.Items) == 0 {
		return nil, domain.NewValidation("items", "at least one item is required")
	}

	// 1. Single active drawer
	drawer, err := s.drawerRepo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Resolve products and build line items (pre-flight, outside tx)
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		quantity  int
		unitPrice decimal.Decimal
		subtotal  decimal.Decimal
	}

	resolved := make([]resolvedItem, 0, len(req.Items))
	computedTotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, domain.NewValidation("product_id", fmt.Sprintf("invalid id %q", item.ProductID))
		}
		if item.Quantity < 1 {
			return nil, domain.NewValidation("quantity", "must be at least 1")
		}
		if money.IsNegative(item.UnitPrice) {
			return nil, domain.NewValidation("unit_price", "must not be negative")
		}

		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if !p.Active {
			return nil, fmt.Errorf("product %s: %w", p.Name, domain.ErrProductInactive)
		}
		if p.Stock < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.Stock,
				Requested:   item.Quantity,
			}
		}

		subtotal := money.Subtotal(item.Quantity, item.UnitPrice)
		computedTotal = computedTotal.Add(subtotal)
		resolved = append(resolved, resolvedItem{
			productID: p.ID,
			name:      p.Name,
			quantity:  item.Quantity,
			unitPrice: money.Round(item.UnitPrice),
			subtotal:  subtotal,
		})
	}

	// 3. Arithmetic invariants — all checked before any write
	total := money.Round(req.Total)
	computedTotal = money.Round(computedTotal)
	if !money.Equal(total, computedTotal) {
		return nil, &domain.AmountMismatchError{
			Declared: total,
			Computed: computedTotal,
			Detail:   "total vs sum of subtotals",
		}
	}

	var cashAmt, cardAmt, transferAmt *decimal.Decimal
	if req.PaymentMethod == model.PaymentMixed {
		if req.PaymentDetails == nil {
			return nil, domain.NewValidation("payment_details", "required for mixed payment")
		}
		d := req.PaymentDetails
		if money.IsNegative(d.CashAmount) || money.IsNegative(d.CardAmount) || money.IsNegative(d.TransferAmount) {
			return nil, domain.NewValidation("payment_details", "split amounts must not be negative")
		}
		split := money.Sum(d.CashAmount, d.CardAmount, d.TransferAmount)
		if !money.Equal(split, total) {
			return nil, &domain.AmountMismatchError{
				Declared: total,
				Computed: split,
				Detail:   "mixed payment split vs total",
			}
		}
		cash, card, transfer := money.Round(d.CashAmount), money.Round(d.CardAmount), money.Round(d.TransferAmount)
		cashAmt, cardAmt, transferAmt = &cash, &card, &transfer
	} else if req.PaymentDetails != nil {
		return nil, domain.NewValidation("payment_details", "only allowed for mixed payment")
	}

	// 4. The atomic unit
	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-verify under lock: a Close committed after the pre-flight
		// check must abort the sale, not share the drawer with it.
		locked, err := s.drawerRepo.FindByIDForUpdateTx(tx, drawer.ID)
		if err != nil {
			return err
		}
		if locked.Status != model.DrawerStatusOpen {
			return domain.ErrNoOpenDrawer
		}

		ticket, err := s.repo.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}

		sale = model.Sale{
			TicketNumber:          ticket,
			CashDrawerID:          drawer.ID,
			Total:                 total,
			PaymentMethod:         req.PaymentMethod,
			PaymentCashAmount:     cashAmt,
			PaymentCardAmount:     cardAmt,
			PaymentTransferAmount: transferAmt,
			CreatedAt:             time.Now(),
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:   r.productID,
				ProductName: r.name,
				Quantity:    r.quantity,
				UnitPrice:   r.unitPrice,
				Subtotal:    r.subtotal,
			})
		}
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		for _, r := range resolved {
			before, err := s.productRepo.FindByIDTx(tx, r.productID)
			if err != nil {
				return err
			}

			applied, err := s.productRepo.DecrementStockTx(tx, r.productID, r.quantity)
			if err != nil {
				return err
			}
			if !applied {
				// A concurrent sale drained the stock between the
				// pre-flight check and here. Abort everything.
				return &domain.InsufficientStockError{
					ProductID:   r.productID,
					ProductName: r.name,
					Available:   before.Stock,
					Requested:   r.quantity,
				}
			}

			saleRef := sale.ID
			mov := &model.StockMovement{
				ProductID:   r.productID,
				Type:        "sale",
				Quantity:    -r.quantity,
				StockBefore: before.Stock,
				StockAfter:  before.Stock - r.quantity,
				Reason:      fmt.Sprintf("Sale ticket #%d", ticket),
				ReferenceID: &saleRef,
			}
			if err := s.productRepo.CreateStockMovementTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx, drawer.ID)
	return saleToResponse(&sale), nil
}

// ListSales returns a paginated list of sales, filtered by drawer and date.
// Default filter: today's sales.
func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(v *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	resp := &dto.SaleResponse{
		ID:            v.ID.String(),
		TicketNumber:  v.TicketNumber,
		CashDrawerID:  v.CashDrawerID.String(),
		Items:         items,
		Total:         v.Total,
		PaymentMethod: v.PaymentMethod,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
	if v.PaymentMethod == model.PaymentMixed &&
		v.PaymentCashAmount != nil && v.PaymentCardAmount != nil && v.PaymentTransferAmount != nil {
		resp.PaymentDetails = &dto.PaymentDetails{
			CashAmount:     *v.PaymentCashAmount,
			CardAmount:     *v.PaymentCardAmount,
			TransferAmount: *v.PaymentTransferAmount,
		}
	}
	return resp
}
