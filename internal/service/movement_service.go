package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/domain"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/money"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/repository"
)

type MovementService interface {
	Add(ctx context.Context, createdBy string, req dto.AddMovementRequest) (*dto.MovementResponse, error)
	Delete(ctx context.Context, movementID uuid.UUID) error
	ListByDrawer(ctx context.Context, drawerID uuid.UUID) (*dto.MovementListResponse, error)
}

type movementService struct {
	repo       repository.MovementRepository
	drawerRepo repository.DrawerRepository
	cache      *summaryCache
}

func NewMovementService(
	repo repository.MovementRepository,
	drawerRepo repository.DrawerRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) MovementService {
	return &movementService{
		repo:       repo,
		drawerRepo: drawerRepo,
		cache:      newSummaryCache(rdb, cacheTTL),
	}
}

// ── Add ──────────────────────────────────────────────────────────────────────
// The open-drawer precondition is re-verified inside the transaction with the
// drawer row locked, so a concurrent Close cannot slip in between the check
// and the insert.

func (s *movementService) Add(ctx context.Context, createdBy string, req dto.AddMovementRequest) (*dto.MovementResponse, error) {
	if !model.ValidMovementType(req.Type) {
		return nil, domain.NewValidation("type", "unknown movement type")
	}
	if !req.Amount.IsPositive() {
		return nil, domain.NewValidation("amount", "must be greater than zero")
	}
	if len(req.Description) < 3 || len(req.Description) > 500 {
		return nil, domain.NewValidation("description", "must be 3-500 characters")
	}
	if req.Type == model.MovementSupplierPayment && (req.SupplierName == nil || *req.SupplierName == "") {
		return nil, domain.NewValidation("supplier_name", "required for supplier_payment")
	}

	drawer, err := s.drawerRepo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}

	movement := &model.CashMovement{
		CashDrawerID:    drawer.ID,
		Type:            req.Type,
		Amount:          money.Round(req.Amount),
		Description:     req.Description,
		SupplierName:    req.SupplierName,
		ReferenceNumber: req.ReferenceNumber,
		CreatedByName:   createdBy,
		CreatedAt:       time.Now(),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		locked, err := s.drawerRepo.FindByIDForUpdateTx(tx, drawer.ID)
		if err != nil {
			return err
		}
		if locked.Status != model.DrawerStatusOpen {
			return domain.ErrNoOpenDrawer
		}
		return s.repo.CreateTx(tx, movement)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx, drawer.ID)
	return movementToResponse(movement), nil
}

// ── Delete ───────────────────────────────────────────────────────────────────
// Movements of a closed drawer are immutable history: deletion requires the
// owning drawer to still be open, checked under the same row lock.

func (s *movementService) Delete(ctx context.Context, movementID uuid.UUID) error {
	movement, err := s.repo.FindByID(ctx, movementID)
	if err != nil {
		return err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		drawer, err := s.drawerRepo.FindByIDForUpdateTx(tx, movement.CashDrawerID)
		if err != nil {
			return err
		}
		if drawer.Status != model.DrawerStatusOpen {
			return domain.ErrDrawerClosed
		}
		return s.repo.DeleteTx(tx, movementID)
	})
	if txErr != nil {
		return txErr
	}

	s.cache.Invalidate(ctx, movement.CashDrawerID)
	return nil
}

func (s *movementService) ListByDrawer(ctx context.Context, drawerID uuid.UUID) (*dto.MovementListResponse, error) {
	if _, err := s.drawerRepo.FindByID(ctx, drawerID); err != nil {
		return nil, err
	}
	movements, err := s.repo.ListByDrawer(ctx, drawerID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	total := money.Sum()
	for i := range movements {
		items = append(items, *movementToResponse(&movements[i]))
		total = total.Add(movements[i].Amount)
	}
	return &dto.MovementListResponse{Data: items, Total: money.Round(total)}, nil
}

func movementToResponse(m *model.CashMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:              m.ID.String(),
		CashDrawerID:    m.CashDrawerID.String(),
		Type:            m.Type,
		Amount:          m.Amount,
		Description:     m.Description,
		SupplierName:    m.SupplierName,
		ReferenceNumber: m.ReferenceNumber,
		CreatedByName:   m.CreatedByName,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
	}
}
