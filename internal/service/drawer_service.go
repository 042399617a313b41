package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/domain"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/money"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/reconcile"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/repository"
)

// CloseReportEnqueuer dispatches the post-close report job. Delivery is
// best-effort and must never affect the outcome of Close.
type CloseReportEnqueuer interface {
	EnqueueCloseReport(ctx context.Context, drawerID uuid.UUID) error
}

type DrawerService interface {
	Open(ctx context.Context, req dto.OpenDrawerRequest) (*dto.DrawerResponse, error)
	Close(ctx context.Context, drawerID uuid.UUID, req dto.CloseDrawerRequest) (*dto.CloseDrawerResponse, error)
	// FindOpenDrawer is called by SaleService and MovementService to resolve
	// the single active drawer.
	FindOpenDrawer(ctx context.Context) (*model.CashDrawer, error)
	GetActive(ctx context.Context) (*dto.DrawerSummaryResponse, error)
	Summarize(ctx context.Context, drawerID uuid.UUID) (*dto.DrawerSummaryResponse, error)
	History(ctx context.Context, filter dto.DrawerHistoryFilter) (*dto.DrawerListResponse, error)
}

type drawerService struct {
	repo         repository.DrawerRepository
	saleRepo     repository.SaleRepository
	movementRepo repository.MovementRepository
	cache        *summaryCache
	reports      CloseReportEnqueuer
}

func NewDrawerService(
	repo repository.DrawerRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.MovementRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
	reports CloseReportEnqueuer,
) DrawerService {
	return &drawerService{
		repo:         repo,
		saleRepo:     saleRepo,
		movementRepo: movementRepo,
		cache:        newSummaryCache(rdb, cacheTTL),
		reports:      reports,
	}
}

// ── Open ─────────────────────────────────────────────────────────────────────
// The uniqueness of the open drawer is NOT checked with a prior query: the
// insert itself is the check, backed by the partial unique index. Two
// concurrent opens resolve to exactly one success.

func (s *drawerService) Open(ctx context.Context, req dto.OpenDrawerRequest) (*dto.DrawerResponse, error) {
	if len(req.OperatorName) < 2 || len(req.OperatorName) > 100 {
		return nil, domain.NewValidation("operator_name", "must be 2-100 characters")
	}
	if money.IsNegative(req.OpeningAmount) {
		return nil, domain.NewValidation("opening_amount", "must not be negative")
	}

	drawer := &model.CashDrawer{
		OperatorName:  req.OperatorName,
		OpeningAmount: money.Round(req.OpeningAmount),
		Status:        model.DrawerStatusOpen,
		OpenedAt:      time.Now(),
	}
	if err := s.repo.CreateOpen(ctx, drawer); err != nil {
		return nil, err
	}
	return drawerToResponse(drawer), nil
}

// ── Close ────────────────────────────────────────────────────────────────────
// Expected amount is frozen from aggregates read inside the same transaction
// that flips status to closed, with the drawer row locked, so no sale or
// movement can slip between the reconciliation read and the close write.

func (s *drawerService) Close(ctx context.Context, drawerID uuid.UUID, req dto.CloseDrawerRequest) (*dto.CloseDrawerResponse, error) {
	if money.IsNegative(req.ClosingAmount) {
		return nil, domain.NewValidation("closing_amount", "must not be negative")
	}
	if req.Notes != nil && len(*req.Notes) > 1000 {
		return nil, domain.NewValidation("notes", "must not exceed 1000 characters")
	}

	var resp *dto.CloseDrawerResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		drawer, err := s.repo.FindByIDForUpdateTx(tx, drawerID)
		if err != nil {
			return err
		}
		if drawer.Status != model.DrawerStatusOpen {
			// Closing twice must fail, never silently recompute.
			return domain.ErrDrawerClosed
		}

		sales, err := s.saleRepo.ListByDrawerTx(tx, drawer.ID)
		if err != nil {
			return err
		}
		movements, err := s.movementRepo.ListByDrawerTx(tx, drawer.ID)
		if err != nil {
			return err
		}

		summary := reconcile.Compute(drawer.OpeningAmount, sales, movements)
		closing := money.Round(req.ClosingAmount)
		difference := reconcile.Difference(closing, summary.ExpectedAmount)

		now := time.Now()
		drawer.ClosingAmount = &closing
		drawer.ExpectedAmount = &summary.ExpectedAmount
		drawer.Difference = &difference
		drawer.Status = model.DrawerStatusClosed
		drawer.Notes = req.Notes
		drawer.ClosedAt = &now

		if err := s.repo.UpdateTx(tx, drawer); err != nil {
			return err
		}

		resp = &dto.CloseDrawerResponse{
			DrawerID:       drawer.ID.String(),
			ExpectedAmount: summary.ExpectedAmount,
			ClosingAmount:  closing,
			Difference:     difference,
			Status:         model.DrawerStatusClosed,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx, drawerID)

	// Post-close report is fire-and-forget.
	if s.reports != nil {
		if err := s.reports.EnqueueCloseReport(ctx, drawerID); err != nil {
			log.Warn().Err(err).Str("drawer_id", drawerID.String()).Msg("could not enqueue close report")
		}
	}

	return resp, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *drawerService) FindOpenDrawer(ctx context.Context) (*model.CashDrawer, error) {
	return s.repo.FindOpen(ctx)
}

func (s *drawerService) GetActive(ctx context.Context) (*dto.DrawerSummaryResponse, error) {
	drawer, err := s.repo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, drawer)
}

// Summarize recomputes the cash position of any drawer. For the open drawer
// the result is a best-effort snapshot (short-TTL cache, no locking); the
// authoritative frozen value is written by Close.
func (s *drawerService) Summarize(ctx context.Context, drawerID uuid.UUID) (*dto.DrawerSummaryResponse, error) {
	drawer, err := s.repo.FindByID(ctx, drawerID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, drawer)
}

func (s *drawerService) summarize(ctx context.Context, drawer *model.CashDrawer) (*dto.DrawerSummaryResponse, error) {
	if drawer.Status == model.DrawerStatusOpen {
		if cached := s.cache.Get(ctx, drawer.ID); cached != nil {
			return cached, nil
		}
	}

	sales, err := s.saleRepo.ListByDrawer(ctx, drawer.ID)
	if err != nil {
		return nil, err
	}
	movements, err := s.movementRepo.ListByDrawer(ctx, drawer.ID)
	if err != nil {
		return nil, err
	}

	summary := reconcile.Compute(drawer.OpeningAmount, sales, movements)
	resp := &dto.DrawerSummaryResponse{
		DrawerID:       drawer.ID.String(),
		OperatorName:   drawer.OperatorName,
		Status:         drawer.Status,
		OpeningAmount:  summary.OpeningAmount,
		SalesCash:      summary.SalesCash,
		SalesCard:      summary.SalesCard,
		SalesTransfer:  summary.SalesTransfer,
		SalesCount:     summary.SalesCount,
		TotalMovements: summary.TotalMovements,
		MovementsCount: summary.MovementsCount,
		ExpectedAmount: summary.ExpectedAmount,
	}

	if drawer.Status == model.DrawerStatusOpen {
		s.cache.Set(ctx, drawer.ID, resp)
	}
	return resp, nil
}

func (s *drawerService) History(ctx context.Context, filter dto.DrawerHistoryFilter) (*dto.DrawerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	drawers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DrawerResponse, 0, len(drawers))
	for i := range drawers {
		items = append(items, *drawerToResponse(&drawers[i]))
	}
	return &dto.DrawerListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func drawerToResponse(d *model.CashDrawer) *dto.DrawerResponse {
	resp := &dto.DrawerResponse{
		ID:             d.ID.String(),
		OperatorName:   d.OperatorName,
		OpeningAmount:  d.OpeningAmount,
		ClosingAmount:  d.ClosingAmount,
		ExpectedAmount: d.ExpectedAmount,
		Difference:     d.Difference,
		Status:         d.Status,
		Notes:          d.Notes,
		OpenedAt:       d.OpenedAt.Format(time.RFC3339),
	}
	if d.ClosedAt != nil {
		t := d.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}
