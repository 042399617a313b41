package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/domain"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/service"
)

func newDrawerService(drawers *fakeDrawerRepo, sales *fakeSaleRepo, movements *fakeMovementRepo) service.DrawerService {
	return service.NewDrawerService(drawers, sales, movements, nil, time.Second, nil)
}

func TestOpenDrawer(t *testing.T) {
	repo := newFakeDrawerRepo()
	svc := newDrawerService(repo, &fakeSaleRepo{}, &fakeMovementRepo{})

	resp, err := svc.Open(context.Background(), dto.OpenDrawerRequest{
		OperatorName:  "Ezequiel",
		OpeningAmount: dec("100.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, model.DrawerStatusOpen, resp.Status)
	assert.Equal(t, "Ezequiel", resp.OperatorName)
	assert.Equal(t, "100", resp.OpeningAmount.String())
	assert.Nil(t, resp.ClosingAmount)
	assert.Nil(t, resp.ExpectedAmount)
	assert.Nil(t, resp.Difference)
}

func TestOpenDrawerWhileAnotherIsOpen(t *testing.T) {
	repo := newFakeDrawerRepo()
	svc := newDrawerService(repo, &fakeSaleRepo{}, &fakeMovementRepo{})

	_, err := svc.Open(context.Background(), dto.OpenDrawerRequest{
		OperatorName:  "Ezequiel",
		OpeningAmount: dec("100.00"),
	})
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), dto.OpenDrawerRequest{
		OperatorName:  "Sofia",
		OpeningAmount: dec("200.00"),
	})
	assert.ErrorIs(t, err, domain.ErrDrawerAlreadyOpen)
}

func TestOpenDrawerNegativeOpening(t *testing.T) {
	repo := newFakeDrawerRepo()
	svc := newDrawerService(repo, &fakeSaleRepo{}, &fakeMovementRepo{})

	_, err := svc.Open(context.Background(), dto.OpenDrawerRequest{
		OperatorName:  "Ezequiel",
		OpeningAmount: dec("-1.00"),
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "opening_amount", vErr.Field)
}

func TestCloseDrawerFreezesReconciliation(t *testing.T) {
	drawers := newFakeDrawerRepo()
	sales := &fakeSaleRepo{}
	movements := &fakeMovementRepo{}
	svc := newDrawerService(drawers, sales, movements)

	drawer := openDrawer(drawers, "100.00")

	// One cash sale of 50 and one expense of 20:
	// expected = 100 + 50 − 20 = 130
	sales.sales = append(sales.sales, model.Sale{
		ID: uuid.New(), TicketNumber: 1, CashDrawerID: drawer.ID,
		Total: dec("50.00"), PaymentMethod: model.PaymentCash,
	})
	movements.movements = append(movements.movements, model.CashMovement{
		ID: uuid.New(), CashDrawerID: drawer.ID,
		Type: model.MovementExpense, Amount: dec("20.00"),
		Description: "ice for the freezer", CreatedByName: "Ezequiel",
	})

	// Declare 125 → difference = 125 − 130 = −5 (shortage)
	resp, err := svc.Close(context.Background(), drawer.ID, dto.CloseDrawerRequest{
		ClosingAmount: dec("125.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "130", resp.ExpectedAmount.String())
	assert.Equal(t, "-5", resp.Difference.String())
	assert.Equal(t, model.DrawerStatusClosed, resp.Status)

	// Frozen on the row, not just in the response
	stored := drawers.drawers[drawer.ID]
	require.NotNil(t, stored.ExpectedAmount)
	require.NotNil(t, stored.Difference)
	assert.Equal(t, "130", stored.ExpectedAmount.String())
	assert.Equal(t, "-5", stored.Difference.String())
	require.NotNil(t, stored.ClosedAt)
}

func TestCloseDrawerIgnoresNonCashSales(t *testing.T) {
	drawers := newFakeDrawerRepo()
	sales := &fakeSaleRepo{}
	svc := newDrawerService(drawers, sales, &fakeMovementRepo{})

	drawer := openDrawer(drawers, "100.00")

	cardTotal := dec("80.00")
	cashPart, cardPart, transferPart := dec("30.00"), dec("10.00"), dec("10.00")
	sales.sales = append(sales.sales,
		model.Sale{
			ID: uuid.New(), TicketNumber: 1, CashDrawerID: drawer.ID,
			Total: cardTotal, PaymentMethod: model.PaymentCard,
		},
		model.Sale{
			ID: uuid.New(), TicketNumber: 2, CashDrawerID: drawer.ID,
			Total: dec("50.00"), PaymentMethod: model.PaymentMixed,
			PaymentCashAmount:     &cashPart,
			PaymentCardAmount:     &cardPart,
			PaymentTransferAmount: &transferPart,
		},
	)

	// Only the mixed sale's cash portion counts: expected = 100 + 30 = 130
	resp, err := svc.Close(context.Background(), drawer.ID, dto.CloseDrawerRequest{
		ClosingAmount: dec("130.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "130", resp.ExpectedAmount.String())
	assert.True(t, resp.Difference.IsZero())
}

func TestCloseDrawerTwice(t *testing.T) {
	drawers := newFakeDrawerRepo()
	svc := newDrawerService(drawers, &fakeSaleRepo{}, &fakeMovementRepo{})

	drawer := openDrawer(drawers, "100.00")

	_, err := svc.Close(context.Background(), drawer.ID, dto.CloseDrawerRequest{
		ClosingAmount: dec("100.00"),
	})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), drawer.ID, dto.CloseDrawerRequest{
		ClosingAmount: dec("100.00"),
	})
	assert.ErrorIs(t, err, domain.ErrDrawerClosed)
}

func TestCloseUnknownDrawer(t *testing.T) {
	svc := newDrawerService(newFakeDrawerRepo(), &fakeSaleRepo{}, &fakeMovementRepo{})

	_, err := svc.Close(context.Background(), uuid.New(), dto.CloseDrawerRequest{
		ClosingAmount: dec("10.00"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetActiveNoOpenDrawer(t *testing.T) {
	svc := newDrawerService(newFakeDrawerRepo(), &fakeSaleRepo{}, &fakeMovementRepo{})

	_, err := svc.GetActive(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoOpenDrawer)
}

func TestSummarizeOpenDrawer(t *testing.T) {
	drawers := newFakeDrawerRepo()
	sales := &fakeSaleRepo{}
	movements := &fakeMovementRepo{}
	svc := newDrawerService(drawers, sales, movements)

	drawer := openDrawer(drawers, "500.00")
	sales.sales = append(sales.sales, model.Sale{
		ID: uuid.New(), TicketNumber: 1, CashDrawerID: drawer.ID,
		Total: dec("1200.50"), PaymentMethod: model.PaymentCash,
	})

	resp, err := svc.Summarize(context.Background(), drawer.ID)

	require.NoError(t, err)
	assert.Equal(t, model.DrawerStatusOpen, resp.Status)
	assert.Equal(t, 1, resp.SalesCount)
	assert.Equal(t, "1200.5", resp.SalesCash.String())
	assert.Equal(t, "1700.5", resp.ExpectedAmount.String())
}

func TestHistoryFiltersByStatus(t *testing.T) {
	drawers := newFakeDrawerRepo()
	svc := newDrawerService(drawers, &fakeSaleRepo{}, &fakeMovementRepo{})

	open := openDrawer(drawers, "100.00")
	closedAt := time.Now()
	closing := dec("90.00")
	closedID := uuid.New()
	drawers.drawers[closedID] = &model.CashDrawer{
		ID: closedID, OperatorName: "Sofia", OpeningAmount: dec("80.00"),
		ClosingAmount: &closing, Status: model.DrawerStatusClosed,
		OpenedAt: time.Now().Add(-8 * time.Hour), ClosedAt: &closedAt,
	}

	resp, err := svc.History(context.Background(), dto.DrawerHistoryFilter{
		Status: model.DrawerStatusOpen, Page: 1, Limit: 20,
	})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, open.ID.String(), resp.Data[0].ID)
	assert.Equal(t, int64(1), resp.Total)
}
