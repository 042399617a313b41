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

func newMovementService(movements *fakeMovementRepo, drawers *fakeDrawerRepo) service.MovementService {
	return service.NewMovementService(movements, drawers, nil, time.Second)
}

func TestAddMovement(t *testing.T) {
	drawers := newFakeDrawerRepo()
	movements := &fakeMovementRepo{}
	svc := newMovementService(movements, drawers)

	drawer := openDrawer(drawers, "100.00")

	resp, err := svc.Add(context.Background(), "Ezequiel", dto.AddMovementRequest{
		Type:        model.MovementExpense,
		Amount:      dec("20.00"),
		Description: "ice for the freezer",
	})

	require.NoError(t, err)
	assert.Equal(t, drawer.ID.String(), resp.CashDrawerID)
	assert.Equal(t, model.MovementExpense, resp.Type)
	assert.Equal(t, "20", resp.Amount.String())
	assert.Equal(t, "Ezequiel", resp.CreatedByName)
	assert.Len(t, movements.movements, 1)
}

func TestAddMovementNoOpenDrawer(t *testing.T) {
	svc := newMovementService(&fakeMovementRepo{}, newFakeDrawerRepo())

	_, err := svc.Add(context.Background(), "Ezequiel", dto.AddMovementRequest{
		Type:        model.MovementWithdrawal,
		Amount:      dec("50.00"),
		Description: "owner withdrawal",
	})
	assert.ErrorIs(t, err, domain.ErrNoOpenDrawer)
}

func TestAddMovementSupplierNameRequired(t *testing.T) {
	drawers := newFakeDrawerRepo()
	svc := newMovementService(&fakeMovementRepo{}, drawers)
	openDrawer(drawers, "100.00")

	_, err := svc.Add(context.Background(), "Ezequiel", dto.AddMovementRequest{
		Type:        model.MovementSupplierPayment,
		Amount:      dec("300.00"),
		Description: "soda delivery",
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "supplier_name", vErr.Field)
}

func TestAddMovementZeroAmount(t *testing.T) {
	drawers := newFakeDrawerRepo()
	svc := newMovementService(&fakeMovementRepo{}, drawers)
	openDrawer(drawers, "100.00")

	_, err := svc.Add(context.Background(), "Ezequiel", dto.AddMovementRequest{
		Type:        model.MovementExpense,
		Amount:      dec("0.00"),
		Description: "nothing really",
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "amount", vErr.Field)
}

func TestDeleteMovementWhileOpen(t *testing.T) {
	drawers := newFakeDrawerRepo()
	movements := &fakeMovementRepo{}
	svc := newMovementService(movements, drawers)

	drawer := openDrawer(drawers, "100.00")
	m := model.CashMovement{
		ID: uuid.New(), CashDrawerID: drawer.ID,
		Type: model.MovementExpense, Amount: dec("15.00"),
		Description: "mistyped amount", CreatedByName: "Ezequiel",
	}
	movements.movements = append(movements.movements, m)

	err := svc.Delete(context.Background(), m.ID)

	require.NoError(t, err)
	assert.Empty(t, movements.movements)
}

func TestDeleteMovementAfterClose(t *testing.T) {
	drawers := newFakeDrawerRepo()
	movements := &fakeMovementRepo{}
	svc := newMovementService(movements, drawers)

	drawer := openDrawer(drawers, "100.00")
	m := model.CashMovement{
		ID: uuid.New(), CashDrawerID: drawer.ID,
		Type: model.MovementExpense, Amount: dec("15.00"),
		Description: "late correction attempt", CreatedByName: "Ezequiel",
	}
	movements.movements = append(movements.movements, m)

	drawer.Status = model.DrawerStatusClosed

	err := svc.Delete(context.Background(), m.ID)

	assert.ErrorIs(t, err, domain.ErrDrawerClosed)
	assert.Len(t, movements.movements, 1, "closed-drawer ledger must stay intact")
}

func TestDeleteUnknownMovement(t *testing.T) {
	svc := newMovementService(&fakeMovementRepo{}, newFakeDrawerRepo())

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovementsWithTotal(t *testing.T) {
	drawers := newFakeDrawerRepo()
	movements := &fakeMovementRepo{}
	svc := newMovementService(movements, drawers)

	drawer := openDrawer(drawers, "100.00")
	movements.movements = append(movements.movements,
		model.CashMovement{
			ID: uuid.New(), CashDrawerID: drawer.ID,
			Type: model.MovementExpense, Amount: dec("20.00"),
			Description: "cleaning supplies", CreatedByName: "Ezequiel",
		},
		model.CashMovement{
			ID: uuid.New(), CashDrawerID: drawer.ID,
			Type: model.MovementWithdrawal, Amount: dec("35.50"),
			Description: "owner withdrawal", CreatedByName: "Ezequiel",
		},
	)

	resp, err := svc.ListByDrawer(context.Background(), drawer.ID)

	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "55.5", resp.Total.String())
}
