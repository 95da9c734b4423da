package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Create_TotalFromDatabasePrices(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	productRepo := newFakeProductRepo(
		&models.Product{ID: 1, Name: "Cartel personalizado", Category: "GraphicDesign", Price: 120},
		&models.Product{ID: 2, Name: "Camiseta serigrafiada", Category: "CustomClothing", Price: 35},
	)
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(discardLogger(), db, productRepo, orderRepo)

	order, err := svc.Create(context.Background(), 7, []NewOrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})
	require.NoError(t, err)

	// el total sale de los precios vigentes, nunca del cliente
	assert.Equal(t, 120.0*2+35.0*3, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 120.0, order.Items[0].UnitPrice)
	assert.Equal(t, 35.0, order.Items[1].UnitPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, int64(7), order.UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_Create_EmptyOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewOrderService(discardLogger(), db, newFakeProductRepo(), newFakeOrderRepo())

	_, err = svc.Create(context.Background(), 7, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
	// no debe abrirse transacción alguna
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_Create_QuantityBelowOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewOrderService(discardLogger(), db, newFakeProductRepo(), newFakeOrderRepo())

	_, err = svc.Create(context.Background(), 7, []NewOrderItem{{ProductID: 1, Quantity: 0}})
	assert.ErrorIs(t, err, ErrBadQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_Create_UnknownProductPersistsNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	productRepo := newFakeProductRepo(
		&models.Product{ID: 1, Name: "Mural interior", Category: "Murals", Price: 900},
	)
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(discardLogger(), db, productRepo, orderRepo)

	_, err = svc.Create(context.Background(), 7, []NewOrderItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 99, Quantity: 1},
	})
	assert.ErrorIs(t, err, storage.ErrProductNotFound)
	assert.Zero(t, orderRepo.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_Get_OwnershipEnforced(t *testing.T) {
	orderRepo := newFakeOrderRepo(&models.Order{ID: 4, UserID: 7, Status: models.OrderStatusPending})
	svc := NewOrderService(discardLogger(), nil, newFakeProductRepo(), orderRepo)

	_, err := svc.Get(context.Background(), 8, false, 4)
	assert.ErrorIs(t, err, ErrForbidden)

	order, err := svc.Get(context.Background(), 7, false, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), order.ID)

	// un administrador puede leer pedidos ajenos
	order, err = svc.Get(context.Background(), 8, true, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), order.ID)
}

func TestOrderService_Get_NotFound(t *testing.T) {
	svc := NewOrderService(discardLogger(), nil, newFakeProductRepo(), newFakeOrderRepo())

	_, err := svc.Get(context.Background(), 7, true, 99)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orderRepo := newFakeOrderRepo(&models.Order{ID: 4, UserID: 7, Status: models.OrderStatusPending})
	svc := NewOrderService(discardLogger(), nil, newFakeProductRepo(), orderRepo)

	_, err := svc.UpdateStatus(context.Background(), 4, "shipped")
	assert.ErrorIs(t, err, ErrBadStatus)

	order, err := svc.UpdateStatus(context.Background(), 4, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)

	_, err = svc.UpdateStatus(context.Background(), 99, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
}

func TestOrderService_ListAll_StatusFilter(t *testing.T) {
	orderRepo := newFakeOrderRepo(
		&models.Order{ID: 1, UserID: 7, Status: models.OrderStatusPending},
		&models.Order{ID: 2, UserID: 7, Status: models.OrderStatusCompleted},
	)
	svc := NewOrderService(discardLogger(), nil, newFakeProductRepo(), orderRepo)

	_, err := svc.ListAll(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrBadStatus)

	orders, err := svc.ListAll(context.Background(), models.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1), orders[0].ID)

	orders, err = svc.ListAll(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderService_ListMine(t *testing.T) {
	orderRepo := newFakeOrderRepo(
		&models.Order{ID: 1, UserID: 7, Status: models.OrderStatusPending},
		&models.Order{ID: 2, UserID: 8, Status: models.OrderStatusPending},
	)
	svc := NewOrderService(discardLogger(), nil, newFakeProductRepo(), orderRepo)

	orders, err := svc.ListMine(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(7), orders[0].UserID)
}

func TestOrderService_Delete(t *testing.T) {
	orderRepo := newFakeOrderRepo(&models.Order{ID: 4, UserID: 7, Status: models.OrderStatusPending})
	svc := NewOrderService(discardLogger(), nil, newFakeProductRepo(), orderRepo)

	require.NoError(t, svc.Delete(context.Background(), 4))

	err := svc.Delete(context.Background(), 4)
	assert.True(t, errors.Is(err, storage.ErrOrderNotFound))
}
