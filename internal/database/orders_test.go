package db

import (
	"sync"
	"testing"

	"shop_backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItem_CallerTotalDiscarded(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	order := f.newOrder(t, DB, models.StatusNew)

	item := &models.OrderItem{OrderID: order.ID, ProductInfoID: f.info.ID, Quantity: 3, Price: 150, TotalAmount: 999}
	require.NoError(t, AddOrderItem(DB, item))
	assert.Equal(t, 450, item.TotalAmount)

	var stored models.OrderItem
	require.NoError(t, DB.First(&stored, item.ID).Error)
	assert.Equal(t, 450, stored.TotalAmount)
}

func TestOrderItem_Defaults(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	order := f.newOrder(t, DB, models.StatusBasket)

	item := models.NewOrderItem(order.ID, f.info.ID)
	require.NoError(t, AddOrderItem(DB, item))
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 1, item.Price)
	assert.Equal(t, 1, item.TotalAmount)
}

func TestUpdateOrderItem_RecomputesTotal(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	order := f.newOrder(t, DB, models.StatusNew)

	item := &models.OrderItem{OrderID: order.ID, ProductInfoID: f.info.ID, Quantity: 2, Price: 100}
	require.NoError(t, AddOrderItem(DB, item))
	require.Equal(t, 200, item.TotalAmount)

	updated, err := UpdateOrderItem(DB, item.ID, func(i *models.OrderItem) { i.Quantity = 5 })
	require.NoError(t, err)
	assert.Equal(t, 500, updated.TotalAmount)

	updated, err = UpdateOrderItem(DB, item.ID, func(i *models.OrderItem) {
		i.Price = 80
		i.TotalAmount = 1
	})
	require.NoError(t, err)
	assert.Equal(t, 400, updated.TotalAmount)

	var stored models.OrderItem
	require.NoError(t, DB.First(&stored, item.ID).Error)
	assert.Equal(t, 5, stored.Quantity)
	assert.Equal(t, 80, stored.Price)
	assert.Equal(t, 400, stored.TotalAmount)

	_, err = UpdateOrderItem(DB, item.ID, func(i *models.OrderItem) { i.Quantity = -1 })
	require.ErrorIs(t, err, models.ErrConstraintViolation)
}

func TestOrderItem_TotalCheckInEngine(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	order := f.newOrder(t, DB, models.StatusNew)
	item := &models.OrderItem{OrderID: order.ID, ProductInfoID: f.info.ID, Quantity: 2, Price: 100}
	require.NoError(t, AddOrderItem(DB, item))

	// UpdateColumn обходит хуки, запись должна отклонить сама база
	err := DB.Model(&models.OrderItem{}).Where("id = ?", item.ID).UpdateColumn("total_amount", 1).Error
	require.Error(t, err)
	require.ErrorIs(t, translate(err), models.ErrConstraintViolation)
}

func TestOrderItem_DuplicateListing(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	order := f.newOrder(t, DB, models.StatusNew)

	require.NoError(t, AddOrderItem(DB, &models.OrderItem{OrderID: order.ID, ProductInfoID: f.info.ID, Quantity: 1, Price: 100}))
	err := AddOrderItem(DB, &models.OrderItem{OrderID: order.ID, ProductInfoID: f.info.ID, Quantity: 4, Price: 100})
	require.ErrorIs(t, err, models.ErrConstraintViolation)

	total, err := OrderTotal(DB, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, total)
}

func TestOrderItem_UnknownListing(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	order := f.newOrder(t, DB, models.StatusNew)

	err := AddOrderItem(DB, &models.OrderItem{OrderID: order.ID, ProductInfoID: 777, Quantity: 1, Price: 1})
	require.ErrorIs(t, err, models.ErrReferentialIntegrity)
}

func TestCreateOrder_Validation(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)

	err := CreateOrder(DB, &models.Order{UserID: f.user.ID, Status: models.StatusNew})
	require.ErrorIs(t, err, models.ErrConstraintViolation)

	err = CreateOrder(DB, &models.Order{ContactID: f.contact.ID, Status: models.StatusNew})
	require.ErrorIs(t, err, models.ErrConstraintViolation)

	err = CreateOrder(DB, &models.Order{UserID: f.user.ID, ContactID: f.contact.ID, Status: "paid"})
	require.ErrorIs(t, err, models.ErrInvalidEnumValue)

	err = CreateOrder(DB, &models.Order{UserID: f.user.ID, ContactID: 555, Status: models.StatusNew})
	require.ErrorIs(t, err, models.ErrReferentialIntegrity)

	assert.EqualValues(t, 0, count(t, DB, &models.Order{}))
}

func TestSetOrderStatus(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	order := f.newOrder(t, DB, models.StatusBasket)
	require.NotEqual(t, uuid.Nil, order.UID)
	require.False(t, order.Dt.IsZero())

	// переходы не проверяются, допустим любой статус из набора
	for _, status := range []models.OrderStatus{models.StatusDelivered, models.StatusBasket, models.StatusCanceled, models.StatusNew} {
		updated, err := SetOrderStatus(DB, order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err := SetOrderStatus(DB, order.ID, "lost")
	require.ErrorIs(t, err, models.ErrInvalidEnumValue)

	stored, err := GetOrderByUID(DB, order.UID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, stored.Status)
	assert.Equal(t, order.ID, stored.ID)
	assert.True(t, order.Dt.Equal(stored.Dt))

	err = DB.Model(&models.Order{}).Where("id = ?", order.ID).UpdateColumn("status", "lost").Error
	require.Error(t, err)

	_, err = GetOrderByUID(DB, uuid.New())
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	first := f.newOrder(t, DB, models.StatusDelivered)
	second := f.newOrder(t, DB, models.StatusNew)

	orders, err := ListOrders(DB, f.user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.NotEqual(t, orders[0].UID, orders[1].UID)
}

func TestAddToBasket(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)

	item, err := AddToBasket(DB, f.user.ID, f.contact.ID, f.info.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, f.info.Price, item.Price)
	assert.Equal(t, 200, item.TotalAmount)

	again, err := AddToBasket(DB, f.user.ID, f.contact.ID, f.info.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, item.ID, again.ID)
	assert.Equal(t, 5, again.Quantity)
	assert.Equal(t, 500, again.TotalAmount)

	assert.EqualValues(t, 1, count(t, DB, &models.Order{}))
	assert.EqualValues(t, 1, count(t, DB, &models.OrderItem{}))

	basket, err := GetOrder(DB, again.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBasket, basket.Status)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, "№1 - apple/iphone/15: 5 * 100 = 500", basket.Items[0].String())

	// оформленный заказ не считается корзиной
	_, err = SetOrderStatus(DB, basket.ID, models.StatusNew)
	require.NoError(t, err)
	fresh, err := AddToBasket(DB, f.user.ID, f.contact.ID, f.info.ID, 1)
	require.NoError(t, err)
	assert.NotEqual(t, basket.ID, fresh.OrderID)

	_, err = AddToBasket(DB, f.user.ID, f.contact.ID, 404, 1)
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = AddToBasket(DB, f.user.ID, f.contact.ID, f.info.ID, 0)
	require.ErrorIs(t, err, models.ErrConstraintViolation)
}

func TestAddToBasket_Concurrent(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)

	const buyers = 8
	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := AddToBasket(DB, f.user.ID, f.contact.ID, f.info.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.EqualValues(t, 1, count(t, DB, &models.Order{}))
	require.EqualValues(t, 1, count(t, DB, &models.OrderItem{}))

	var item models.OrderItem
	require.NoError(t, DB.First(&item).Error)
	assert.Equal(t, buyers, item.Quantity)
	assert.Equal(t, buyers*f.info.Price, item.TotalAmount)
}

func TestDeleteOrder_Cascades(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	order := f.newOrder(t, DB, models.StatusNew)
	require.NoError(t, AddOrderItem(DB, &models.OrderItem{OrderID: order.ID, ProductInfoID: f.info.ID, Quantity: 1, Price: 1}))

	require.NoError(t, DeleteOrder(DB, order.ID))
	assert.EqualValues(t, 0, count(t, DB, &models.OrderItem{}))
	assert.EqualValues(t, 1, count(t, DB, &models.ProductInfo{}))

	_, err := GetOrder(DB, order.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestOrderTotal(t *testing.T) {
	DB := newTestDB(t)
	f := newFixture(t, DB)
	order := f.newOrder(t, DB, models.StatusNew)
	second := models.ProductInfo{ShopID: f.shop.ID, ProductID: f.product.ID, Model: "x", Article: 2, Price: 70}
	require.NoError(t, CreateProductInfo(DB, &second))

	require.NoError(t, AddOrderItem(DB, &models.OrderItem{OrderID: order.ID, ProductInfoID: f.info.ID, Quantity: 3, Price: 100}))
	require.NoError(t, AddOrderItem(DB, &models.OrderItem{OrderID: order.ID, ProductInfoID: second.ID, Quantity: 2, Price: 70}))

	total, err := OrderTotal(DB, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 440, total)
}
