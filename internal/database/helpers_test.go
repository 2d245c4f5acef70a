package db

import (
	"testing"

	"shop_backend/internal/config"
	"shop_backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB открывает чистую базу SQLite в памяти с включенными внешними ключами
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	DB, err := Connect(config.DBConfig{
		Driver:       "sqlite",
		DBName:       "file::memory:",
		LogLevel:     "silent",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(DB))
	t.Cleanup(func() { _ = Close(DB) })
	return DB
}

type fixture struct {
	user     models.User
	contact  models.Contact
	shop     *models.Shop
	category models.Category
	product  models.Product
	info     models.ProductInfo
}

func newFixture(t *testing.T, DB *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{
		user:     models.User{Username: "ivan"},
		shop:     models.NewShop("Связной"),
		category: models.Category{Name: "Смартфоны"},
	}
	require.NoError(t, DB.Create(&f.user).Error)
	f.contact = models.Contact{UserID: f.user.ID, City: "Москва"}
	require.NoError(t, DB.Create(&f.contact).Error)
	require.NoError(t, CreateShop(DB, f.shop))
	require.NoError(t, CreateCategory(DB, &f.category))
	f.product = models.Product{Name: "iPhone 15", CategoryID: f.category.ID}
	require.NoError(t, CreateProduct(DB, &f.product))
	f.info = models.ProductInfo{ShopID: f.shop.ID, ProductID: f.product.ID, Model: "apple/iphone/15", Article: 1, Quantity: 10, Price: 100, PriceRRC: 120}
	require.NoError(t, CreateProductInfo(DB, &f.info))
	return f
}

func (f *fixture) newOrder(t *testing.T, DB *gorm.DB, status models.OrderStatus) *models.Order {
	t.Helper()
	order := &models.Order{UserID: f.user.ID, ContactID: f.contact.ID, Status: status}
	require.NoError(t, CreateOrder(DB, order))
	return order
}

func count(t *testing.T, DB *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, DB.Model(model).Count(&n).Error)
	return n
}
