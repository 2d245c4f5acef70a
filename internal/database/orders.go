package db

import (
	"errors"
	"fmt"

	"shop_backend/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func CreateOrder(DB *gorm.DB, order *models.Order) error {
	return insert(DB, order)
}

// GetOrder возвращает заказ вместе с позициями
func GetOrder(DB *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := first(DB.Preload("User").Preload("Contact"), &order, id); err != nil {
		return nil, err
	}
	return &order, loadItems(DB, &order)
}

func GetOrderByUID(DB *gorm.DB, uid uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := DB.Preload("User").Preload("Contact").Where("uid = ?", uid).First(&order).Error
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", translate(err), uid)
	}
	return &order, loadItems(DB, &order)
}

func loadItems(DB *gorm.DB, order *models.Order) error {
	err := DB.Preload("ProductInfo.Shop").Preload("ProductInfo.Product").
		Where("order_id = ?", order.ID).
		Order("id ASC").
		Find(&order.Items).Error
	return translate(err)
}

// ListOrders заказы пользователя, новые первыми
func ListOrders(DB *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := DB.Where("user_id = ?", userID).Order("dt DESC").Order("id DESC").Find(&orders).Error
	return orders, translate(err)
}

// SetOrderStatus переводит заказ в любой из допустимых статусов.
// Порядок переходов не проверяется.
func SetOrderStatus(DB *gorm.DB, id uint, status models.OrderStatus) (*models.Order, error) {
	if _, err := models.ParseOrderStatus(string(status)); err != nil {
		return nil, err
	}
	return update(DB, id, func(o *models.Order) error {
		o.Status = status
		return nil
	})
}

func DeleteOrder(DB *gorm.DB, id uint) error {
	return remove(DB, &models.Order{}, id)
}

// AddOrderItem добавляет позицию. TotalAmount вычисляется при записи.
// Вторая позиция для того же предложения в заказе отклоняется базой.
func AddOrderItem(DB *gorm.DB, item *models.OrderItem) error {
	return insert(DB, item)
}

// UpdateOrderItem меняет позицию и сохраняет ее целиком,
// TotalAmount пересчитывается в той же транзакции
func UpdateOrderItem(DB *gorm.DB, id uint, mutate func(*models.OrderItem)) (*models.OrderItem, error) {
	return update(DB, id, func(i *models.OrderItem) error {
		mutate(i)
		return nil
	})
}

func DeleteOrderItem(DB *gorm.DB, id uint) error {
	return remove(DB, &models.OrderItem{}, id)
}

// AddToBasket кладет товар в корзину пользователя. Корзина создается при
// необходимости. Повторная покупка увеличивает количество в существующей позиции.
func AddToBasket(DB *gorm.DB, userID, contactID, productInfoID uint, quantity int) (*models.OrderItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", models.ErrConstraintViolation)
	}

	var item models.OrderItem
	err := DB.Transaction(func(tx *gorm.DB) error {
		// блокировка пользователя упорядочивает параллельные покупки:
		// вторая транзакция увидит корзину и позицию, созданные первой
		var user models.User
		if err := forUpdate(tx).Find(&user, userID).Error; err != nil {
			return err
		}

		var basket models.Order
		err := forUpdate(tx).Where("user_id = ? AND status = ?", userID, models.StatusBasket).
			Order("id ASC").
			First(&basket).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			basket = models.Order{UserID: userID, ContactID: contactID, Status: models.StatusBasket}
			err = insert(tx, &basket)
		}
		if err != nil {
			return err
		}

		err = forUpdate(tx).Where("order_id = ? AND product_info_id = ?", basket.ID, productInfoID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += quantity
			return translate(tx.Omit(clause.Associations).Save(&item).Error)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		var info models.ProductInfo
		if err := tx.First(&info, productInfoID).Error; err != nil {
			return fmt.Errorf("product info %d: %w", productInfoID, translate(err))
		}
		item = models.OrderItem{OrderID: basket.ID, ProductInfoID: info.ID, Quantity: quantity, Price: info.Price}
		return insert(tx, &item)
	})
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// OrderTotal сумма всех позиций заказа
func OrderTotal(DB *gorm.DB, orderID uint) (int, error) {
	var items []models.OrderItem
	if err := DB.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return 0, translate(err)
	}
	return lo.SumBy(items, func(i models.OrderItem) int { return i.TotalAmount }), nil
}
