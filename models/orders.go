package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// OrderStatus - статус заказа
type OrderStatus string

const (
	StatusBasket    OrderStatus = "basket" // корзина, заказ еще не оформлен
	StatusNew       OrderStatus = "new"
	StatusConfirmed OrderStatus = "confirmed"
	StatusAssembled OrderStatus = "assembled"
	StatusSent      OrderStatus = "sent"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

// OrderStatuses - все допустимые статусы в порядке прохождения заказа
var OrderStatuses = []OrderStatus{
	StatusBasket,
	StatusNew,
	StatusConfirmed,
	StatusAssembled,
	StatusSent,
	StatusDelivered,
	StatusCanceled,
}

func (s OrderStatus) Valid() bool {
	return lo.Contains(OrderStatuses, s)
}

// ParseOrderStatus возвращает ErrInvalidEnumValue для неизвестного статуса
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", &ValidationError{Entity: "Order", Field: "Status", Reason: fmt.Sprintf("unknown status %q", s), Kind: ErrInvalidEnumValue}
	}
	return status, nil
}

// Order - заказ пользователя. Dt выставляется при создании и больше не меняется.
type Order struct {
	ID        uint        `gorm:"primaryKey"`
	UID       uuid.UUID   `gorm:"column:uid;size:36;not null;uniqueIndex;<-:create"`
	UserID    uint        `gorm:"not null;index"`
	User      *User       `gorm:"constraint:OnDelete:CASCADE"`
	ContactID uint        `gorm:"not null;index"`
	Contact   *Contact    `gorm:"constraint:OnDelete:CASCADE"`
	Dt        time.Time   `gorm:"not null;autoCreateTime;<-:create"`
	Status    OrderStatus `gorm:"size:14;not null;check:status IN ('basket','new','confirmed','assembled','sent','delivered','canceled')"`
	Items     []OrderItem `gorm:"-"`
}

func (Order) TableName() string {
	return "order"
}

func (o *Order) Validate() error {
	if o.UserID == 0 {
		return required("Order", "User")
	}
	if o.ContactID == 0 {
		return required("Order", "Contact")
	}
	if _, err := ParseOrderStatus(string(o.Status)); err != nil {
		return err
	}
	return nil
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	return o.Validate()
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.UID == uuid.Nil {
		o.UID = uuid.New()
	}
	return nil
}

func (o *Order) String() string {
	return fmt.Sprintf("%s - %s", o.User, o.Dt.Format(time.DateTime))
}

// OrderItem - позиция заказа. TotalAmount пересчитывается при каждом сохранении.
type OrderItem struct {
	ID            uint         `gorm:"primaryKey"`
	OrderID       uint         `gorm:"not null;uniqueIndex:unique_order_item,priority:1"`
	Order         *Order       `gorm:"constraint:OnDelete:CASCADE"`
	ProductInfoID uint         `gorm:"not null;uniqueIndex:unique_order_item,priority:2;index"`
	ProductInfo   *ProductInfo `gorm:"constraint:OnDelete:CASCADE"`
	Quantity      int          `gorm:"not null;check:quantity >= 0"`
	Price         int          `gorm:"not null;check:price >= 0"`
	TotalAmount   int          `gorm:"not null;check:total_amount = quantity * price"`
}

func (OrderItem) TableName() string {
	return "order_item"
}

// NewOrderItem создает позицию со значениями по умолчанию: 1 шт. по цене 1
func NewOrderItem(orderID, productInfoID uint) *OrderItem {
	return &OrderItem{OrderID: orderID, ProductInfoID: productInfoID, Quantity: 1, Price: 1}
}

func (i *OrderItem) Validate() error {
	switch {
	case i.OrderID == 0:
		return required("OrderItem", "Order")
	case i.ProductInfoID == 0:
		return required("OrderItem", "ProductInfo")
	case i.Quantity < 0:
		return invalid("OrderItem", "Quantity", "must not be negative")
	case i.Price < 0:
		return invalid("OrderItem", "Price", "must not be negative")
	}
	return nil
}

// Recalculate выставляет TotalAmount = Quantity * Price
func (i *OrderItem) Recalculate() {
	i.TotalAmount = i.Quantity * i.Price
}

// BeforeSave выполняется внутри транзакции записи, поэтому
// переданное вызывающим значение TotalAmount всегда перезаписывается.
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	if err := i.Validate(); err != nil {
		return err
	}
	i.Recalculate()
	return nil
}

func (i *OrderItem) String() string {
	var model string
	if i.ProductInfo != nil {
		model = i.ProductInfo.Model
	}
	return fmt.Sprintf("№%d - %s: %d * %d = %d", i.OrderID, model, i.Quantity, i.Price, i.TotalAmount)
}
