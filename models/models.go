package models

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Shop - магазин. Владелец необязателен, при удалении пользователя магазин удаляется.
type Shop struct {
	ID     uint    `gorm:"primaryKey"`
	UserID *uint   `gorm:"uniqueIndex"`
	User   *User   `gorm:"constraint:OnDelete:CASCADE"`
	Name   string  `gorm:"size:50;not null"`
	URL    *string `gorm:"column:url;size:200"`
	State  bool    `gorm:"not null"` // принимает ли магазин заказы
}

func (Shop) TableName() string {
	return "shop"
}

// схемы, которые принимает поле url магазина
var urlSchemes = []string{"http", "https", "ftp", "ftps"}

// NewShop создает магазин, открытый для заказов
func NewShop(name string) *Shop {
	return &Shop{Name: name, State: true}
}

func (s *Shop) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return required("Shop", "Name")
	}
	if err := tooLong("Shop", "Name", s.Name, 50); err != nil {
		return err
	}
	if s.URL != nil {
		if err := tooLong("Shop", "URL", *s.URL, 200); err != nil {
			return err
		}
		u, err := url.Parse(*s.URL)
		if err != nil || !lo.Contains(urlSchemes, strings.ToLower(u.Scheme)) || u.Host == "" {
			return invalid("Shop", "URL", fmt.Sprintf("%q is not a valid url", *s.URL))
		}
	}
	return nil
}

func (s *Shop) BeforeSave(tx *gorm.DB) error {
	return s.Validate()
}

func (s *Shop) String() string {
	return fmt.Sprintf("%s - %s", s.Name, s.User)
}

// Category - категория товаров. Связана с магазинами через category_shop.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "category"
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return required("Category", "Name")
	}
	return tooLong("Category", "Name", c.Name, 50)
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	return c.Validate()
}

func (c *Category) String() string {
	if c == nil {
		return ""
	}
	return c.Name
}

// CategoryShop - таблица связи категорий и магазинов, без собственного ключа
type CategoryShop struct {
	CategoryID uint      `gorm:"primaryKey;autoIncrement:false"`
	Category   *Category `gorm:"constraint:OnDelete:CASCADE"`
	ShopID     uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Shop       *Shop     `gorm:"constraint:OnDelete:CASCADE"`
}

func (CategoryShop) TableName() string {
	return "category_shop"
}

// Product - товар каталога, имя уникально во всем каталоге
type Product struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"size:200;not null;uniqueIndex"`
	CategoryID uint      `gorm:"not null;index"`
	Category   *Category `gorm:"constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string {
	return "product"
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return required("Product", "Name")
	}
	if p.CategoryID == 0 {
		return required("Product", "Category")
	}
	return tooLong("Product", "Name", p.Name, 200)
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

func (p *Product) String() string {
	return fmt.Sprintf("%s - %s", p.Category, p.Name)
}

// ProductInfo - предложение товара конкретным магазином: артикул, остаток, цены.
// Пара (магазин, товар) может повторяться только с разными артикулами.
type ProductInfo struct {
	ID        uint     `gorm:"primaryKey"`
	ShopID    uint     `gorm:"not null;uniqueIndex:unique_product_info,priority:1"`
	Shop      *Shop    `gorm:"constraint:OnDelete:CASCADE"`
	ProductID uint     `gorm:"not null;uniqueIndex:unique_product_info,priority:2;index"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE"`
	Model     string   `gorm:"size:50;not null"`
	Article   int      `gorm:"not null;uniqueIndex:unique_product_info,priority:3;check:article > 0"`
	Quantity  int      `gorm:"not null;check:quantity >= 0"`
	Price     int      `gorm:"not null;check:price >= 0"`
	PriceRRC  int      `gorm:"column:price_rrc;not null;check:price_rrc >= 0"` // рекомендуемая розничная цена
}

func (ProductInfo) TableName() string {
	return "product_info"
}

func (pi *ProductInfo) Validate() error {
	switch {
	case pi.ShopID == 0:
		return required("ProductInfo", "Shop")
	case pi.ProductID == 0:
		return required("ProductInfo", "Product")
	case pi.Article <= 0:
		return invalid("ProductInfo", "Article", "must be positive")
	case pi.Quantity < 0:
		return invalid("ProductInfo", "Quantity", "must not be negative")
	case pi.Price < 0:
		return invalid("ProductInfo", "Price", "must not be negative")
	case pi.PriceRRC < 0:
		return invalid("ProductInfo", "PriceRRC", "must not be negative")
	}
	return tooLong("ProductInfo", "Model", pi.Model, 50)
}

func (pi *ProductInfo) BeforeSave(tx *gorm.DB) error {
	return pi.Validate()
}

func (pi *ProductInfo) String() string {
	var shop, product string
	if pi.Shop != nil {
		shop = pi.Shop.Name
	}
	if pi.Product != nil {
		product = pi.Product.Name
	}
	return fmt.Sprintf("%s - %s", shop, product)
}

// Parameter - название характеристики, например "Цвет". Имя не уникально.
type Parameter struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null"`
}

func (Parameter) TableName() string {
	return "parameter"
}

func (p *Parameter) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return required("Parameter", "Name")
	}
	return tooLong("Parameter", "Name", p.Name, 50)
}

func (p *Parameter) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

func (p *Parameter) String() string {
	return p.Name
}

// ProductParameter - значение характеристики для предложения магазина
type ProductParameter struct {
	ID            uint         `gorm:"primaryKey"`
	ProductInfoID uint         `gorm:"not null;uniqueIndex:unique_product_parameter,priority:1"`
	ProductInfo   *ProductInfo `gorm:"constraint:OnDelete:CASCADE"`
	ParameterID   uint         `gorm:"not null;uniqueIndex:unique_product_parameter,priority:2;index"`
	Parameter     *Parameter   `gorm:"constraint:OnDelete:CASCADE"`
	Value         string       `gorm:"size:50;not null"`
}

func (ProductParameter) TableName() string {
	return "product_parameter"
}

func (pp *ProductParameter) Validate() error {
	if pp.ProductInfoID == 0 {
		return required("ProductParameter", "ProductInfo")
	}
	if pp.ParameterID == 0 {
		return required("ProductParameter", "Parameter")
	}
	return tooLong("ProductParameter", "Value", pp.Value, 50)
}

func (pp *ProductParameter) BeforeSave(tx *gorm.DB) error {
	return pp.Validate()
}

func (pp *ProductParameter) String() string {
	var model, param string
	if pp.ProductInfo != nil {
		model = pp.ProductInfo.Model
	}
	if pp.Parameter != nil {
		param = pp.Parameter.Name
	}
	return fmt.Sprintf("%s - %s", model, param)
}
