package db

import (
	"fmt"

	"shop_backend/models"

	"github.com/samber/mo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter ограничивает выборку товаров и предложений.
// Пустые опции не фильтруют.
type ProductFilter struct {
	Category mo.Option[uint]
	Shop     mo.Option[uint]
}

// ---------------------------- магазины ----------------------------

func CreateShop(DB *gorm.DB, shop *models.Shop) error {
	return insert(DB, shop)
}

func GetShop(DB *gorm.DB, id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := first(DB.Preload("User"), &shop, id); err != nil {
		return nil, err
	}
	return &shop, nil
}

func ListShops(DB *gorm.DB) ([]models.Shop, error) {
	var shops []models.Shop
	err := DB.Preload("User").Order("name DESC").Find(&shops).Error
	return shops, translate(err)
}

func UpdateShop(DB *gorm.DB, id uint, mutate func(*models.Shop)) (*models.Shop, error) {
	return update(DB, id, func(s *models.Shop) error {
		mutate(s)
		return nil
	})
}

// SetShopState открывает или закрывает магазин для заказов
func SetShopState(DB *gorm.DB, id uint, accepting bool) error {
	_, err := UpdateShop(DB, id, func(s *models.Shop) { s.State = accepting })
	return err
}

func DeleteShop(DB *gorm.DB, id uint) error {
	return remove(DB, &models.Shop{}, id)
}

// ---------------------------- категории ----------------------------

func CreateCategory(DB *gorm.DB, category *models.Category) error {
	return insert(DB, category)
}

func ListCategories(DB *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := DB.Order("name DESC").Find(&categories).Error
	return categories, translate(err)
}

// DeleteCategory удаляет категорию вместе с ее товарами и всем, что на них ссылается
func DeleteCategory(DB *gorm.DB, id uint) error {
	return remove(DB, &models.Category{}, id)
}

// LinkShop добавляет категорию в ассортимент магазина. Повторная связь не ошибка.
func LinkShop(DB *gorm.DB, categoryID, shopID uint) error {
	link := models.CategoryShop{CategoryID: categoryID, ShopID: shopID}
	err := DB.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
	return translate(err)
}

func UnlinkShop(DB *gorm.DB, categoryID, shopID uint) error {
	err := DB.Where("category_id = ? AND shop_id = ?", categoryID, shopID).
		Delete(&models.CategoryShop{}).Error
	return translate(err)
}

func ShopsOfCategory(DB *gorm.DB, categoryID uint) ([]models.Shop, error) {
	var shops []models.Shop
	err := DB.Joins("JOIN category_shop ON category_shop.shop_id = shop.id").
		Where("category_shop.category_id = ?", categoryID).
		Order("shop.name DESC").
		Find(&shops).Error
	return shops, translate(err)
}

func CategoriesOfShop(DB *gorm.DB, shopID uint) ([]models.Category, error) {
	var categories []models.Category
	err := DB.Joins("JOIN category_shop ON category_shop.category_id = category.id").
		Where("category_shop.shop_id = ?", shopID).
		Order("category.name DESC").
		Find(&categories).Error
	return categories, translate(err)
}

// ---------------------------- товары ----------------------------

func CreateProduct(DB *gorm.DB, product *models.Product) error {
	return insert(DB, product)
}

func GetProduct(DB *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := first(DB.Preload("Category"), &product, id); err != nil {
		return nil, err
	}
	return &product, nil
}

func ListProducts(DB *gorm.DB, filter ProductFilter) ([]models.Product, error) {
	var products []models.Product
	query := DB.Preload("Category").Order("name DESC")
	if id, ok := filter.Category.Get(); ok {
		query = query.Where("category_id = ?", id)
	}
	if id, ok := filter.Shop.Get(); ok {
		query = query.Where("id IN (?)", DB.Model(&models.ProductInfo{}).Select("product_id").Where("shop_id = ?", id))
	}
	err := query.Find(&products).Error
	return products, translate(err)
}

func DeleteProduct(DB *gorm.DB, id uint) error {
	return remove(DB, &models.Product{}, id)
}

// ---------------------------- предложения магазинов ----------------------------

func CreateProductInfo(DB *gorm.DB, info *models.ProductInfo) error {
	return insert(DB, info)
}

func GetProductInfo(DB *gorm.DB, id uint) (*models.ProductInfo, error) {
	var info models.ProductInfo
	if err := first(DB.Preload("Shop").Preload("Product.Category"), &info, id); err != nil {
		return nil, err
	}
	return &info, nil
}

func ListProductInfos(DB *gorm.DB, filter ProductFilter) ([]models.ProductInfo, error) {
	var infos []models.ProductInfo
	query := DB.Preload("Shop").Preload("Product.Category").Order("product_info.id ASC")
	if id, ok := filter.Shop.Get(); ok {
		query = query.Where("product_info.shop_id = ?", id)
	}
	if id, ok := filter.Category.Get(); ok {
		query = query.Joins("JOIN product ON product.id = product_info.product_id").
			Where("product.category_id = ?", id)
	}
	err := query.Find(&infos).Error
	return infos, translate(err)
}

func UpdateProductInfo(DB *gorm.DB, id uint, mutate func(*models.ProductInfo)) (*models.ProductInfo, error) {
	return update(DB, id, func(pi *models.ProductInfo) error {
		mutate(pi)
		return nil
	})
}

func DeleteProductInfo(DB *gorm.DB, id uint) error {
	return remove(DB, &models.ProductInfo{}, id)
}

// AddListing добавляет предложение, находя магазин и товар по названию
func AddListing(DB *gorm.DB, shopName, productName string, info *models.ProductInfo) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var shop models.Shop
		if err := tx.Where("name = ?", shopName).First(&shop).Error; err != nil {
			return fmt.Errorf("shop %q: %w", shopName, translate(err))
		}
		var product models.Product
		if err := tx.Where("name = ?", productName).First(&product).Error; err != nil {
			return fmt.Errorf("product %q: %w", productName, translate(err))
		}
		info.ShopID = shop.ID
		info.ProductID = product.ID
		return insert(tx, info)
	})
}

// ---------------------------- характеристики ----------------------------

func CreateParameter(DB *gorm.DB, parameter *models.Parameter) error {
	return insert(DB, parameter)
}

func ListParameters(DB *gorm.DB) ([]models.Parameter, error) {
	var parameters []models.Parameter
	err := DB.Order("name DESC").Find(&parameters).Error
	return parameters, translate(err)
}

// DeleteParameter удаляет характеристику вместе с ее значениями у всех предложений
func DeleteParameter(DB *gorm.DB, id uint) error {
	return remove(DB, &models.Parameter{}, id)
}

// SetProductParameter задает значение характеристики предложения.
// Повторная характеристика для того же предложения отклоняется базой.
func SetProductParameter(DB *gorm.DB, productInfoID, parameterID uint, value string) (*models.ProductParameter, error) {
	pp := &models.ProductParameter{ProductInfoID: productInfoID, ParameterID: parameterID, Value: value}
	if err := insert(DB, pp); err != nil {
		return nil, err
	}
	return pp, nil
}

func ProductParameters(DB *gorm.DB, productInfoID uint) ([]models.ProductParameter, error) {
	var params []models.ProductParameter
	err := DB.Preload("Parameter").
		Where("product_info_id = ?", productInfoID).
		Order("id ASC").
		Find(&params).Error
	return params, translate(err)
}
