package db

import (
	"errors"
	"fmt"

	"shop_backend/models"

	"gorm.io/gorm"
)

type seedListing struct {
	shop    int
	product string
	model   string
	article int
	qty     int
	price   int
	rrc     int
	params  map[string]string
}

// SeedTestData заполняет базу демонстрационным каталогом.
// Если каталог уже заполнен, ничего не делает.
func SeedTestData(DB *gorm.DB) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Category
		err := tx.Where("name = ?", "Смартфоны").First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Фиксированные тестовые данные
		owners := []models.User{
			{Username: "svyaznoy", Email: "shop@svyaznoy.example"},
			{Username: "dns", Email: "shop@dns.example"},
			{Username: "buyer", Email: "buyer@example.com"},
		}
		for i := range owners {
			if err := insert(tx, &owners[i]); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
		}
		contact := models.Contact{UserID: owners[2].ID, City: "Москва", Street: "Тверская", House: "7", Phone: "+79990000000"}
		if err := insert(tx, &contact); err != nil {
			return fmt.Errorf("failed to create contact: %w", err)
		}

		site := "https://www.svyaznoy.ru"
		shops := []*models.Shop{models.NewShop("Связной"), models.NewShop("DNS")}
		shops[0].UserID, shops[0].URL = &owners[0].ID, &site
		shops[1].UserID = &owners[1].ID
		for _, shop := range shops {
			if err := insert(tx, shop); err != nil {
				return fmt.Errorf("failed to create shop: %w", err)
			}
		}

		catalog := map[string][]string{
			"Смартфоны": {"Apple iPhone 15 Pro", "Samsung Galaxy S23 Ultra", "Xiaomi Redmi Note 12"},
			"Ноутбуки":  {"Apple MacBook Air M1", "Lenovo ThinkPad X1 Carbon"},
			"Планшеты":  {"Apple iPad Pro 12.9"},
		}
		products := make(map[string]uint)
		for _, name := range []string{"Смартфоны", "Ноутбуки", "Планшеты"} {
			category := models.Category{Name: name}
			if err := insert(tx, &category); err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}
			for _, shop := range shops {
				if err := LinkShop(tx, category.ID, shop.ID); err != nil {
					return err
				}
			}
			for _, productName := range catalog[name] {
				product := models.Product{Name: productName, CategoryID: category.ID}
				if err := insert(tx, &product); err != nil {
					return fmt.Errorf("failed to create product: %w", err)
				}
				products[productName] = product.ID
			}
		}

		parameters := make(map[string]uint)
		for _, name := range []string{"Цвет", "Встроенная память (Гб)", "Диагональ (дюйм)"} {
			parameter := models.Parameter{Name: name}
			if err := insert(tx, &parameter); err != nil {
				return fmt.Errorf("failed to create parameter: %w", err)
			}
			parameters[name] = parameter.ID
		}

		listings := []seedListing{
			{0, "Apple iPhone 15 Pro", "apple/iphone/15-pro", 4216292, 14, 110000, 116990,
				map[string]string{"Цвет": "титановый", "Встроенная память (Гб)": "256", "Диагональ (дюйм)": "6.1"}},
			{1, "Apple iPhone 15 Pro", "apple/iphone/15-pro", 4216292, 3, 108500, 116990,
				map[string]string{"Цвет": "черный", "Встроенная память (Гб)": "256"}},
			{0, "Samsung Galaxy S23 Ultra", "samsung/galaxy/s23-ultra", 4672670, 9, 89000, 99990,
				map[string]string{"Цвет": "зеленый", "Встроенная память (Гб)": "512"}},
			{1, "Xiaomi Redmi Note 12", "xiaomi/redmi/note-12", 4371382, 40, 17000, 19990,
				map[string]string{"Цвет": "синий", "Встроенная память (Гб)": "128"}},
			{1, "Apple MacBook Air M1", "apple/macbook/air-m1", 4345711, 5, 75000, 84990,
				map[string]string{"Диагональ (дюйм)": "13.3"}},
			{0, "Lenovo ThinkPad X1 Carbon", "lenovo/thinkpad/x1-carbon", 4880213, 2, 150000, 169990, nil},
			{0, "Apple iPad Pro 12.9", "apple/ipad/pro-12.9", 4211309, 6, 120000, 129990,
				map[string]string{"Диагональ (дюйм)": "12.9"}},
		}
		for _, l := range listings {
			info := models.ProductInfo{
				ShopID:    shops[l.shop].ID,
				ProductID: products[l.product],
				Model:     l.model,
				Article:   l.article,
				Quantity:  l.qty,
				Price:     l.price,
				PriceRRC:  l.rrc,
			}
			if err := insert(tx, &info); err != nil {
				return fmt.Errorf("failed to create product info: %w", err)
			}
			for name, value := range l.params {
				if _, err := SetProductParameter(tx, info.ID, parameters[name], value); err != nil {
					return fmt.Errorf("failed to create product parameter: %w", err)
				}
			}
		}

		return nil
	})
}
