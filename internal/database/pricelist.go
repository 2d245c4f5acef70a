package db

import (
	"fmt"
	"strconv"
	"strings"

	"shop_backend/models"

	"gorm.io/gorm"
)

// PriceRow - строка прайс-листа для редактирования
type PriceRow struct {
	ID       uint
	Price    int
	Quantity int
}

// ParsePriceSheet разбирает таблицу вида "ID | Товар | Модель | Цена | Кол-во".
// Строки до заголовка, разделители и пустые строки пропускаются.
func ParsePriceSheet(text string) ([]PriceRow, error) {
	lines := strings.Split(text, "\n")
	startParsing := false
	var rows []PriceRow

	for n, line := range lines {
		// Начать парсинг после заголовка таблицы
		if strings.HasPrefix(line, "ID |") {
			startParsing = true
			continue
		}
		if !startParsing || strings.HasPrefix(line, "---") || strings.TrimSpace(line) == "" {
			continue
		}

		// "|" внутри ячеек прайс-лист не содержит, лишняя колонка означает порчу строки
		parts := strings.Split(line, "|")
		if len(parts) != 5 {
			return nil, fmt.Errorf("line %d: expected 5 columns, got %d", n+1, len(parts))
		}

		id, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad ID: %w", n+1, err)
		}
		price, err := strconv.Atoi(strings.TrimSpace(parts[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad price for ID %d: %w", n+1, id, err)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(parts[4]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad quantity for ID %d: %w", n+1, id, err)
		}
		rows = append(rows, PriceRow{ID: uint(id), Price: price, Quantity: qty})
	}

	if !startParsing {
		return nil, fmt.Errorf("price sheet header not found")
	}
	return rows, nil
}

// ApplyPriceSheet обновляет цены и остатки по отредактированному прайс-листу.
// Все изменения применяются в одной транзакции: ошибка в любой строке
// откатывает весь лист. Возвращает число измененных предложений.
func ApplyPriceSheet(DB *gorm.DB, text string) (int, error) {
	rows, err := ParsePriceSheet(text)
	if err != nil {
		return 0, err
	}

	updated := 0
	err = DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var info models.ProductInfo
			if err := tx.First(&info, row.ID).Error; err != nil {
				return fmt.Errorf("product info %d: %w", row.ID, translate(err))
			}

			// Проверяем, изменились ли данные
			if info.Price == row.Price && info.Quantity == row.Quantity {
				continue
			}
			info.Price = row.Price
			info.Quantity = row.Quantity
			if err := tx.Save(&info).Error; err != nil {
				return fmt.Errorf("product info %d: %w", row.ID, translate(err))
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
