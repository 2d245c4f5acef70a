package messages

import (
	"fmt"
	"strconv"
	"strings"

	"shop_backend/models"

	"github.com/samber/lo"
)

// Создает прайс-лист магазина для покупателя
func MakeMessagePriceList(shop *models.Shop, infos []models.ProductInfo) string {
	var message strings.Builder

	status := "принимает заказы"
	if !shop.State {
		status = "заказы не принимаются"
	}
	message.WriteString(fmt.Sprintf("%s (%s)\n\n", shop.Name, status))

	if len(infos) == 0 {
		message.WriteString("Нет доступных товаров")
		return message.String()
	}

	message.WriteString("Артикул | Товар | Модель | Цена | РРЦ | В наличии\n")
	message.WriteString("----------------------------------\n")
	for _, info := range infos {
		message.WriteString(fmt.Sprintf("%d | %s | %s | %d | %d | %d\n",
			info.Article,
			productName(info),
			info.Model,
			info.Price,
			info.PriceRRC,
			info.Quantity))
	}
	return message.String()
}

// (АДМИН) Создает прайс-лист для редактирования цен и остатков.
// Отредактированный текст разбирает db.ParsePriceSheet.
func MakePriceSheet(infos []models.ProductInfo) string {
	var message strings.Builder
	message.WriteString("Отредактируйте цену и количество и загрузите файл обратно.\n")

	if len(infos) == 0 {
		message.WriteString("Нет доступных предложений")
		return message.String()
	}

	message.WriteString("ID | Товар | Модель | Цена | Кол-во\n")
	message.WriteString("----------------------------------\n")
	for _, info := range infos {
		message.WriteString(fmt.Sprintf("%d | %s | %s | %d | %d\n",
			info.ID,
			sheetCell(productName(info)),
			sheetCell(info.Model),
			info.Price,
			info.Quantity))
	}
	return message.String()
}

// sheetCell убирает разделитель колонок из текста ячейки
func sheetCell(text string) string {
	return strings.ReplaceAll(text, "|", "/")
}

func productName(info models.ProductInfo) string {
	if info.Product == nil {
		return ""
	}
	return info.Product.Name
}

// (АДМИН) Парсинг нового предложения магазина.
// Первая строка: магазин | товар, вторая: пары "ключ: значение" через запятую.
func ParseNewListing(msg string) (info models.ProductInfo, shop, product string, err error) {
	lines := strings.Split(strings.TrimSpace(msg), "\n")

	if len(lines) < 2 {
		err = fmt.Errorf("expected at least 2 lines, got %d", len(lines))
		return
	}

	header := strings.Split(lines[0], "|")
	if len(header) != 2 {
		err = fmt.Errorf("header: expected 2 parts separated by '|', got %d", len(header))
		return
	}
	shop = strings.TrimSpace(header[0])
	product = strings.TrimSpace(header[1])

	numbers := map[string]*int{
		"артикул":    &info.Article,
		"количество": &info.Quantity,
		"цена":       &info.Price,
		"ррц":        &info.PriceRRC,
	}

	for _, pair := range strings.Split(lines[1], ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(kv) != 2 {
			continue // Пропускаем некорректные пары
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		value := strings.TrimSpace(kv[1])

		if key == "модель" {
			info.Model = value
			continue
		}
		dst, ok := numbers[key]
		if !ok {
			continue
		}
		n, parseErr := strconv.Atoi(value)
		if parseErr != nil {
			err = fmt.Errorf("%s: %w", key, parseErr)
			return
		}
		*dst = n
	}

	return
}

// Сводка по заказу: позиции и итоговая сумма
func MakeOrderSummary(order *models.Order) string {
	var message strings.Builder
	message.WriteString(fmt.Sprintf("Заказ №%d (%s) от %s\n", order.ID, order.Status, order.Dt.Format("02.01.2006 15:04")))
	message.WriteString(fmt.Sprintf("Номер для отслеживания: %s\n\n", order.UID))

	if len(order.Items) == 0 {
		message.WriteString("Заказ пуст")
		return message.String()
	}

	for _, item := range order.Items {
		message.WriteString(item.String())
		message.WriteString("\n")
	}
	total := lo.SumBy(order.Items, func(i models.OrderItem) int { return i.TotalAmount })
	message.WriteString(fmt.Sprintf("\nИтого: %d", total))
	return message.String()
}
