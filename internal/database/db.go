package db

import (
	"fmt"

	"shop_backend/internal/config"
	"shop_backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Все таблицы схемы. AutoMigrate сам упорядочивает их по внешним ключам.
var schemaModels = []interface{}{
	&models.User{},
	&models.Contact{},
	&models.Shop{},
	&models.Category{},
	&models.CategoryShop{},
	&models.Product{},
	&models.ProductInfo{},
	&models.Parameter{},
	&models.ProductParameter{},
	&models.Order{},
	&models.OrderItem{},
}

func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if cfg.Driver == "sqlite" {
		// база в памяти существует только в рамках одного соединения
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate создает таблицы, внешние ключи с каскадным удалением,
// уникальные индексы и CHECK-ограничения
func Migrate(DB *gorm.DB) error {
	if err := DB.AutoMigrate(schemaModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func Close(DB *gorm.DB) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// insert пишет только собственные колонки записи, без вложенных связей
func insert(DB *gorm.DB, value interface{}) error {
	return translate(DB.Omit(clause.Associations).Create(value).Error)
}

// update загружает запись под блокировкой, применяет изменения и сохраняет
// ее целиком в одной транзакции, так что хуки BeforeSave видят актуальные поля
func update[T any](DB *gorm.DB, id uint, mutate func(*T) error) (*T, error) {
	var rec T
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&rec, id).Error; err != nil {
			return err
		}
		if err := mutate(&rec); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&rec).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

// forUpdate блокирует читаемые строки до конца транзакции.
// SQLite блокировок строк не знает, драйвер опускает FOR UPDATE.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// remove удаляет запись по ID, зависимые строки удаляет сама база
func remove(DB *gorm.DB, value interface{}, id uint) error {
	result := DB.Delete(value, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", models.ErrNotFound, id)
	}
	return nil
}

func first(DB *gorm.DB, dest interface{}, id uint) error {
	if err := DB.First(dest, id).Error; err != nil {
		return fmt.Errorf("%w: id %d", translate(err), id)
	}
	return nil
}
