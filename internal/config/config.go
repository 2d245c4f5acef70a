package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DBConfig настройки подключения к базе
type DBConfig struct {
	Driver   string `yaml:"driver"` // postgres | mysql | sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"` // для sqlite - путь к файлу
	SSLMode  string `yaml:"sslmode"`
	LogLevel string `yaml:"log_level"` // silent | error | warn | info

	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

func Default() DBConfig {
	return DBConfig{
		Driver:          "postgres",
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		DBName:          "shop",
		SSLMode:         "disable",
		LogLevel:        "warn",
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
	}
}

// Load читает YAML-файл (если путь задан) поверх значений по умолчанию,
// затем применяет переменные окружения DB_*
func Load(path string) (DBConfig, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *DBConfig) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString("DB_DRIVER", &c.Driver)
	setString("DB_HOST", &c.Host)
	setString("DB_USER", &c.User)
	setString("DB_PASSWORD", &c.Password)
	setString("DB_NAME", &c.DBName)
	setString("DB_SSLMODE", &c.SSLMode)
	setString("DB_LOG_LEVEL", &c.LogLevel)

	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DB_PORT: %w", err)
		}
		c.Port = port
	}
	return nil
}

func (c DBConfig) Validate() error {
	switch c.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	switch c.LogLevel {
	case "", "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	if c.DBName == "" {
		return fmt.Errorf("database name is empty")
	}
	return nil
}

// DSN строка подключения для выбранного драйвера
func (c DBConfig) DSN() string {
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.DBName)
	case "sqlite":
		if strings.Contains(c.DBName, "?") {
			return c.DBName + "&_foreign_keys=on"
		}
		return c.DBName + "?_foreign_keys=on"
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
	}
}
