package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Параметры пула соединений с PostgreSQL
const (
	pgMaxOpenConns    = 25
	pgMaxIdleConns    = 10
	pgConnMaxLifetime = time.Hour
)

// NewPostgresDB открывает альтернативное хранилище документов на PostgreSQL
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := GetSQLDB(db)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(pgMaxOpenConns)
	sqlDB.SetMaxIdleConns(pgMaxIdleConns)
	sqlDB.SetConnMaxLifetime(pgConnMaxLifetime)

	return db, nil
}

// NewMigrator создает экземпляр golang-migrate поверх открытого соединения.
// migrationsDir — путь к каталогу с *.up.sql / *.down.sql.
func NewMigrator(sqlDB *sql.DB, migrationsDir string) (*migrateV4.Migrate, error) {
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("не удалось проверить подключение к БД перед миграцией: %w", err)
	}

	driver, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать драйвер postgres для migrate: %w", err)
	}

	m, err := migrateV4.NewWithDatabaseInstance("file://"+migrationsDir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать экземпляр migrate: %w", err)
	}
	return m, nil
}

// MigrateDB применяет все недостающие миграции при старте сервера
func MigrateDB(db *gorm.DB, migrationsDir string) error {
	sqlDB, err := GetSQLDB(db)
	if err != nil {
		return err
	}

	m, err := NewMigrator(sqlDB, migrationsDir)
	if err != nil {
		return err
	}

	log.Printf("[Migrate] Применяем миграции из %s...", migrationsDir)
	switch err := m.Up(); {
	case errors.Is(err, migrateV4.ErrNoChange):
		log.Println("[Migrate] Схема уже актуальна")
	case err != nil:
		return fmt.Errorf("ошибка применения миграций 'up': %w", err)
	default:
		log.Println("[Migrate] Миграции успешно применены")
	}
	return nil
}

// GetSQLDB возвращает базовый *sql.DB из *gorm.DB
func GetSQLDB(gormDB *gorm.DB) (*sql.DB, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB, nil
}
