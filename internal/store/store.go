package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tradeterm/internal/logger"
)

// Store wraps the database handle and hands out the per-table repositories.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to Postgres and migrates the tables the terminal owns. The
// orders table is shared with the alarm producer and is never migrated here.
func Open(dsn string, log *logger.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&ExitRequestRecord{}, &AlarmRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	log.WithComponent("store").Info("Database connected.")
	return &Store{db: db, log: log}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Exits() *ExitStore {
	return &ExitStore{db: s.db, log: s.log}
}

func (s *Store) AutoOrders() *AutoOrderStore {
	return &AutoOrderStore{db: s.db, log: s.log}
}

func (s *Store) Alarms() *AlarmStore {
	return &AlarmStore{db: s.db, log: s.log}
}
