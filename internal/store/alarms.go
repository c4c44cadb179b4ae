package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"tradeterm/internal/logger"
)

// AlarmStore keeps the recent-alarms history shown in the terminal.
type AlarmStore struct {
	db  *gorm.DB
	log *logger.Logger
}

// Insert stores a received alarm and returns the row with its assigned id.
func (s *AlarmStore) Insert(ctx context.Context, symbol, timeOfDay, kind, date string) (AlarmRecord, error) {
	rec := AlarmRecord{
		Symbol: strings.ToUpper(symbol),
		Time:   timeOfDay,
		Alarm:  kind,
		Date:   date,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return AlarmRecord{}, err
	}

	s.log.WithComponent("store").WithFields(map[string]interface{}{
		"symbol": rec.Symbol,
		"alarm":  kind,
	}).Info("Alarm stored.")
	return rec, nil
}

// List returns the 50 most recent alarms, newest first.
func (s *AlarmStore) List(ctx context.Context) ([]AlarmRecord, error) {
	var records []AlarmRecord
	err := s.db.WithContext(ctx).
		Order(`"Date" desc, "Time" desc`).
		Limit(50).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
