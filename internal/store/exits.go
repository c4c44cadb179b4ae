package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradeterm/internal/logger"
	"tradeterm/internal/models"
)

// ExitStore persists per-symbol exit requests.
type ExitStore struct {
	db  *gorm.DB
	log *logger.Logger
}

// List returns all exit requests ordered by symbol.
func (s *ExitStore) List(ctx context.Context) ([]models.ExitFlag, error) {
	var records []ExitRequestRecord
	if err := s.db.WithContext(ctx).Order("symbol asc").Find(&records).Error; err != nil {
		return nil, err
	}

	flags := make([]models.ExitFlag, 0, len(records))
	for _, rec := range records {
		flags = append(flags, rec.toModel())
	}
	return flags, nil
}

// GetBySymbol returns the symbol's exit flag, or (nil, nil) when no row exists.
func (s *ExitStore) GetBySymbol(ctx context.Context, symbol string) (*models.ExitFlag, error) {
	var rec ExitRequestRecord
	err := s.db.WithContext(ctx).First(&rec, "symbol = ?", strings.ToUpper(symbol)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	flag := rec.toModel()
	return &flag, nil
}

// Upsert creates or updates the symbol's exit flag and returns the stored row.
func (s *ExitStore) Upsert(ctx context.Context, symbol string, requested bool) (models.ExitFlag, error) {
	rec := ExitRequestRecord{
		Symbol:    strings.ToUpper(symbol),
		Requested: requested,
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"exitrequested", "updated"}),
	}).Create(&rec).Error
	if err != nil {
		return models.ExitFlag{}, err
	}

	s.log.WithComponent("store").WithFields(map[string]interface{}{
		"symbol":    rec.Symbol,
		"requested": requested,
	}).Info("Exit request stored.")
	return rec.toModel(), nil
}

// Delete removes the symbol's exit flag. Returns false when no row existed.
func (s *ExitStore) Delete(ctx context.Context, symbol string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&ExitRequestRecord{}, "symbol = ?", strings.ToUpper(symbol))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
