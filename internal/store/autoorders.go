package store

import (
	"context"

	"gorm.io/gorm"

	"tradeterm/internal/logger"
	"tradeterm/internal/models"
)

// AutoOrderStore reads the shared orders table and flips statuses. Rows are
// inserted by the alarm producer, never by the terminal.
type AutoOrderStore struct {
	db  *gorm.DB
	log *logger.Logger
}

// ListActive returns every order still waiting for activation, oldest first.
func (s *AutoOrderStore) ListActive(ctx context.Context) ([]models.AutoOrder, error) {
	var records []AutoOrderRecord
	err := s.db.WithContext(ctx).
		Where(`"Status" = ?`, "active").
		Order(`"Time" asc`).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	orders := make([]models.AutoOrder, 0, len(records))
	for _, rec := range records {
		orders = append(orders, rec.toModel())
	}
	return orders, nil
}

// UpdateStatus sets the order's status. Returns false when no row matched.
func (s *AutoOrderStore) UpdateStatus(ctx context.Context, orderID int64, status string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&AutoOrderRecord{}).
		Where(`"Id" = ?`, orderID).
		Update("Status", status)
	if res.Error != nil {
		return false, res.Error
	}

	if res.RowsAffected > 0 {
		s.log.WithComponent("store").WithFields(map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		}).Info("Auto order status updated.")
	}
	return res.RowsAffected > 0, nil
}
