package store

import (
	"time"

	"tradeterm/internal/models"
)

// ExitRequestRecord is one row of the exit_requests table. The symbol is the
// primary key; Requested is a standing permission consumed by the reconciler.
type ExitRequestRecord struct {
	Symbol    string    `gorm:"primaryKey;column:symbol"`
	Requested bool      `gorm:"column:exitrequested"`
	UpdatedAt time.Time `gorm:"column:updated"`
}

func (ExitRequestRecord) TableName() string { return "exit_requests" }

func (r ExitRequestRecord) toModel() models.ExitFlag {
	return models.ExitFlag{
		Symbol:    r.Symbol,
		Requested: r.Requested,
		UpdatedAt: r.UpdatedAt,
	}
}

// AutoOrderRecord maps the shared orders table written by the alarm producer.
// Only status transitions are written from this side.
type AutoOrderRecord struct {
	ID     int64   `gorm:"primaryKey;column:Id"`
	Symbol string  `gorm:"column:Symbol"`
	Time   string  `gorm:"column:Time"`
	Stop   float64 `gorm:"column:Stop"`
	Date   string  `gorm:"column:Date"`
	Status string  `gorm:"column:Status"`
}

func (AutoOrderRecord) TableName() string { return "orders" }

func (r AutoOrderRecord) toModel() models.AutoOrder {
	return models.AutoOrder{
		ID:     r.ID,
		Symbol: r.Symbol,
		Stop:   r.Stop,
		Status: r.Status,
	}
}

// AlarmRecord is one received alarm, kept for the terminal's recent-alarms view.
type AlarmRecord struct {
	ID     int64  `gorm:"primaryKey;autoIncrement;column:Id"`
	Symbol string `gorm:"column:Symbol"`
	Time   string `gorm:"column:Time"`
	Alarm  string `gorm:"column:Alarm"`
	Date   string `gorm:"column:Date"`
}

func (AlarmRecord) TableName() string { return "alarms" }
