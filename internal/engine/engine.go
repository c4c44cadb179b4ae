package engine

import (
	"context"
	"fmt"
	"time"

	"tradeterm/internal/broker"
	"tradeterm/internal/config"
	"tradeterm/internal/logger"
	"tradeterm/internal/models"
)

// ExitFlagStore is the persisted exit-request table. GetBySymbol returns
// (nil, nil) when no row exists for the symbol.
type ExitFlagStore interface {
	GetBySymbol(ctx context.Context, symbol string) (*models.ExitFlag, error)
	Delete(ctx context.Context, symbol string) (bool, error)
}

// AutoOrderStore lists database-resident conditional orders.
type AutoOrderStore interface {
	ListActive(ctx context.Context) ([]models.AutoOrder, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (bool, error)
}

// ManualOrderSource is the external manual-order feed consumed by the
// pending-orders sweep.
type ManualOrderSource interface {
	ListOpenOrders(ctx context.Context) ([]models.ManualOrder, error)
}

// Engine is the decision and execution core. It holds no broker state of its
// own: every read consults the live gateway, every handle is passed in.
type Engine struct {
	cfg        *config.Config
	gw         broker.Gateway
	exits      ExitFlagStore
	autoOrders AutoOrderStore
	manual     ManualOrderSource
	log        *logger.Logger

	loc         *time.Location
	settleDelay time.Duration
	now         func() time.Time
}

func New(cfg *config.Config, gw broker.Gateway, exits ExitFlagStore, autoOrders AutoOrderStore, manual ManualOrderSource, log *logger.Logger) (*Engine, error) {
	loc, err := time.LoadLocation(cfg.Trading.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load trading timezone %q: %w", cfg.Trading.Timezone, err)
	}

	return &Engine{
		cfg:         cfg,
		gw:          gw,
		exits:       exits,
		autoOrders:  autoOrders,
		manual:      manual,
		log:         log,
		loc:         loc,
		settleDelay: cfg.Trading.SettleDelay(),
		now:         time.Now,
	}, nil
}

// settle pauses between dependent gateway submissions. The gateway acknowledges
// asynchronously; the parent of a bracket must be known to it before the child
// references it, so this delay is part of the submission protocol.
func (e *Engine) settle(ctx context.Context) error {
	if e.settleDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.settleDelay):
		return nil
	}
}
