package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradeterm/internal/broker"
	"tradeterm/internal/config"
	"tradeterm/internal/logger"
	"tradeterm/internal/models"
)

// fakeGateway is an in-memory broker.Gateway that records every submission.
type fakeGateway struct {
	positions []models.Position
	orders    []models.OpenOrder
	summary   models.AccountSummary
	trades    []models.Execution
	quotes    map[string]models.Quote

	placed    []placedCall
	cancelled []int64

	nextOrderID int64

	positionsErr error
	ordersErr    error
	summaryErr   error
	tradesErr    error
	quoteErr     error
	placeErr      error
	placeErrOn    int // fail the nth PlaceOrder call (1-based); 0 fails all when placeErr is set
	placeAttempts int
}

type placedCall struct {
	ticket   broker.OrderTicket
	transmit bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		quotes:      map[string]models.Quote{},
		nextOrderID: 100,
	}
}

func (f *fakeGateway) GetPositions(ctx context.Context) ([]models.Position, error) {
	return f.positions, f.positionsErr
}

func (f *fakeGateway) GetOpenOrders(ctx context.Context) ([]models.OpenOrder, error) {
	return f.orders, f.ordersErr
}

func (f *fakeGateway) GetAccountSummary(ctx context.Context) (models.AccountSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeGateway) GetTrades(ctx context.Context) ([]models.Execution, error) {
	return f.trades, f.tradesErr
}

func (f *fakeGateway) GetQuote(ctx context.Context, symbol string) (models.Quote, error) {
	if f.quoteErr != nil {
		return models.Quote{}, f.quoteErr
	}
	quote, ok := f.quotes[symbol]
	if !ok {
		return models.Quote{}, errors.New("no quote")
	}
	return quote, nil
}

func (f *fakeGateway) PlaceOrder(ctx context.Context, ticket broker.OrderTicket, transmit bool) (int64, error) {
	f.placeAttempts++
	if f.placeErr != nil && (f.placeErrOn == 0 || f.placeErrOn == f.placeAttempts) {
		return 0, f.placeErr
	}
	f.placed = append(f.placed, placedCall{ticket: ticket, transmit: transmit})
	if ticket.OrderID != 0 {
		return ticket.OrderID, nil
	}
	f.nextOrderID++
	return f.nextOrderID, nil
}

func (f *fakeGateway) CancelOrder(ctx context.Context, orderID int64) error {
	f.cancelled = append(f.cancelled, orderID)
	return nil
}

// fakeExitStore is an in-memory ExitFlagStore.
type fakeExitStore struct {
	flags     map[string]*models.ExitFlag
	getErr    error
	deleteErr error
	deleted   []string
}

func newFakeExitStore() *fakeExitStore {
	return &fakeExitStore{flags: map[string]*models.ExitFlag{}}
}

func (f *fakeExitStore) GetBySymbol(ctx context.Context, symbol string) (*models.ExitFlag, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.flags[symbol], nil
}

func (f *fakeExitStore) Delete(ctx context.Context, symbol string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	f.deleted = append(f.deleted, symbol)
	if _, ok := f.flags[symbol]; !ok {
		return false, nil
	}
	delete(f.flags, symbol)
	return true, nil
}

type fakeAutoOrderStore struct {
	orders  []models.AutoOrder
	listErr error
	updated map[int64]string
}

func newFakeAutoOrderStore() *fakeAutoOrderStore {
	return &fakeAutoOrderStore{updated: map[int64]string{}}
}

func (f *fakeAutoOrderStore) ListActive(ctx context.Context) ([]models.AutoOrder, error) {
	return f.orders, f.listErr
}

func (f *fakeAutoOrderStore) UpdateStatus(ctx context.Context, orderID int64, status string) (bool, error) {
	for _, o := range f.orders {
		if o.ID == orderID {
			f.updated[orderID] = status
			return true, nil
		}
	}
	return false, nil
}

type fakeManualSource struct {
	orders  []models.ManualOrder
	listErr error
}

func (f *fakeManualSource) ListOpenOrders(ctx context.Context) ([]models.ManualOrder, error) {
	return f.orders, f.listErr
}

func testConfig() *config.Config {
	return &config.Config{
		Trading: config.TradingConfig{
			Risk:                     500,
			MaxEntryFrequencyMinutes: 30,
			Timezone:                 "UTC",
			SettleDelayMS:            0,
		},
	}
}

func newTestEngine(t *testing.T, gw *fakeGateway, exits *fakeExitStore) *Engine {
	t.Helper()

	eng, err := New(testConfig(), gw, exits, newFakeAutoOrderStore(), &fakeManualSource{}, logger.NewNop())
	if err != nil {
		t.Fatalf("engine setup failed: %v", err)
	}
	eng.now = func() time.Time {
		return time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	}
	return eng
}
