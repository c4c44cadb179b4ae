package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradeterm/internal/broker"
	"tradeterm/internal/config"
	"tradeterm/internal/engine"
	"tradeterm/internal/logger"
	"tradeterm/internal/models"
	"tradeterm/internal/script"
	"tradeterm/internal/store"
	"tradeterm/internal/stream"
	"tradeterm/internal/tickers"
)

// ExitFlagRepo is the exit-requests table as the API consumes it.
type ExitFlagRepo interface {
	List(ctx context.Context) ([]models.ExitFlag, error)
	Upsert(ctx context.Context, symbol string, requested bool) (models.ExitFlag, error)
	Delete(ctx context.Context, symbol string) (bool, error)
}

// AlarmRepo is the alarm history table as the API consumes it.
type AlarmRepo interface {
	Insert(ctx context.Context, symbol, timeOfDay, kind, date string) (store.AlarmRecord, error)
	List(ctx context.Context) ([]store.AlarmRecord, error)
}

// ManualOrderCanceller cancels orders on the manual feed.
type ManualOrderCanceller interface {
	CancelOrder(ctx context.Context, orderID string) error
}

// Server is the HTTP surface of the terminal. Every decision is delegated to
// the engine; handlers only translate between HTTP and engine results.
type Server struct {
	cfg     *config.Config
	eng     *engine.Engine
	gw      broker.Gateway
	exits   ExitFlagRepo
	alarms  AlarmRepo
	manual  ManualOrderCanceller
	tickers *tickers.Service
	script  *script.Runner
	hub     *stream.Hub
	log     *logger.Logger

	httpServer *http.Server
}

func NewServer(
	cfg *config.Config,
	eng *engine.Engine,
	gw broker.Gateway,
	exits ExitFlagRepo,
	alarms AlarmRepo,
	manual ManualOrderCanceller,
	tickerSvc *tickers.Service,
	scriptRunner *script.Runner,
	hub *stream.Hub,
	log *logger.Logger,
) *Server {
	return &Server{
		cfg:     cfg,
		eng:     eng,
		gw:      gw,
		exits:   exits,
		alarms:  alarms,
		manual:  manual,
		tickers: tickerSvc,
		script:  scriptRunner,
		hub:     hub,
		log:     log,
	}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		portfolio := api.Group("/portfolio")
		{
			portfolio.GET("/positions", s.getPositions)
			portfolio.GET("/orders", s.getOrders)
			portfolio.GET("/account-summary", s.getAccountSummary)
			portfolio.GET("/trades", s.getTrades)
			portfolio.GET("/open-risk", s.getOpenRisk)
			portfolio.POST("/entry", s.postEntry)
			portfolio.POST("/add", s.postAdd)
			portfolio.POST("/breakeven", s.postBreakeven)
		}

		pending := api.Group("/pending-orders")
		{
			pending.GET("", s.getPendingOrders)
			pending.DELETE("/manual/:id", s.cancelManualOrder)
			pending.POST("/auto/:id/deactivate", s.deactivateAutoOrder)
		}

		exits := api.Group("/exits")
		{
			exits.GET("", s.getExits)
			exits.PUT("", s.putExit)
			exits.DELETE("/:symbol", s.deleteExit)
		}

		api.GET("/alarms", s.getAlarms)
		api.POST("/alarms", s.postAlarm)

		api.GET("/tickers", s.getTickers)
		api.POST("/tickers", s.postTickers)

		api.POST("/script/run", s.runScript)

		api.GET("/livestream/latest", s.getLatestRows)
		api.PUT("/livestream/latest", s.putLatestRow)
		api.GET("/livestream/ws", s.livestreamWS)
	}

	return router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithComponent("api").WithFields(map[string]interface{}{
			"addr": s.cfg.Server.Addr,
		}).Info("HTTP server listening.")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
