package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tradeterm/internal/alpaca"
	"tradeterm/internal/api"
	"tradeterm/internal/broker/ibgw"
	"tradeterm/internal/config"
	"tradeterm/internal/engine"
	"tradeterm/internal/logger"
	"tradeterm/internal/script"
	"tradeterm/internal/store"
	"tradeterm/internal/stream"
	"tradeterm/internal/tickers"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	log.Info("Terminal starting.")

	db, err := store.Open(cfg.Database.DSN, log)
	if err != nil {
		log.WithError(err).Fatal("Database connection failed.")
	}
	defer db.Close()

	gateway := ibgw.New(cfg.Gateway.BaseUrl, cfg.Gateway.Account, cfg.Gateway.Token, log)
	manualFeed := alpaca.New(cfg.Alpaca.BaseUrl, cfg.Alpaca.ApiKey, cfg.Alpaca.Secret, log)

	eng, err := engine.New(cfg, gateway, db.Exits(), db.AutoOrders(), manualFeed, log)
	if err != nil {
		log.WithError(err).Fatal("Engine initialization failed.")
	}

	hub := stream.NewHub(log)
	tickerSvc := tickers.NewService(cfg.Tickers.Path, log)
	scriptRunner := script.NewRunner(cfg.Script.Dir, cfg.Script.Target, log)

	server := api.NewServer(cfg, eng, gateway, db.Exits(), db.Alarms(), manualFeed, tickerSvc, scriptRunner, hub, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.Run(ctx); err != nil {
			log.WithError(err).Fatal("HTTP server exited with error.")
		}
	}()
	<-sigCh

	cancel()

	log.Info("Terminal stopped.")
}
