package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MauroGomes09/Unireserva/internal/app"
	"github.com/MauroGomes09/Unireserva/internal/config"
	"github.com/MauroGomes09/Unireserva/internal/controller/httpapi"
	"github.com/MauroGomes09/Unireserva/internal/controller/protocol"
	"github.com/MauroGomes09/Unireserva/internal/controller/telegram"
	"github.com/MauroGomes09/Unireserva/internal/repository"
	"github.com/MauroGomes09/Unireserva/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting unireserva",
		zap.String("environment", cfg.Environment),
		zap.String("snapshot_driver", cfg.SnapshotDriver),
		zap.Bool("tls", cfg.TLSEnabled()),
		zap.Bool("telegram", cfg.TelegramToken != ""))

	snapshots, closeSnapshots, err := app.OpenSnapshotter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open snapshot storage", zap.Error(err))
	}
	defer closeSnapshots()

	rooms, err := snapshots.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load reservations", zap.Error(err))
	}
	logger.Info("Reservations loaded", zap.Int("rooms", len(rooms)))

	metrics := app.NewPrometheusMetrics()
	bookingService := service.NewBookingService(
		repository.NewReservationStore(rooms),
		snapshots,
		metrics,
		logger.Named("booking"),
	)
	dispatcher := protocol.NewDispatcher(bookingService, logger.Named("protocol"))

	auditor := app.NewAuditor(bookingService, snapshots, cfg.AuditInterval, logger.Named("auditor"))
	auditor.Start(ctx)
	defer auditor.Stop()

	var wg sync.WaitGroup

	if cfg.TelegramToken != "" {
		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}
		botController := telegram.NewBotController(b, dispatcher, bookingService, logger)
		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot command menu not updated", zap.Error(err))
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			botController.Start(ctx)
		}()
	}

	server := httpapi.NewServer(dispatcher, httpapi.Options{
		Addr:           cfg.HTTPAddr,
		CertFile:       cfg.TLSCertFile,
		KeyFile:        cfg.TLSKeyFile,
		AllowedOrigins: cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Metrics:        metrics.Handler(),
	}, logger)

	if err := server.Run(ctx); err != nil {
		logger.Error("HTTP server stopped with error", zap.Error(err))
		stop()
	}

	wg.Wait()
	logger.Info("Unireserva stopped")
}
