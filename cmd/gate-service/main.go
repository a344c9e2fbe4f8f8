package main

import (
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"

	"github.com/gatelogix/tos-gate-service/internal/config"
	"github.com/gatelogix/tos-gate-service/internal/correlator"
	"github.com/gatelogix/tos-gate-service/internal/delivery/httpapi"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/kafka"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/migrate"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/repository"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/printer"
	"github.com/gatelogix/tos-gate-service/internal/usecase/activity"
	"github.com/gatelogix/tos-gate-service/internal/usecase/anpr"
	"github.com/gatelogix/tos-gate-service/internal/usecase/gate"
	"github.com/gatelogix/tos-gate-service/internal/usecase/manualmode"
	"github.com/gatelogix/tos-gate-service/internal/usecase/order"
	"github.com/gatelogix/tos-gate-service/internal/weighstream"
	"github.com/joho/godotenv"
)

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	logger := newLogger(cfg.LogConfig)

	// Init database
	db := postgres.MustInitDB(cfg)
	if path := os.Getenv("GATE_MIGRATIONS_PATH"); path != "" {
		if err := migrate.RunMigrations(db, path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	gateMetrics := metrics.NewGateMetrics()

	// Repositories
	orderRepo := repository.NewDefaultDeliveryOrderRepository(db)
	activityRepo := repository.NewDefaultActivityRepository(db)
	detectionRepo := repository.NewDefaultDetectionRepository(db)
	gateRepo := repository.NewDefaultGateRepository(db)
	manualRepo := repository.NewDefaultManualModeRepository(db)
	refRepo := repository.NewDefaultReferenceRepository(db)

	// Broker and printing collaborators
	brokers := []string{net.JoinHostPort(cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewGatePublisher(brokers, cfg.KafkaService.Topic)
	defer publisher.Close()
	receiptPrinter := printer.NewClient(cfg.PrintingService)

	// Weight correlation: one fresh bridge client per session
	clientFactory := func(addr string) correlator.WeightSource {
		return weighstream.NewClient(weighstream.ClientConfig{
			Addr:        addr,
			Handshake:   cfg.WeightStream.Handshake,
			DialTimeout: cfg.WeightStream.DialTimeout,
		}, logger)
	}
	weightCorrelator := correlator.New(correlator.Config{
		Wait:   cfg.Correlator.Wait,
		ArmTTL: cfg.Correlator.ArmTTL,
	}, clientFactory, detectionRepo, logger)
	weightCorrelator.SetMetrics(gateMetrics)

	// Usecases
	orderUsecase := order.NewDefaultUsecase(orderRepo, detectionRepo, refRepo, gateMetrics, logger)
	activityUsecase := activity.NewDefaultUsecase(
		activityRepo, orderRepo, detectionRepo, gateRepo,
		orderUsecase, publisher, receiptPrinter, gateMetrics, logger)
	activityUsecase.TruckWindow = cfg.Correlator.TruckWindow
	anprUsecase := anpr.NewDefaultUsecase(
		detectionRepo, gateRepo, weightCorrelator, gateMetrics, logger, cfg.WeightStream.BridgePort)
	manualUsecase := manualmode.NewDefaultUsecase(manualRepo, detectionRepo, gateRepo, gateMetrics, logger)
	gateUsecase := gate.NewDefaultUsecase(gateRepo, weightCorrelator, gateMetrics, logger)

	// Live weight broadcast for gate terminal UIs
	weightServer := weighstream.NewServer(cfg.WeightStream.ListenAddr, logger)
	if err := weightServer.Start(); err != nil {
		log.Fatalf("failed to start weight stream server: %v", err)
	}
	defer weightServer.Stop()

	handler := &httpapi.Handler{
		Orders:     orderUsecase,
		Activities: activityUsecase,
		ANPR:       anprUsecase,
		ManualMode: manualUsecase,
		Gates:      gateUsecase,
		Weights:    weightServer,
		Log:        logger,
	}
	router := httpapi.NewRouter(cfg, handler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	logger.Info("gate service listening", "addr", addr, "env", cfg.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
