package main

import (
	"context"
	"time"

	"roombook/internal/reservations/handler"
	"roombook/internal/reservations/notifier"
	"roombook/internal/reservations/repository"
	"roombook/internal/reservations/service"
	"roombook/internal/reservations/validator"
	"roombook/pkg/app"
	"roombook/pkg/clock"
	"roombook/pkg/config"
	"roombook/pkg/kafka"
	kafka_config "roombook/pkg/kafka/config"
	kafka_middleware "roombook/pkg/kafka/middleware"
)

const (
	ServiceName = "reservations"
	seedTimeout = 30 * time.Second
)

func main() {
	cfg := config.Load(ServiceName)
	if cfg.UsesMongo() {
		cfg.SetMongo()
	}

	cfg.Log.Info("Starting Reservations service")
	serverApp := app.NewApplication()
	reservations, rooms := initServices(cfg, serverApp)

	if err := seedRooms(cfg, rooms); err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Failed to seed rooms", "error", err)
	}

	serverApp.SetApp(cfg,
		handler.NewBookingHandler(reservations, cfg.Log),
		handler.NewRoomHandler(rooms, reservations, cfg.Log),
	)
	serverApp.OnShutdown(func(context.Context) { cfg.GracefulShutdown() })
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) (service.ReservationService, service.RoomService) {
	var (
		repo   repository.RoomRepository
		locker repository.RoomLocker
	)
	if cfg.UsesMongo() {
		repo = repository.NewMongoRoomRepository(cfg)
		locker = repository.NewMongoRoomLockRepository(cfg)
	} else {
		repo = repository.NewMemoryRoomRepository()
		locker = repository.NewMemoryRoomLocker()
	}

	clk := clock.NewSystemClock()
	reservations := service.NewReservationService(repo, locker, initNotifier(cfg, serverApp), clk, cfg)
	rooms := service.NewRoomService(repo, validator.NewRoomValidator(cfg.Log), clk, cfg)

	cfg.Log.Info("Reservation services initialized",
		"store_backend", cfg.StoreBackend,
		"notifier", cfg.Notifier,
	)
	return reservations, rooms
}

func initNotifier(cfg *config.Config, serverApp *app.Application) notifier.Notifier {
	if !cfg.UsesKafka() {
		return notifier.NewLogNotifier(cfg.Log)
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingsTopic, cfg.BookingsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(metrics.ProducerMiddleware())
	}

	serverApp.OnShutdown(func(context.Context) {
		metrics.Log(cfg.Log)
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	return notifier.NewKafkaNotifier(producer, ServiceName)
}

func seedRooms(cfg *config.Config, rooms service.RoomService) error {
	seed, err := config.ParseRoomsSeed(cfg.RoomsSeed)
	if err != nil || len(seed) == 0 {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	return rooms.Seed(ctx, seed)
}
