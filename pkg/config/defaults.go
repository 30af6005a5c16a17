package config

import "time"

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"

	NotifierLog   = "log"
	NotifierKafka = "kafka"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roombook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultStoreBackend = StoreMemory
	DefaultNotifier     = NotifierLog
	DefaultRoomLockTTL  = 10 * time.Second

	DefaultBookingsTopic        = "bookings.events"
	DefaultBookingsDLQTopic     = "bookings.events.dlq"
	DefaultNotificationsGroupID = "booking-notifications"

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultRateLimitRequests = 60 // per client per window, 0 disables
	DefaultRateLimitWindow   = time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
