package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvStoreBackend = "STORE_BACKEND"
	EnvNotifier     = "NOTIFIER"
	EnvRoomsSeed    = "ROOMS_SEED"
	EnvRoomLockTTL  = "ROOM_LOCK_TTL"

	EnvBookingsTopic        = "KAFKA_BOOKINGS_TOPIC"
	EnvBookingsDLQTopic     = "KAFKA_BOOKINGS_DLQ_TOPIC"
	EnvNotificationsGroupID = "KAFKA_NOTIFICATIONS_GROUP_ID"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
