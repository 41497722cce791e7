package main

// Store backends selectable with ALERTS_STORE.
const (
	storeMemory   = "memory"
	storeCache    = "cache"
	storeRedis    = "redis"
	storePostgres = "postgres"
	storeMongo    = "mongo"
	storeNATS     = "nats"
	storeSession  = "session"
	storeCookie   = "cookie"
)

// Relays selectable with ALERTS_RELAYS.
const (
	relayNATS  = "nats"
	relayEmail = "email"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"alertd"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT"`

	Store         string   `env:"ALERTS_STORE" envDefault:"cache"`
	Scope         string   `env:"ALERTS_SCOPE" envDefault:"session"` // session, user or header
	Relays        []string `env:"ALERTS_RELAYS" envSeparator:","`
	CacheCapacity int      `env:"ALERTS_CACHE_CAPACITY" envDefault:"10000"`

	NATSURL           string `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	NATSSubjectPrefix string `env:"ALERTS_NATS_SUBJECT_PREFIX" envDefault:"alerts"`
	MongoDatabase     string `env:"MONGODB_DATABASE" envDefault:"alerts"`
	EmailSubject      string `env:"ALERTS_EMAIL_SUBJECT" envDefault:"You have new notifications"`
	EmailMinPriority  int    `env:"ALERTS_EMAIL_MIN_PRIORITY" envDefault:"0"`
}
