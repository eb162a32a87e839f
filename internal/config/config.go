package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	MongoURI    string
	MongoDBName string

	SQLitePath  string
	PostgresDSN string

	RedisAddr      string
	KafkaBrokers   []string
	ClickHouseAddr string
	ClickHouseDB   string

	SnapshotTTL       time.Duration
	ReconcileInterval time.Duration
	ThinkingDelay     time.Duration

	HTTPPort string

	// LocalDeployment usa SQLite como store de documentos em vez de MongoDB.
	LocalDeployment bool
	// UseKafka publica eventos de integração num broker real; caso contrário
	// usa o bus em memória.
	UseKafka bool
	// AuditEnabled liga o registo de toggles em ClickHouse.
	AuditEnabled bool
}

func LoadConfig() *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")

	return &Config{
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:       getEnv("MONGO_DB", "eventbuddy"),
		SQLitePath:        getEnv("SQLITE_PATH", "./eventbuddy.db"),
		PostgresDSN:       getEnv("POSTGRES_DSN", ""),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:      kafkaBrokers,
		ClickHouseAddr:    getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDB:      getEnv("CLICKHOUSE_DB", "eventbuddy"),
		SnapshotTTL:       30 * time.Second,
		ReconcileInterval: 5 * time.Minute,
		ThinkingDelay:     800 * time.Millisecond,
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LocalDeployment:   getEnv("LOCAL_DEPLOYMENT", "") == "true",
		UseKafka:          getEnv("USE_KAFKA", "") == "true",
		AuditEnabled:      getEnv("AUDIT_ENABLED", "") == "true",
	}
}
