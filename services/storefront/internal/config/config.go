package config

import (
	"os"
	"time"

	pkgcfg "github.com/Skotchmaster/telco_shop/pkg/config"
)

const (
	OverrideStoreDB    = "db"
	OverrideStoreRedis = "redis"
)

type Config struct {
	ServiceName string
	LogLevel    string
	ServerPort  int

	DatabaseURL string

	JWTAccessSecret []byte
	SecureCookies   bool

	// KafkaBrokers may be empty, which turns event publishing off.
	KafkaBrokers []string

	ESURL                    string
	ESUser                   string
	ESPassword               string
	TechnicalResourcesIndex  string
	PremiseValidationTimeout time.Duration

	OverrideStore string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ConsumptionConfigPath string
	Language              string
}

func Load() *Config {
	cfg := &Config{
		ServiceName: pkgcfg.EnvDefault("SERVICE_NAME", "storefront"),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),
		ServerPort:  pkgcfg.EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),
		SecureCookies:   pkgcfg.EnvBoolDefault("SECURE_COOKIES", false),

		KafkaBrokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:                    os.Getenv("ES_URL"),
		ESUser:                   os.Getenv("ES_USER"),
		ESPassword:               os.Getenv("ES_PASSWORD"),
		TechnicalResourcesIndex:  pkgcfg.EnvDefault("ES_TECHNICAL_RESOURCES_INDEX", "technical_resources"),
		PremiseValidationTimeout: pkgcfg.EnvDurationDefault("PREMISE_VALIDATION_TIMEOUT", 5*time.Second),

		OverrideStore: pkgcfg.EnvDefault("OVERRIDE_STORE", OverrideStoreDB),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       pkgcfg.EnvIntDefault("REDIS_DB", 0),

		ConsumptionConfigPath: os.Getenv("CONSUMPTION_CONFIG"),
		Language:              pkgcfg.EnvDefault("LANGUAGE", "en"),
	}

	pkgcfg.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	pkgcfg.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	pkgcfg.MustNonEmpty(cfg.ESURL, "ES_URL")
	pkgcfg.MustOneOf(cfg.OverrideStore, "OVERRIDE_STORE", OverrideStoreDB, OverrideStoreRedis)
	if cfg.OverrideStore == OverrideStoreRedis {
		pkgcfg.MustNonEmpty(cfg.RedisAddr, "REDIS_ADDR")
	}

	return cfg
}
