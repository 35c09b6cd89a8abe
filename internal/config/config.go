package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	pkgcfg "github.com/Skotchmaster/biblion/pkg/config"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	CookieSecure     bool

	CSRFEnabled bool
	CORSOrigins []string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PaymentDelay time.Duration

	ReaderSamplesDir   string
	ReaderFetchTimeout time.Duration

	AdminEmail    string
	AdminPassword string
}

// LoadDotenv reads the optional .env file. A missing file only logs.
func LoadDotenv(path string) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("notice: %s not loaded: %v; using process environment", path, err)
	}
}

func Load() Config {
	return Config{
		ServiceName: pkgcfg.EnvDefault("SERVICE_NAME", "biblion"),
		ServerPort:  pkgcfg.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    pkgcfg.EnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret:  []byte(os.Getenv("JWT_SECRET")),
		JWTRefreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),
		AccessTTL:        pkgcfg.EnvDurationDefault("ACCESS_TTL", 15*time.Minute),
		RefreshTTL:       pkgcfg.EnvDurationDefault("REFRESH_TTL", 7*24*time.Hour),
		CookieSecure:     pkgcfg.EnvBoolDefault("COOKIE_SECURE", true),

		CSRFEnabled: pkgcfg.EnvBoolDefault("CSRF_ENABLED", true),
		CORSOrigins: pkgcfg.CSV(os.Getenv("CORS_ORIGINS")),

		KafkaBrokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    pkgcfg.EnvDefault("ES_INDEX", "books"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       pkgcfg.EnvIntDefault("REDIS_DB", 0),

		PaymentDelay: pkgcfg.EnvDurationDefault("CHECKOUT_PAYMENT_DELAY", 2*time.Second),

		ReaderSamplesDir:   pkgcfg.EnvDefault("READER_SAMPLES_DIR", "public/books"),
		ReaderFetchTimeout: pkgcfg.EnvDurationDefault("READER_FETCH_TIMEOUT", 10*time.Second),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// Validate checks what serve needs; migrate and reindex only need the database.
func (c Config) Validate() error {
	if err := pkgcfg.RequireNonEmpty(map[string]string{
		"DATABASE_URL":       c.DatabaseURL,
		"JWT_SECRET":         string(c.JWTAccessSecret),
		"JWT_REFRESH_SECRET": string(c.JWTRefreshSecret),
	}); err != nil {
		return err
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= c.AccessTTL {
		return fmt.Errorf("REFRESH_TTL must exceed ACCESS_TTL")
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
