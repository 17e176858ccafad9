package config // package config loads application configuration from the environment

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// env reads straight from the process environment.  Values are looked up
// lazily, so a .env file loaded by Load is visible to every helper below.
var env = newEnv()

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env            string // application environment (dev, test, prod)
	Port           string // HTTP port to listen on
	LogLevel       string // logrus level name
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	DBMaxOpenConns int    // connection pool size
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	RabbitURL      string // broker URL; empty disables domain events
	EventLogPath   string // file the event consumer appends to
	Pricing        PricingConfig
	Booking        BookingConfig
}

// PricingConfig carries the knobs of the price engine that are not stored
// per package.
type PricingConfig struct {
	// FlightFallbackCents is the flat round-trip fare per person used for
	// packages that have no flights at all.
	FlightFallbackCents int64
}

// BookingConfig controls soft holds and the expiry sweeper.
type BookingConfig struct {
	HoldTTL       time.Duration
	SweepInterval time.Duration
	SweepBatch    int
}

// Load reads an optional .env file, then the environment.  Missing required
// variables stop the process with a fatal log message.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug("config: loaded .env")
	}
	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		DBUser:         must("DB_USER"),
		DBPass:         env.GetString("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         envStr("DB_PORT", "3306"),
		DBName:         must("DB_NAME"),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     envInt("BCRYPT_COST", 12),
		RabbitURL:      envStr("RABBITMQ_URL", env.GetString("AMQP_URL")),
		EventLogPath:   envStr("BOOKING_LOG_PATH", "logs/booking.log"),
		Pricing:        LoadPricingConfig(),
		Booking:        LoadBookingConfig(),
	}
}

func LoadPricingConfig() PricingConfig {
	return PricingConfig{
		FlightFallbackCents: int64(envInt("PRICING_FLIGHT_FALLBACK_CENTS", 12000)),
	}
}

func LoadBookingConfig() BookingConfig {
	c := BookingConfig{
		HoldTTL:       envDur("BOOKING_HOLD_TTL", 30*time.Minute),
		SweepInterval: envDur("BOOKING_SWEEP_INTERVAL", time.Minute),
		SweepBatch:    envInt("BOOKING_SWEEP_BATCH", 100),
	}
	if c.HoldTTL <= 0 {
		c.HoldTTL = 30 * time.Minute
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.SweepBatch < 1 {
		c.SweepBatch = 100
	}
	return c
}

// must retrieves the value of a required environment variable.
func must(key string) string {
	v := env.GetString(key)
	if v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := env.GetString(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(env.GetString(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := env.GetString(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	log.Warnf("config: invalid int for %s: %q, using %d", k, v, d)
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := env.GetString(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	log.Warnf("config: invalid duration for %s: %q, using %s", k, v, d)
	return d
}
