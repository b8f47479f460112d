package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Tables struct {
	Schema       string
	Purchase     string
	PurchaseItem string
	Stock        string
	Expense      string
}

type Orders struct {
	BaseURL   string
	Token     string
	TTL       time.Duration
	Timeout   time.Duration
	IndexSize int
}

type Rates struct {
	URL           string
	Currency      string
	TTL           time.Duration
	Timeout       time.Duration
	BufferPercent float64
	DefaultRate   float64
	Average       string
	AverageWindow time.Duration
}

type Kafka struct {
	Brokers []string
	Topic   string
	Group   string
	Workers int
}

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

type Breaker struct {
	Threshold   uint32
	OpenTimeout time.Duration
	MaxHalfOpen uint32
}

type Retry struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Config struct {
	HTTPAddr string
	LogDev   bool

	Orders  Orders
	Rates   Rates
	Pg      Postgres
	Tables  Tables
	Kafka   Kafka
	Breaker Breaker
	Retry   Retry
}

// Load keeps the original API and fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr: envDefault("HTTP_ADDR", ":8081"),
		LogDev:   envBool("LOG_DEV", false),

		Orders: Orders{
			BaseURL:   strings.TrimRight(strings.TrimSpace(os.Getenv("ORDERS_API_URL")), "/"),
			Token:     strings.TrimSpace(os.Getenv("ORDERS_API_TOKEN")),
			TTL:       envDurationMS("ORDERS_TTL", 5*time.Minute),
			Timeout:   envDurationMS("ORDERS_TIMEOUT", 10*time.Second),
			IndexSize: envInt("ORDERS_INDEX_SIZE", 1000),
		},

		Rates: Rates{
			URL:           envDefault("RATES_URL", "https://www.cbr-xml-daily.ru/daily_json.js"),
			Currency:      strings.ToUpper(envDefault("RATES_CURRENCY", "TRY")),
			TTL:           envDurationMS("RATES_TTL", 30*time.Minute),
			Timeout:       envDurationMS("RATES_TIMEOUT", 10*time.Second),
			BufferPercent: envFloat64("RATES_BUFFER_PERCENT", 0.05),
			DefaultRate:   envFloat64("RATES_DEFAULT", 3.45),
			Average:       envDefault("RATES_AVERAGE", "current"),
			AverageWindow: envDurationMS("RATES_AVERAGE_WINDOW", 30*24*time.Hour),
		},

		Pg: Postgres{
			Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("PG_DB")),
			User:     strings.TrimSpace(os.Getenv("PG_USER")),
			Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
		},

		Tables: Tables{
			Schema:       envDefault("DB_SCHEMA", "public"),
			Purchase:     envDefault("TBL_PURCHASE", "purchases"),
			PurchaseItem: envDefault("TBL_PURCHASE_ITEM", "purchase_items"),
			Stock:        envDefault("TBL_STOCK", "products"),
			Expense:      envDefault("TBL_EXPENSE", "expenses"),
		},

		Kafka: kafkaFromEnv(),

		Breaker: Breaker{
			Threshold:   envUint32("BREAKER_THRESHOLD", 5),
			OpenTimeout: envDurationMS("BREAKER_OPENTIMEOUT", 30*time.Second),
			MaxHalfOpen: envUint32("BREAKER_MAXHALFOPEN", 1),
		},

		Retry: Retry{
			Attempts:     envInt("RETRY_ATTEMPTS", 3),
			Base:         envDurationMS("RETRY_BASE", 500*time.Millisecond),
			Max:          envDurationMS("RETRY_MAX", 5*time.Second),
			JitterFactor: envFloat64("RETRY_JITTERFACTOR", 0.3),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadKafka reads only the Kafka section, for tools that do not need the
// rest of the service configuration.
func LoadKafka() Kafka {
	_ = godotenv.Load("env/.env")
	return kafkaFromEnv()
}

func kafkaFromEnv() Kafka {
	return Kafka{
		Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
		Topic:   envDefault("KAFKA_TOPIC", "sync-requests"),
		Group:   envDefault("KAFKA_GROUP", "opsboard-sync"),
		Workers: envInt("KAFKA_WORKERS", 2),
	}
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"ORDERS_API_URL":   c.Orders.BaseURL,
		"ORDERS_API_TOKEN": c.Orders.Token,
		"RATES_URL":        c.Rates.URL,
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	if c.Orders.IndexSize <= 0 {
		log.Printf("ORDERS_INDEX_SIZE is %d, adjusting to 1", c.Orders.IndexSize)
	}
	if c.Rates.BufferPercent < 0 {
		log.Printf("RATES_BUFFER_PERCENT is %.3f, buffer will lower the rate", c.Rates.BufferPercent)
	}
	if c.Retry.Max < c.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", c.Retry.Max, c.Retry.Base)
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

// HasPostgres reports whether purchase persistence is configured.
func (c Config) HasPostgres() bool {
	return c.Pg.Host != "" && c.Pg.DB != ""
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %t: %v", k, v, def, err)
		return def
	}
	return b
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envUint32(k string, def uint32) uint32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return uint32(u)
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
