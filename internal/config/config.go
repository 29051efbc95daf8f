package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultInvokeTimeout = 30 * time.Second
	defaultInvokeRate    = 20
	defaultInvokeBurst   = 40
	defaultSalesPageSize = 10
)

type Config struct {
	AppEnv        string
	BackendURL    string
	BackendToken  string
	InvokeTimeout time.Duration
	InvokeRate    float64
	InvokeBurst   int
	// SaleCompensate reverses already committed sale lines when a later line fails.
	SaleCompensate bool
	SalesPageSize  int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         os.Getenv("APP_ENV"),
		BackendURL:     os.Getenv("BACKEND_URL"),
		BackendToken:   os.Getenv("BACKEND_TOKEN"),
		InvokeTimeout:  durationEnv("INVOKE_TIMEOUT", defaultInvokeTimeout),
		InvokeRate:     floatEnv("INVOKE_RATE", defaultInvokeRate),
		InvokeBurst:    intEnv("INVOKE_BURST", defaultInvokeBurst),
		SaleCompensate: boolEnv("SALE_COMPENSATE", false),
		SalesPageSize:  intEnv("SALES_PAGE_SIZE", defaultSalesPageSize),
	}

	if cfg.BackendURL == "" {
		log.Fatal("BACKEND_URL not set in environment")
	}

	return cfg
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func floatEnv(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		log.Printf("invalid %s=%q, using %v", key, v, def)
		return def
	}
	return f
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func boolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}
