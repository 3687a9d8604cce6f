package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"UTC"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Backend struct {
		URL        string `env:"BACKEND_URL"`
		APIKey     string `env:"BACKEND_API_KEY"`
		ServiceKey string `env:"BACKEND_SERVICE_KEY"`
		TimeoutSec int    `env:"BACKEND_TIMEOUT_SECONDS" envDefault:"10"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"booking_web:booking_web"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		AmqpURI string `env:"RABBITMQ_URL"`

		AppointmentQueueName     string `env:"RABBITMQ_APPOINTMENT_QUEUE" envDefault:"clinic.slots-svc.appointment"`
		AppointmentQueueBind     string `env:"RABBITMQ_APPOINTMENT_QUEUE_BIND" envDefault:"clinic.slots-svc.appointment.*.*"`
		AppointmentQueueExchange string `env:"RABBITMQ_APPOINTMENT_QUEUE_EXCHANGE" envDefault:"clinic.events"`

		ScheduleRuleQueueName     string `env:"RABBITMQ_SCHEDULE_RULE_QUEUE" envDefault:"clinic.slots-svc.schedulerule"`
		ScheduleRuleQueueBind     string `env:"RABBITMQ_SCHEDULE_RULE_QUEUE_BIND" envDefault:"clinic.slots-svc.schedulerule.*.*"`
		ScheduleRuleQueueExchange string `env:"RABBITMQ_SCHEDULE_RULE_QUEUE_EXCHANGE" envDefault:"clinic.events"`

		BlockedIntervalQueueName     string `env:"RABBITMQ_BLOCKED_INTERVAL_QUEUE" envDefault:"clinic.slots-svc.blockedinterval"`
		BlockedIntervalQueueBind     string `env:"RABBITMQ_BLOCKED_INTERVAL_QUEUE_BIND" envDefault:"clinic.slots-svc.blockedinterval.*.*"`
		BlockedIntervalQueueExchange string `env:"RABBITMQ_BLOCKED_INTERVAL_QUEUE_EXCHANGE" envDefault:"clinic.events"`

		AllQueueName     string `env:"RABBITMQ_ALL_QUEUE" envDefault:"clinic.slots-svc._all_"`
		AllQueueBind     string `env:"RABBITMQ_ALL_QUEUE_BIND" envDefault:"clinic.slots-svc._all_.*.*"`
		AllQueueExchange string `env:"RABBITMQ_ALL_QUEUE_EXCHANGE" envDefault:"clinic.events"`
	}

	Cache struct {
		Enabled bool `env:"CACHE_ENABLED"`
		Size    int  `env:"CACHE_SLOTS_SIZE" envDefault:"1000"`
	}

	RateLimit struct {
		Enabled    bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
		WindowSec  int  `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
		MaxPerKey  int  `env:"RATE_LIMIT_MAX_PER_KEY" envDefault:"10"`
		MaxEntries int  `env:"RATE_LIMIT_MAX_ENTRIES" envDefault:"10000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// Cache invalidation arrives over RabbitMQ; without the listener
	// a warm cache would go stale, so the cache rides the same switch.
	if !cfg.RabbitMQ.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

// Location resolves the configured clinic timezone, falling back to
// UTC on an unknown name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSec) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSec) * time.Second
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
