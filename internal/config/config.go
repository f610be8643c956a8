package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/possxc/ledger/pkg/logger"
)

const ConfigTagName = "env"
const ConfigDefaultTagName = "default"

var config *Config

// Config holds every env-derived value the binaries need. Only this
// struct should be consulted for configuration, no direct env reads
// elsewhere.
type Config struct {
	AppEnv              string `env:"APP_ENV" default:"dev"`
	AppName             string `env:"APP_NAME" default:"ledger"`
	AppDebug            bool   `env:"APP_DEBUG" default:"1"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR" validation:"mustExists"`

	StorePath string `env:"STORE_PATH" default:"possxc.db"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX"`

	PromNamespace string `env:"PROM_NAMESPACE"`

	ReminderQueueName         string        `env:"REMINDER_QUEUE_NAME" default:"payment-reminders"`
	ReminderConsumerGroup     string        `env:"REMINDER_CONSUMER_GROUP" default:"notifier"`
	ReminderConsumerName      string        `env:"REMINDER_CONSUMER_NAME"`
	ReminderMaxRetries        int           `env:"REMINDER_MAX_RETRIES" default:"3"`
	ReminderVisibilityTimeout time.Duration `env:"REMINDER_VISIBILITY_TIMEOUT" default:"30s"`
	ReminderPollInterval      time.Duration `env:"REMINDER_POLL_INTERVAL" default:"1s"`
	ReminderBatchSize         int64         `env:"REMINDER_BATCH_SIZE" default:"10"`
	ReminderQueueMaxLen       int64         `env:"REMINDER_QUEUE_MAX_LEN"`
	DueScanInterval           time.Duration `env:"DUE_SCAN_INTERVAL" default:"1h"`

	AlertProviderURL string        `env:"ALERT_PROVIDER_URL"`
	AlertTimeout     time.Duration `env:"ALERT_TIMEOUT" default:"5s"`
	AlertMaxRetries  int           `env:"ALERT_MAX_RETRIES" default:"3"`
	NotifierWorkers  int           `env:"NOTIFIER_WORKERS" default:"4"`

	LogLevel []string `env:"LOG_LEVEL"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		err = godotenv.Load(path)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration file "+path)
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.Wrap(err, "failed to map env variables to Configuration object")
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
