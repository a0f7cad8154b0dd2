package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Log         LogConfig
	Worker      WorkerConfig
	Recommender RecommenderConfig
	Model       ModelConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	RecommendationTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

// RecommenderConfig - настройки ядра рекомендаций
type RecommenderConfig struct {
	// DefaultDailyTimeLimitHours используется, если запрос не задал лимит
	DefaultDailyTimeLimitHours float64

	// MaxDays - верхняя граница числа дней маршрута
	MaxDays int
}

// ModelConfig - артефакт латентно-факторной модели и гиперпараметры
// офлайн-обучения
type ModelConfig struct {
	Path           string
	Factors        int
	Epochs         int
	LearningRate   float64
	Regularization float64
	Seed           int64
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env опционален: в контейнерах конфигурация приходит из окружения
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			RecommendationTTL: time.Duration(viper.GetInt("RECOMMENDATION_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
		Recommender: RecommenderConfig{
			DefaultDailyTimeLimitHours: viper.GetFloat64("RECOMMENDER_DAILY_TIME_LIMIT"),
			MaxDays:                    viper.GetInt("RECOMMENDER_MAX_DAYS"),
		},
		Model: ModelConfig{
			Path:           viper.GetString("MODEL_PATH"),
			Factors:        viper.GetInt("MODEL_FACTORS"),
			Epochs:         viper.GetInt("MODEL_EPOCHS"),
			LearningRate:   viper.GetFloat64("MODEL_LEARNING_RATE"),
			Regularization: viper.GetFloat64("MODEL_REGULARIZATION"),
			Seed:           viper.GetInt64("MODEL_SEED"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.RecommendationTTL == 0 {
		cfg.Cache.RecommendationTTL = 300 * time.Second
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "rating-ingest-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Recommender.DefaultDailyTimeLimitHours == 0 {
		cfg.Recommender.DefaultDailyTimeLimitHours = 8
	}
	if cfg.Recommender.MaxDays == 0 {
		cfg.Recommender.MaxDays = 30
	}
	if cfg.Model.Path == "" {
		cfg.Model.Path = "artifacts/cf_model.json"
	}
	if cfg.Model.Factors == 0 {
		cfg.Model.Factors = 50
	}
	if cfg.Model.Epochs == 0 {
		cfg.Model.Epochs = 20
	}
	if cfg.Model.LearningRate == 0 {
		cfg.Model.LearningRate = 0.005
	}
	if cfg.Model.Regularization == 0 {
		cfg.Model.Regularization = 1e-6
	}
	if cfg.Model.Seed == 0 {
		cfg.Model.Seed = 1
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
