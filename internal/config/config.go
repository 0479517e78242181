package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Драйверы хранилища
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
)

// CredentialsEnvVar — переменная окружения с JSON учётных данных хранилища.
// Имеет приоритет над локальным файлом.
const CredentialsEnvVar = "STORE_CREDENTIALS_JSON"

// Config хранит все настройки приложения
type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	Media       MediaConfig
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Leaderboard LeaderboardConfig

	// Credentials разрешаются один раз при загрузке и дальше не меняются
	Credentials StoreCredentials `mapstructure:"-"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int      `mapstructure:"read_timeout"`
	WriteTimeout int      `mapstructure:"write_timeout"`
	GinMode      string   `mapstructure:"gin_mode"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// StoreConfig выбирает хранилище документов
type StoreConfig struct {
	// Driver: "mongo" (по умолчанию) или "postgres"
	Driver string
	// CredentialsFile: локальный файл учётных данных, если переменная окружения не задана
	CredentialsFile string `mapstructure:"credentials_file"`
	// OpTimeout: таймаут одной операции с хранилищем в секундах
	OpTimeout int `mapstructure:"op_timeout"`
}

// StoreCredentials — учётные данные хранилища документов
type StoreCredentials struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
	// Source: откуда были получены данные (env или путь к файлу)
	Source string `json:"-"`
}

// PostgresConfig содержит настройки подключения к PostgreSQL
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis.
// Redis опционален: без адреса блокировки и rate limiting отключаются.
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт).
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// Enabled сообщает, указан ли хотя бы один адрес Redis
func (r RedisConfig) Enabled() bool {
	return len(r.Addrs) > 0 || r.Addr != ""
}

// MediaConfig содержит настройки медиа-хостинга (Cloudinary)
type MediaConfig struct {
	CloudName     string `mapstructure:"cloud_name"`
	APIKey        string `mapstructure:"api_key"`
	APISecret     string `mapstructure:"api_secret"`
	Folder        string
	AvatarMaxSide int `mapstructure:"avatar_max_side"`
}

// Enabled сообщает, заданы ли учётные данные медиа-хостинга
func (m MediaConfig) Enabled() bool {
	return m.CloudName != "" && m.APIKey != "" && m.APISecret != ""
}

// RateLimitConfig содержит настройки ограничения частоты запросов
type RateLimitConfig struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

// LeaderboardConfig содержит настройки лидерборда
type LeaderboardConfig struct {
	DefaultSize       int    `mapstructure:"default_size"`
	MaxSize           int    `mapstructure:"max_size"`
	DefaultProfilePic string `mapstructure:"default_profile_pic"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *PostgresConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL для golang-migrate
func (d *PostgresConfig) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 30)
	vip.SetDefault("server.gin_mode", "debug")

	vip.SetDefault("store.driver", StoreDriverMongo)
	vip.SetDefault("store.credentials_file", "serviceAccountKey.json")
	vip.SetDefault("store.op_timeout", 10)

	vip.SetDefault("postgres.port", "5432")
	vip.SetDefault("postgres.sslmode", "disable")

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("media.folder", "quiz_portal_profiles")
	vip.SetDefault("media.avatar_max_side", 512)

	vip.SetDefault("rate_limit.max_requests", 30)
	vip.SetDefault("rate_limit.window", time.Minute)

	vip.SetDefault("leaderboard.default_size", 100)
	vip.SetDefault("leaderboard.max_size", 100)
	vip.SetDefault("leaderboard.default_profile_pic", "https://i.stack.imgur.com/34AD2.jpg")
}

// Load загружает конфигурацию из файла, .env и переменных окружения
func Load(configPath string) (*Config, error) {
	return LoadWithDriver(configPath, "")
}

// LoadWithDriver загружает конфигурацию, принудительно выбирая драйвер хранилища.
// Пустой driver оставляет значение из конфигурации.
func LoadWithDriver(configPath, driver string) (*Config, error) {
	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Предупреждение: не удалось прочитать .env: %v", err)
	}

	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния
	setDefaults(vip)

	// Привязка для Server
	vip.BindEnv("server.port", "PORT")
	vip.BindEnv("server.gin_mode", "GIN_MODE")
	vip.BindEnv("server.cors_origins", "CORS_ORIGINS")

	// Привязка для Store
	vip.BindEnv("store.driver", "STORE_DRIVER")
	vip.BindEnv("store.credentials_file", "STORE_CREDENTIALS_FILE")

	// Привязка для секции Postgres
	vip.BindEnv("postgres.host", "DATABASE_HOST")
	vip.BindEnv("postgres.port", "DATABASE_PORT")
	vip.BindEnv("postgres.user", "DATABASE_USER")
	vip.BindEnv("postgres.password", "DATABASE_PASSWORD")
	vip.BindEnv("postgres.dbname", "DATABASE_DBNAME")
	vip.BindEnv("postgres.sslmode", "DATABASE_SSLMODE")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для медиа-хостинга
	vip.BindEnv("media.cloud_name", "CLOUDINARY_CLOUD_NAME")
	vip.BindEnv("media.api_key", "CLOUDINARY_API_KEY")
	vip.BindEnv("media.api_secret", "CLOUDINARY_API_SECRET")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файла может не быть: значения придут из окружения и умолчаний
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if driver != "" {
		cfg.Store.Driver = driver
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Store.Driver == StoreDriverMongo {
		creds, err := ResolveCredentials(os.Getenv(CredentialsEnvVar), cfg.Store.CredentialsFile)
		if err != nil {
			return nil, err
		}
		cfg.Credentials = creds
	}

	if cfg.Server.GinMode != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Store Driver: %s", cfg.Store.Driver)
		log.Printf("Store Credentials Source: %s", cfg.Credentials.Source)
		log.Printf("Postgres Host: %s", cfg.Postgres.Host)
		log.Printf("Redis Enabled: %t (mode: %s)", cfg.Redis.Enabled(), cfg.Redis.Mode)
		log.Printf("Media Enabled: %t (folder: %s)", cfg.Media.Enabled(), cfg.Media.Folder)
		log.Printf("Leaderboard Size: %d (max %d)", cfg.Leaderboard.DefaultSize, cfg.Leaderboard.MaxSize)
		log.Printf("-----------------------------------------")
	}

	return &cfg, nil
}

// validate проверяет обязательные параметры
func (cfg *Config) validate() error {
	switch cfg.Store.Driver {
	case StoreDriverMongo:
	case StoreDriverPostgres:
		if cfg.Postgres.Host == "" || cfg.Postgres.DBName == "" || cfg.Postgres.User == "" {
			return fmt.Errorf("postgres configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	default:
		return fmt.Errorf("unsupported store driver %q (expected %q or %q)", cfg.Store.Driver, StoreDriverMongo, StoreDriverPostgres)
	}

	if cfg.Leaderboard.DefaultSize <= 0 || cfg.Leaderboard.MaxSize <= 0 {
		return fmt.Errorf("leaderboard sizes must be positive")
	}
	if cfg.Leaderboard.DefaultSize > cfg.Leaderboard.MaxSize {
		return fmt.Errorf("leaderboard.default_size (%d) exceeds leaderboard.max_size (%d)",
			cfg.Leaderboard.DefaultSize, cfg.Leaderboard.MaxSize)
	}

	if !cfg.Media.Enabled() {
		log.Println("Warning: Cloudinary credentials are not set, profile image upload will fail.")
	}
	return nil
}

// ResolveCredentials определяет учётные данные хранилища.
// Порядок: JSON из переменной окружения, затем локальный файл.
// Если нет ни того, ни другого, возвращается ошибка.
func ResolveCredentials(envJSON, filePath string) (StoreCredentials, error) {
	if envJSON != "" {
		creds, err := parseCredentials([]byte(envJSON))
		if err != nil {
			return StoreCredentials{}, fmt.Errorf("invalid %s: %w", CredentialsEnvVar, err)
		}
		creds.Source = "env:" + CredentialsEnvVar
		return creds, nil
	}

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			creds, err := parseCredentials(data)
			if err != nil {
				return StoreCredentials{}, fmt.Errorf("invalid credentials file %s: %w", filePath, err)
			}
			creds.Source = "file:" + filePath
			return creds, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return StoreCredentials{}, fmt.Errorf("failed to read credentials file %s: %w", filePath, err)
		}
	}

	return StoreCredentials{}, fmt.Errorf("store credentials not found: set %s or provide credentials file %q", CredentialsEnvVar, filePath)
}

func parseCredentials(data []byte) (StoreCredentials, error) {
	var creds StoreCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return StoreCredentials{}, err
	}
	if creds.URI == "" {
		return StoreCredentials{}, fmt.Errorf("field \"uri\" is required")
	}
	if creds.Database == "" {
		return StoreCredentials{}, fmt.Errorf("field \"database\" is required")
	}
	return creds, nil
}
