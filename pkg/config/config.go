package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Supported persistent store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

// Supported photo storage drivers.
const (
	PhotoDriverLocal = "local"
	PhotoDriverMinio = "minio"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store    StoreConfig
	Database DatabaseConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Support  SupportConfig
	CORS     CORSConfig
	Log      LogConfig
	Welcome  WelcomeConfig
	Share    ShareConfig
	Photos   PhotoConfig
	Minio    MinioConfig
}

// StoreConfig selects the key-value backend holding the record collections.
type StoreConfig struct {
	Driver    string
	KeyPrefix string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// SupportConfig holds the shared support credential. When SecretHash is set
// it is a bcrypt hash and takes precedence over Secret.
type SupportConfig struct {
	Secret     string
	SecretHash string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// WelcomeConfig tunes the transient login banner.
type WelcomeConfig struct {
	DismissAfter time.Duration
}

// ShareConfig configures signed pass links.
type ShareConfig struct {
	PublicBaseURL string
	SigningSecret string
	LinkTTL       time.Duration
}

// PhotoConfig selects where uploaded student photos are kept.
type PhotoConfig struct {
	Driver       string
	StorageDir   string
	MaxSizeBytes int64
	AllowedMIMEs []string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		Driver:    strings.ToLower(v.GetString("STORE_DRIVER")),
		KeyPrefix: v.GetString("STORE_KEY_PREFIX"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.SQLite = SQLiteConfig{Path: v.GetString("SQLITE_PATH")}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.Support = SupportConfig{
		Secret:     v.GetString("SUPPORT_SECRET"),
		SecretHash: v.GetString("SUPPORT_SECRET_HASH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Welcome = WelcomeConfig{
		DismissAfter: parseDuration(v.GetString("WELCOME_DISMISS_AFTER"), 4*time.Second),
	}

	cfg.Share = ShareConfig{
		PublicBaseURL: strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		SigningSecret: v.GetString("SHARE_SIGNING_SECRET"),
		LinkTTL:       parseDuration(v.GetString("SHARE_LINK_TTL"), 7*24*time.Hour),
	}

	maxPhotoSize := v.GetInt64("PHOTOS_MAX_FILE_SIZE")
	if maxPhotoSize <= 0 {
		maxPhotoSize = 5 * 1024 * 1024
	}
	cfg.Photos = PhotoConfig{
		Driver:       strings.ToLower(v.GetString("PHOTOS_DRIVER")),
		StorageDir:   v.GetString("PHOTOS_STORAGE_DIR"),
		MaxSizeBytes: maxPhotoSize,
		AllowedMIMEs: splitAndTrim(v.GetString("PHOTOS_ALLOWED_MIME_TYPES")),
	}

	cfg.Minio = MinioConfig{
		Endpoint:  v.GetString("MINIO_ENDPOINT"),
		AccessKey: v.GetString("MINIO_ACCESS_KEY"),
		SecretKey: v.GetString("MINIO_SECRET_KEY"),
		Bucket:    v.GetString("MINIO_BUCKET"),
		UseSSL:    v.GetBool("MINIO_USE_SSL"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_DRIVER", StoreDriverSQLite)
	v.SetDefault("STORE_KEY_PREFIX", "")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_pass")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("SQLITE_PATH", "./data/school_pass.db")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "school-pass")

	v.SetDefault("SUPPORT_SECRET", "03137799104")
	v.SetDefault("SUPPORT_SECRET_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("WELCOME_DISMISS_AFTER", "4s")

	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("SHARE_SIGNING_SECRET", "dev_share_secret")
	v.SetDefault("SHARE_LINK_TTL", "168h")

	v.SetDefault("PHOTOS_DRIVER", PhotoDriverLocal)
	v.SetDefault("PHOTOS_STORAGE_DIR", "./photos")
	v.SetDefault("PHOTOS_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("PHOTOS_ALLOWED_MIME_TYPES", "image/jpeg,image/png,image/webp")

	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "school-pass-photos")
	v.SetDefault("MINIO_USE_SSL", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
