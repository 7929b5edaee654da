package utils

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Debug         bool
	LogPath       string
	PublicBaseURL string
}

type DatabaseConfig struct {
	Driver   string // postgres | memory
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type StorageConfig struct {
	Driver      string // minio | local
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	UseSSL      bool
	PublicURL   string
	UploadDir   string
	TempDir     string
	MaxUploadMB int64
}

// ConnString returns DB_URL when set, otherwise builds a keyword/value DSN.
func (c DatabaseConfig) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("user=%s password=%s dbname=%s sslmode=disable host=%s port=%s",
		c.User, c.Password, c.Name, c.Host, c.Port)
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-review")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("MINIO_BUCKET", "posters")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("UPLOAD_DIR", "uploads/")
	v.SetDefault("UPLOAD_TMP_DIR", "")
	v.SetDefault("MAX_UPLOAD_MB", 5)

	// .env is optional, the environment alone is enough in containers
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:          v.GetString("APP_NAME"),
			Port:          v.GetString("PORT"),
			Debug:         v.GetBool("DEBUG"),
			LogPath:       v.GetString("LOG_PATH"),
			PublicBaseURL: v.GetString("PUBLIC_BASE_URL"),
		},
		Database: DatabaseConfig{
			Driver:   v.GetString("DB_DRIVER"),
			URL:      v.GetString("DB_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("APP_NAME"),
		},
		Storage: StorageConfig{
			Driver:      v.GetString("STORAGE_DRIVER"),
			Endpoint:    v.GetString("MINIO_ENDPOINT"),
			AccessKey:   v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:   v.GetString("MINIO_SECRET_KEY"),
			Bucket:      v.GetString("MINIO_BUCKET"),
			UseSSL:      v.GetBool("MINIO_USE_SSL"),
			PublicURL:   v.GetString("MINIO_PUBLIC_URL"),
			UploadDir:   v.GetString("UPLOAD_DIR"),
			TempDir:     v.GetString("UPLOAD_TMP_DIR"),
			MaxUploadMB: v.GetInt64("MAX_UPLOAD_MB"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}
