package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type (
	APP struct {
		Name       string
		Host       string
		Port       string
		Env        string
		JWTSecret  string
		JWTAlg     string
		JWTExpire  int // minutes
		CORSOrigin []string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		PoolMax  int
	}
	Yandex struct {
		ClientID     string
		ClientSecret string
		RedirectURI  string
		AuthURL      string
		TokenURL     string
		UserInfoURL  string
		FrontendURL  string
		Scopes       []string
	}
	Audio struct {
		StorageDir   string
		MaxFileSize  int64
		AllowedTypes []string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App    APP
		DB     DB
		Yandex Yandex
		Audio  Audio
		MQ     MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return v
	}
	return def
}

func getEnvCSV(key string, def []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:       getEnv("SERVICE_NAME", "audiovault"),
		Host:       getEnv("SERVICE_HOST", ""),
		Port:       getEnv("SERVICE_PORT", "8000"),
		Env:        getEnv("SERVICE_ENV", ""),
		JWTSecret:  getEnv("SERVICE_JWT_SECRET", ""),
		JWTAlg:     getEnv("SERVICE_JWT_ALGORITHM", "HS256"),
		JWTExpire:  getEnvInt("SERVICE_JWT_EXPIRE_MINUTES", 30),
		CORSOrigin: getEnvCSV("CORS_ORIGINS", []string{"*"}),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		PoolMax:  getEnvInt("POSTGRES_POOL_MAX", 5),
	}
	yandex := Yandex{
		ClientID:     getEnv("YANDEX_CLIENT_ID", ""),
		ClientSecret: getEnv("YANDEX_CLIENT_SECRET", ""),
		RedirectURI:  getEnv("YANDEX_REDIRECT_URI", "http://localhost:8000/auth/yandex/callback"),
		AuthURL:      getEnv("YANDEX_AUTH_URL", "https://oauth.yandex.ru/authorize"),
		TokenURL:     getEnv("YANDEX_TOKEN_URL", "https://oauth.yandex.ru/token"),
		UserInfoURL:  getEnv("YANDEX_USERINFO_URL", "https://login.yandex.ru/info"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		Scopes:       getEnvCSV("YANDEX_SCOPES", []string{"login:email", "login:info"}),
	}
	audio := Audio{
		StorageDir:   getEnv("AUDIO_STORAGE_DIR", "static/audio_files"),
		MaxFileSize:  getEnvInt64("AUDIO_MAX_FILE_SIZE", 10<<20),
		AllowedTypes: getEnvCSV("AUDIO_ALLOWED_TYPES", []string{"audio/mpeg", "audio/wav"}),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}

	return Config{
		App:    app,
		DB:     db,
		Yandex: yandex,
		Audio:  audio,
		MQ:     mq,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?pool_max_conns=%d",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
		c.DB.PoolMax,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

// MQEnabled reports whether the event pipeline should be started at all.
// The service is fully functional without a broker.
func (c Config) MQEnabled() bool {
	return c.MQ.Host != "" && c.MQ.User != "" && c.MQ.AmqpPort != ""
}
