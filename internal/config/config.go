package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yukikurage/project-management-api/internal/constants"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	SessionSecret  string
	JWTSecret      string
	JWTIssuer      string
	JWTExpireHours int

	GinMode  string
	HTTPAddr string
	LogLevel string
	LogFile  string

	OpenAIAPIKey string
}

var defaults = map[string]interface{}{
	"DB_DRIVER":        "mysql",
	"DB_HOST":          "localhost",
	"DB_PORT":          "3306",
	"DB_USER":          "projectuser",
	"DB_PASSWORD":      "projectpassword",
	"DB_NAME":          "project_management",
	"DB_PATH":          "project_management.db",
	"REDIS_ENABLED":    true,
	"REDIS_HOST":       "localhost",
	"REDIS_PORT":       "6379",
	"REDIS_PASSWORD":   "",
	"REDIS_DB":         0,
	"CACHE_TTL":        constants.DefaultCacheTTL,
	"SESSION_SECRET":   "default-secret-key-change-me",
	"JWT_SECRET":       "default-jwt-secret-change-me",
	"JWT_ISSUER":       "project-management-api",
	"JWT_EXPIRE_HOURS": 24,
	"GIN_MODE":         "debug",
	"HTTP_ADDR":        ":8080",
	"LOG_LEVEL":        "info",
	"LOG_FILE":         "",
	"OPENAI_API_KEY":   "",
}

// Load reads configuration from the environment, after loading an optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return &Config{
		DBDriver:       v.GetString("DB_DRIVER"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBPath:         v.GetString("DB_PATH"),
		RedisEnabled:   v.GetBool("REDIS_ENABLED"),
		RedisHost:      v.GetString("REDIS_HOST"),
		RedisPort:      v.GetString("REDIS_PORT"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		CacheTTL:       v.GetDuration("CACHE_TTL"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		JWTExpireHours: v.GetInt("JWT_EXPIRE_HOURS"),
		GinMode:        v.GetString("GIN_MODE"),
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFile:        v.GetString("LOG_FILE"),
		OpenAIAPIKey:   v.GetString("OPENAI_API_KEY"),
	}
}

// RedisAddr returns host:port, or "" when redis is disabled or has no host.
// An empty address makes the server run without the view cache and keep
// sessions in cookies.
func (c *Config) RedisAddr() string {
	if !c.RedisEnabled || c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
