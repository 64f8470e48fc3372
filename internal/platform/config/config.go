package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string
	DBUrl      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	WooBaseURL        string
	WooConsumerKey    string
	WooConsumerSecret string
	WooTimeout        time.Duration

	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		APIPort:           getEnv("API_PORT", "8080"),
		JWTKey:            []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:            time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "user"),
		DBPassword:        getEnv("DB_PASSWORD", "password"),
		DBName:            getEnv("DB_NAME", "shopsync_db"),
		DBSslMode:         getEnv("DB_SSLMODE", "disable"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		WooBaseURL:        getEnv("WC_URL", "http://localhost:8081"),
		WooConsumerKey:    getEnv("WC_CONSUMER_KEY", ""),
		WooConsumerSecret: getEnv("WC_CONSUMER_SECRET", ""),
		WooTimeout:        time.Duration(getEnvAsInt("WC_TIMEOUT_SECONDS", 10)) * time.Second,

		LoginMaxAttempts:   getEnvAsInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginAttemptWindow: time.Duration(getEnvAsInt("LOGIN_ATTEMPT_WINDOW_SECONDS", 900)) * time.Second,
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode

	// URL form, used by golang-migrate.
	AppConfig.DBUrl = "postgres://" + url.UserPassword(AppConfig.DBUser, AppConfig.DBPassword).String() +
		"@" + AppConfig.DBHost + ":" + AppConfig.DBPort +
		"/" + AppConfig.DBName + "?sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
