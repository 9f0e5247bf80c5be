package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Safety   SafetyConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI string
}

type AIConfig struct {
	LLMProvider    string // "openai" or "ollama"
	LLMModel       string // e.g. "gpt-4o-mini", "llama3"
	OllamaBaseURL  string
	ModelTimeout   time.Duration
	TokenizerURL   string // kiwi-server style analyzer; empty disables morph features
	SignalCache    string // "memory" or "redis"
	SignalCacheTTL time.Duration
}

type SafetyConfig struct {
	Detector   string // "regex" or "morph"
	FailClosed bool   // detector-internal failure counts as a hit
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
			LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ModelTimeout:   getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
			TokenizerURL:   getEnv("TOKENIZER_URL", ""),
			SignalCache:    getEnv("SIGNAL_CACHE", "memory"),
			SignalCacheTTL: getEnvAsDuration("SIGNAL_CACHE_TTL", 10*time.Minute),
		},
		Safety: SafetyConfig{
			Detector:   getEnv("SAFETY_DETECTOR", "morph"),
			FailClosed: getEnvAsBool("SAFETY_FAIL_CLOSED", false),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
