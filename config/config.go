package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JNU-econovation/EATceed-AI/models"
)

// Config collects everything read from the environment at startup. All
// external clients are constructed from it explicitly; there is no ambient
// package-level state.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	Redis RedisConfig

	OpenAIAPIKey   string
	OpenAIBaseURL  string
	ChatModel      string
	EmbeddingModel string

	VectorIndexHost string
	VectorAPIKey    string

	RateLimit    int
	PromptPath   string
	AnalysisHour int
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	// .env is optional; deployed environments inject real variables.
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},

		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:      getEnv("CHAT_MODEL", "gpt-4o"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),

		VectorIndexHost: os.Getenv("VECTOR_INDEX_HOST"),
		VectorAPIKey:    os.Getenv("VECTOR_API_KEY"),

		RateLimit:    getEnvInt("RATE_LIMIT", 3),
		PromptPath:   getEnv("PROMPT_PATH", "prompts"),
		AnalysisHour: getEnvInt("ANALYSIS_HOUR", 1),
	}
}

// ConnectDB opens the Postgres connection and migrates the schema.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Member{},
		&models.Food{},
		&models.Meal{},
		&models.MealFood{},
		&models.AnalysisStatus{},
		&models.EatHabits{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
