package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	FrontendDir string // Built frontend to serve, empty disables static serving

	JWTSecret string // Secret key for JWT token signing
	JWTTTL    int    // JWT token expiration time in hours

	GeminiAPIKey     string // API key for the step generator
	GeminiModel      string // Model name, e.g. gemini-2.0-flash
	AITimeoutSeconds int    // Per-call timeout for step generation

	RateLimitRPS         float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst       int     // Burst size for rate limiting
	RateLimitAuthRPS     float64 // Rate limit for auth endpoints (stricter)
	RateLimitAuthBurst   int     // Burst size for auth endpoints
	RateLimitCreateRPS   float64 // Rate limit for task creation (it calls the generator)
	RateLimitCreateBurst int     // Burst size for task creation
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		FrontendDir: getEnv("FRONTEND_DIR", "frontend_dist"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    getEnvInt("JWT_TTL_HOURS", 24),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AITimeoutSeconds: getEnvInt("AI_TIMEOUT_SECONDS", 15),

		RateLimitRPS:         getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:       getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:     getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst:   getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		RateLimitCreateRPS:   getEnvFloat("RATE_LIMIT_CREATE_RPS", 2),
		RateLimitCreateBurst: getEnvInt("RATE_LIMIT_CREATE_BURST", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
