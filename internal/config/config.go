package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	RedisURL           string
	DataDir            string
	GroqAPIKey         string
	GroqModel          string
	GroqBaseURL        string
	Language           string
	MaxRecommendations int
	MinConfidence      float64
	NewsCacheTTL       time.Duration
	NewsHoursBack      int
	MinNewsCount       int
	FetchTimeout       time.Duration
	AITimeout          time.Duration
	AITemperature      float64
	AIMaxTokens        int
	CircuitFailLimit   int
	CircuitCooldown    time.Duration
	RateLimitPerMin    int
}

func Load() Config {
	return Config{
		Port:               getEnv("PORT", "8080"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		DataDir:            getEnv("DATA_DIR", "data"),
		GroqAPIKey:         getEnv("GROQ_API_KEY", ""),
		GroqModel:          getEnv("GROQ_MODEL", "openai/gpt-oss-120b"),
		GroqBaseURL:        getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		Language:           getEnv("LANGUAGE", "uk"),
		MaxRecommendations: getEnvInt("MAX_RECOMMENDATIONS", 8),
		MinConfidence:      getEnvFloat("MIN_CONFIDENCE", 0.65),
		NewsCacheTTL:       getEnvDuration("NEWS_CACHE_HOURS", 6) * time.Hour,
		NewsHoursBack:      getEnvInt("NEWS_HOURS_BACK", 24),
		MinNewsCount:       getEnvInt("MIN_NEWS_COUNT", 10),
		FetchTimeout:       getEnvDuration("FETCH_TIMEOUT_SECONDS", 10) * time.Second,
		AITimeout:          getEnvDuration("AI_TIMEOUT_SECONDS", 60) * time.Second,
		AITemperature:      getEnvFloat("AI_TEMPERATURE", 0.4),
		AIMaxTokens:        getEnvInt("AI_MAX_TOKENS", 1500),
		CircuitFailLimit:   getEnvInt("CIRCUIT_FAIL_LIMIT", 3),
		CircuitCooldown:    getEnvDuration("CIRCUIT_COOLDOWN_SECONDS", 120) * time.Second,
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MIN", 120),
	}
}

// Validate reports configuration problems that degrade the pipeline but do
// not stop it: without an API key the AI path is skipped and the rule-based
// generator serves every run.
func (c Config) Validate() []string {
	var warnings []string
	if c.GroqAPIKey == "" {
		warnings = append(warnings, "GROQ_API_KEY not set, AI recommendations disabled")
	}
	if len(Currencies) == 0 {
		warnings = append(warnings, "no currencies configured for analysis")
	}
	return warnings
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvDuration(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def))
}
