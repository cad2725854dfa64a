package config

import "os"

type Config struct {
	Port             string
	Env              string
	PostgresConnStr  string
	MongoURI         string
	RedisAddr        string
	RedisPassword    string
	FirebaseCredPath string
	JWTSecret        string
	IngestJWTSecret  string
	IngestBaseURL    string
	AlphaVantageKey  string
	FinnhubKey       string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		PostgresConnStr:  getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:         getEnv("MONGO_URI", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		FirebaseCredPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		JWTSecret:        getEnv("JWT_SECRET", "supersecretjwtkey"),
		IngestJWTSecret:  getEnv("INGEST_JWT_SECRET", ""),
		IngestBaseURL:    getEnv("INGEST_BASE_URL", ""),
		AlphaVantageKey:  getEnv("ALPHA_VANTAGE_API_KEY", ""),
		FinnhubKey:       getEnv("FINNHUB_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
