package config

import (
	"os"
	"strings"
)

type Config struct {
	MongoURI   string
	MongoDB    string
	RedisAddr  string
	HTTPPort   string
	Indicators []string // deployed indicator keys; empty = all
}

func Load() *Config {
	return &Config{
		MongoURI:   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGO_DB", "ca_schools"),
		RedisAddr:  getEnv("REDIS_URI", "localhost:6379"),
		HTTPPort:   getEnv("PORT", "8080"),
		Indicators: splitList(os.Getenv("INDICATORS")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
