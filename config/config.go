package config

import (
	"os"
	"strings"

	"github.com/qs-lzh/fyyur-trivia/internal/util"
)

type Config struct {
	DatabaseDSN string
	Addr        string
	CacheURL    string
	MQURL       string
	MQQueue     string

	GinMode       string
	LogLevel      string
	SessionCookie string
	CORSOrigins   []string
}

func LoadConfig() (*Config, error) {
	if err := util.LoadEnv(); err != nil {
		return nil, err
	}
	databaseDSN := os.Getenv("DATABASE_DSN")
	addr := os.Getenv("ADDR")
	cacheURL := os.Getenv("CACHE_URL")
	mqURL := os.Getenv("RABBIT_MQ_URL")
	mqQueue := os.Getenv("RABBIT_MQ_QUEUE")
	return &Config{
		DatabaseDSN:   databaseDSN,
		Addr:          addr,
		CacheURL:      cacheURL,
		MQURL:         mqURL,
		MQQueue:       mqQueue,
		GinMode:       util.GetEnvDefault("GIN_MODE", "release"),
		LogLevel:      util.GetEnvDefault("LOG_LEVEL", "info"),
		SessionCookie: util.GetEnvDefault("SESSION_COOKIE", "fyyur_session"),
		CORSOrigins:   splitList(util.GetEnvDefault("CORS_ORIGINS", "*")),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
