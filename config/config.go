package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/utils"
)

// Config is everything read from the environment at startup.
type Config struct {
	Port string

	DBDriver    string
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSeed      bool

	JWTSecret     string
	CORSOrigins   []string
	BillingAtomic bool

	RateLimitRPS   float64
	RateLimitBurst int

	ReportCron  string
	OverdueCron string

	LogLevel    string
	FrontendURL string
	SMTP        utils.SMTPConfig
}

// Load reads an optional .env file, then the process environment.
func Load(log *logrus.Logger) Config {
	if err := godotenv.Load(); err != nil {
		log.Info(".env not found; continuing with environment variables")
	}

	driver := strings.ToLower(envOrDefault("DB_DRIVER", "mysql"))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}
	dbURL := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if dbURL == "" {
		dbURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	return Config{
		Port:        envOrDefault("PORT", "8080"),
		DBDriver:    driver,
		DatabaseURL: dbURL,
		DBUser:      envOrDefault("DB_USER", "root"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      envOrDefault("DB_HOST", "127.0.0.1"),
		DBPort:      envOrDefault("DB_PORT", defaultPort),
		DBName:      envOrDefault("DB_NAME", "hotel_db"),
		DBSeed:      envBool("DB_SEED", true),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		CORSOrigins:   parseList(os.Getenv("CORS_ORIGINS")),
		BillingAtomic: envBool("BILLING_ATOMIC", false),

		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 40),

		ReportCron:  envOrDefault("REPORT_CRON", "0 5 0 * * *"),
		OverdueCron: envOrDefault("OVERDUE_CRON", "0 */30 * * * *"),

		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		FrontendURL: envOrDefault("FRONTEND_URL", "http://localhost:3000"),
		SMTP: utils.SMTPConfig{
			Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Port:     envOrDefault("SMTP_PORT", "587"),
			Username: strings.TrimSpace(os.Getenv("SMTP_USER")),
			Password: os.Getenv("SMTP_PASS"),
			FromName: envOrDefault("SMTP_FROM_NAME", "Hotel Back Office"),
		},
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// parseList splits a comma separated list; empty input means "*".
func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
