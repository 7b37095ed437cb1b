package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Rag       RagConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// RagConfig holds the retrieval and answer tuning knobs
type RagConfig struct {
	MaxDocuments             int
	SimilarityThreshold      float64
	HighConfidence           float64
	MediumConfidence         float64
	MinDocsForHigh           int
	OperationalMinSimilarity float64
	LexicalBoost             float64
	CandidatePool            int
	DocumentStore            string // "postgres" or "bleve"
	SearchCacheTTL           time.Duration
	FallbackSLA              time.Duration
	SupportInbox             string
	PermissionPolicy         string // "allow_all" or "role_based"
	SuperRoles               []string
}

type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Knowledge Assistant"),
		},
		Rag: RagConfig{
			MaxDocuments:             getEnvAsInt("RAG_MAX_DOCUMENTS", 5),
			SimilarityThreshold:      getEnvAsFloat("RAG_SIMILARITY_THRESHOLD", 0.7),
			HighConfidence:           getEnvAsFloat("RAG_HIGH_CONFIDENCE", 0.85),
			MediumConfidence:         getEnvAsFloat("RAG_MEDIUM_CONFIDENCE", 0.70),
			MinDocsForHigh:           getEnvAsInt("RAG_MIN_DOCS_FOR_HIGH", 2),
			OperationalMinSimilarity: getEnvAsFloat("RAG_OPERATIONAL_MIN_SIMILARITY", 0.75),
			LexicalBoost:             getEnvAsFloat("RAG_LEXICAL_BOOST", 0.2),
			CandidatePool:            getEnvAsInt("RAG_CANDIDATE_POOL", 50),
			DocumentStore:            strings.ToLower(getEnv("DOCUMENT_STORE", "postgres")),
			SearchCacheTTL:           getEnvAsDuration("RAG_SEARCH_CACHE_TTL", 30*time.Second),
			FallbackSLA:              getEnvAsDuration("RAG_FALLBACK_SLA", 24*time.Hour),
			SupportInbox:             getEnv("RAG_SUPPORT_INBOX", ""),
			PermissionPolicy:         strings.ToLower(getEnv("RAG_PERMISSION_POLICY", "allow_all")),
			SuperRoles:               getEnvAsList("RAG_SUPER_ROLES", []string{"admin"}),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "knowledge-assistant-backend"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
