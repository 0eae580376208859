package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	BaseURL            string
	Env                string
	CronSecret         string
	UnsubscribeSecret  string
	SessionSecret      string
	SheetsID           string
	ServiceAccountKey  string
	GmailClientID      string
	GmailClientSecret  string
	GmailRefreshToken  string
	DatabaseURL        string
	AIProvider         string
	AIKey              string
	ScanMaxResults     int64
	UnsubMaxResults    int64
	MinConfidence      string
	SnippetMaxChars    int
	SelfAddresses      []string
	AllowedFormOrigins []string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:              GetEnv("PORT", "8080"),
		BaseURL:           GetEnv("BASE_URL", "http://localhost:8080"),
		Env:               GetEnv("ENV", "development"),
		CronSecret:        GetEnv("CRON_SECRET", ""),
		UnsubscribeSecret: GetEnv("UNSUBSCRIBE_SECRET", ""),
		SessionSecret:     GetEnv("SESSION_SECRET", "0b2d3f64-56c1-42a8-9f3e-8f1f0a7c21de"),
		SheetsID:          GetEnv("GOOGLE_SHEETS_ID", ""),
		ServiceAccountKey: GetEnv("GOOGLE_SERVICE_ACCOUNT_KEY", ""),
		GmailClientID:     GetEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: GetEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: GetEnv("GMAIL_REFRESH_TOKEN", ""),
		DatabaseURL:       GetEnv("DATABASE_URL", ""),
		AIProvider:        GetEnv("AI_PROVIDER", "anthropic"),
		AIKey:             GetEnv("AI_API_KEY", ""),
		ScanMaxResults:    GetEnvInt64("SCAN_MAX_RESULTS", 10),
		UnsubMaxResults:   GetEnvInt64("UNSUB_SCAN_MAX_RESULTS", 30),
		MinConfidence:     GetEnv("MIN_CONFIDENCE", "medium"),
		SnippetMaxChars:   int(GetEnvInt64("SNIPPET_MAX_CHARS", 500)),
		SelfAddresses:     GetEnvList("SELF_ADDRESSES", "crystalseedtarot,hollymcole"),
		AllowedFormOrigins: GetEnvList("ALLOWED_FORM_ORIGINS",
			"https://crystalseedtarot.com,https://www.crystalseedtarot.com,http://localhost:3000"),
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func GetEnvList(key, defaultValue string) []string {
	raw := GetEnv(key, defaultValue)
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func (c *Config) Validate() error {
	if c.CronSecret == "" {
		return fmt.Errorf("CRON_SECRET is required")
	}
	if c.UnsubscribeSecret == "" {
		return fmt.Errorf("UNSUBSCRIBE_SECRET is required")
	}
	if c.AIKey == "" {
		return fmt.Errorf("AI_API_KEY is required")
	}
	if c.GmailClientID == "" {
		return fmt.Errorf("GMAIL_CLIENT_ID is required")
	}
	if c.GmailClientSecret == "" {
		return fmt.Errorf("GMAIL_CLIENT_SECRET is required")
	}
	if c.GmailRefreshToken == "" {
		return fmt.Errorf("GMAIL_REFRESH_TOKEN is required")
	}
	if c.SheetsID != "" && c.ServiceAccountKey == "" {
		return fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_KEY is required when GOOGLE_SHEETS_ID is set")
	}
	return nil
}
