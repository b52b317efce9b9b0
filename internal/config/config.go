package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr           string
	SessionSecret      string
	AccessPassword     string
	AccessPasswordHash string
	LLMProviders       string
	OpenAIModel        string
	MaxUploadMB        int
}

func Load() Config {
	return Config{
		HTTPAddr:           getenv("GRADEFLOW_HTTP_ADDR", ":8080"),
		SessionSecret:      getenv("GRADEFLOW_SESSION_SECRET", "dev-secret-change-me"),
		AccessPassword:     getenv("GRADEFLOW_ACCESS_PASSWORD", "teacheraccess"),
		AccessPasswordHash: getenv("GRADEFLOW_ACCESS_PASSWORD_HASH", ""),
		LLMProviders:       getenv("GRADEFLOW_LLM_PROVIDERS", "openai"),
		OpenAIModel:        getenv("GRADEFLOW_OPENAI_MODEL", "gpt-4.1-mini"),
		MaxUploadMB:        getenvInt("GRADEFLOW_MAX_UPLOAD_MB", 32),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
