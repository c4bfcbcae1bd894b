package update

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	defaultUpkeepBuffer = 16
	defaultDBFileName   = "sprout.db"
)

// RuntimeConfig collects everything the TUI needs from the environment.
type RuntimeConfig struct {
	DBPath        string
	UpkeepBuffer  int
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	Debug         bool
}

func LoadRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:        getEnvString("SPROUT_DB", defaultDBPath()),
		UpkeepBuffer:  getEnvInt("SPROUT_UPKEEP_BUFFER", defaultUpkeepBuffer),
		OpenAIAPIKey:  getEnvString("SPROUT_OPENAI_API_KEY", os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL: getEnvString("SPROUT_OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnvString("SPROUT_OPENAI_MODEL", ""),
		Debug:         getEnvBool("SPROUT_DEBUG", false),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDBFileName
	}
	return filepath.Join(home, ".sprout", defaultDBFileName)
}

func getEnvString(key, fallback string) string {
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
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
