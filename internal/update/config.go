package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sandeepkv93/selesai/internal/storage"
)

type RuntimeConfig struct {
	StatePath   string
	Backend     storage.Backend
	LogFile     string
	LogLevel    string
	Animations  bool
	FPS         int
	ListHeight  int
	Watch       bool
	WatchBuffer int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		StatePath:   DefaultStatePath(storage.BackendJSON),
		Backend:     storage.BackendJSON,
		LogLevel:    "info",
		Animations:  true,
		FPS:         60,
		ListHeight:  10,
		Watch:       true,
		WatchBuffer: 8,
	}
}

// DefaultStatePath is ~/.selesai/state.json, or state.db for the sqlite
// backend. Without a home directory it falls back to the working directory.
func DefaultStatePath(backend storage.Backend) string {
	name := "state.json"
	if backend == storage.BackendSQLite {
		name = "state.db"
	}
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return ".selesai_" + name
	}
	return filepath.Join(home, ".selesai", name)
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("SELESAI_BACKEND"))); v != "" {
		if b := storage.Backend(v); b.IsValid() {
			if cfg.StatePath == DefaultStatePath(cfg.Backend) {
				cfg.StatePath = DefaultStatePath(b)
			}
			cfg.Backend = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("SELESAI_STATE_FILE")); v != "" {
		cfg.StatePath = v
	}
	if v := strings.TrimSpace(os.Getenv("SELESAI_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("SELESAI_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvBool("SELESAI_ANIMATIONS"); ok {
		cfg.Animations = v
	}
	if v, ok := getEnvInt("SELESAI_FPS"); ok && v > 0 {
		cfg.FPS = v
	}
	if v, ok := getEnvInt("SELESAI_LIST_HEIGHT"); ok && v > 0 {
		cfg.ListHeight = v
	}
	if v, ok := getEnvBool("SELESAI_WATCH"); ok {
		cfg.Watch = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
