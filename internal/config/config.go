package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Devices: id -> address (host or host:port, ECP port 8060 assumed)
	Devices       map[string]string
	DefaultDevice string // used when a play request carries no deviceId

	// Web search provider (optional; aggregation degrades to native-only)
	SearchURL string
	SearchKey string

	// Jellyfin (optional; channel registers only when configured)
	JellyfinURL   string
	JellyfinToken string

	// Navigation timing overrides, in milliseconds. Empirically
	// calibrated defaults; firmware updates on the device side may
	// require tuning.
	PostLaunchWaitMS int // wait after launch before the confirmation key
	KeyDelayMS       int // between repeated keypresses
	TypeDelayMS      int // between typed characters

	// Search behavior
	SearchTimeoutSeconds  int // per-provider timeout
	SearchCacheTTLMinutes int
	SearchMaxResults      int

	// Server
	ServerPort string

	// Paths
	DatabaseFile  string // $CONFIG_DIR/tapdeck.db
	TheaterFile   string // $CONFIG_DIR/theater.json
	BlacklistFile string // $CONFIG_DIR/blacklist.txt

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8584")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("POST_LAUNCH_WAIT_MS", 2000)
	viper.SetDefault("KEY_DELAY_MS", 100)
	viper.SetDefault("TYPE_DELAY_MS", 50)
	viper.SetDefault("SEARCH_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SEARCH_CACHE_TTL_MINUTES", 5)
	viper.SetDefault("SEARCH_MAX_RESULTS", 20)

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "tapdeck")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	devices, err := parseDevices(viper.GetString("DEVICES"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Devices:       devices,
		DefaultDevice: viper.GetString("DEFAULT_DEVICE"),

		SearchURL: viper.GetString("SEARCH_URL"),
		SearchKey: viper.GetString("SEARCH_KEY"),

		JellyfinURL:   viper.GetString("JELLYFIN_URL"),
		JellyfinToken: viper.GetString("JELLYFIN_TOKEN"),

		PostLaunchWaitMS: viper.GetInt("POST_LAUNCH_WAIT_MS"),
		KeyDelayMS:       viper.GetInt("KEY_DELAY_MS"),
		TypeDelayMS:      viper.GetInt("TYPE_DELAY_MS"),

		SearchTimeoutSeconds:  viper.GetInt("SEARCH_TIMEOUT_SECONDS"),
		SearchCacheTTLMinutes: viper.GetInt("SEARCH_CACHE_TTL_MINUTES"),
		SearchMaxResults:      viper.GetInt("SEARCH_MAX_RESULTS"),

		ServerPort: viper.GetString("SERVER_PORT"),

		DatabaseFile:  filepath.Join(configDir, "tapdeck.db"),
		TheaterFile:   filepath.Join(configDir, "theater.json"),
		BlacklistFile: filepath.Join(configDir, "blacklist.txt"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if len(config.Devices) == 0 {
		return nil, fmt.Errorf("DEVICES is required (e.g. DEVICES=living-room=192.168.1.50)")
	}
	if config.DefaultDevice != "" {
		if _, ok := config.Devices[config.DefaultDevice]; !ok {
			return nil, fmt.Errorf("DEFAULT_DEVICE %q is not listed in DEVICES", config.DefaultDevice)
		}
	}

	return config, nil
}

// parseDevices parses "id=host[:port],id=host[:port]" into a map.
func parseDevices(raw string) (map[string]string, error) {
	devices := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return devices, nil
	}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, addr, found := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		addr = strings.TrimSpace(addr)
		if !found || name == "" || addr == "" {
			return nil, fmt.Errorf("invalid DEVICES entry %q (want id=host[:port])", entry)
		}
		devices[name] = addr
	}
	return devices, nil
}
