package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMPCHost          = "localhost"
	defaultMPCPort          = 13579
	defaultUploadInterval   = 120000 // ms
	defaultUpdateInterval   = 15000  // ms
	defaultRestartThreshold = 50
	defaultMaxWidth         = 640
	defaultQuality          = 80
	defaultLogFile          = "app.log"
	defaultLogLevel         = "info"
)

// ErrMissingVariable is returned when a required environment variable is not set
var ErrMissingVariable = errors.New("required environment variable is not set")

// FlipMode controls vertical flipping of snapshots
type FlipMode string

const (
	FlipOff  FlipMode = "false"
	FlipOn   FlipMode = "true"
	FlipAuto FlipMode = "auto"
)

// MPCConfig holds the media player web interface location
type MPCConfig struct {
	Host string
	Port int
}

// BaseURL returns the root URL of the player web interface
func (c MPCConfig) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// ImgurConfig holds image host credentials and throttling
type ImgurConfig struct {
	ClientID       string
	UploadInterval time.Duration
}

// DiscordConfig holds presence credentials and the restart escalation
type DiscordConfig struct {
	ClientID         string
	AutoRestart      bool
	RestartThreshold int
}

// ImageConfig holds snapshot transform parameters
type ImageConfig struct {
	MaxWidth       int
	Quality        int
	FlipHorizontal bool
	FlipVertical   FlipMode
}

// LogConfig holds logging destinations
type LogConfig struct {
	Level string
	File  string
}

// AppConfig holds application configuration.
// It is loaded once at startup and never reloaded.
type AppConfig struct {
	MPC            MPCConfig
	Imgur          ImgurConfig
	Discord        DiscordConfig
	Image          ImageConfig
	Log            LogConfig
	UpdateInterval time.Duration
	MetricsAddr    string
}

// Load reads the .env file (if any) and builds the configuration from the environment.
// A missing .env file is not an error; missing credentials are.
func Load(paths ...string) (*AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	// godotenv never overrides variables that are already set
	_ = godotenv.Load(paths...)

	cfg := &AppConfig{
		MPC: MPCConfig{
			Host: getEnv("MPC_HOST", defaultMPCHost),
			Port: getEnvInt("MPC_PORT", defaultMPCPort),
		},
		Imgur: ImgurConfig{
			ClientID:       os.Getenv("IMGUR_CLIENT_ID"),
			UploadInterval: getEnvMillis("IMGUR_UPLOAD_INTERVAL", defaultUploadInterval),
		},
		Discord: DiscordConfig{
			ClientID:         os.Getenv("DISCORD_CLIENT_ID"),
			AutoRestart:      getEnvBool("DISCORD_AUTO_RESTART", false),
			RestartThreshold: getEnvInt("DISCORD_RESTART_THRESHOLD", defaultRestartThreshold),
		},
		Image: ImageConfig{
			MaxWidth:       getEnvInt("IMAGE_MAX_WIDTH", defaultMaxWidth),
			Quality:        getEnvInt("IMAGE_QUALITY", defaultQuality),
			FlipHorizontal: getEnvBool("FLIP_THUMBNAIL", false),
			FlipVertical:   parseFlipMode(os.Getenv("FLIP_VERTICAL")),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", defaultLogLevel),
			File:  getEnv("LOG_FILE", defaultLogFile),
		},
		UpdateInterval: getEnvMillis("UPDATE_INTERVAL", defaultUpdateInterval),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that credentials are present and numeric settings are usable
func (c *AppConfig) Validate() error {
	if c.Imgur.ClientID == "" {
		return fmt.Errorf("%w: IMGUR_CLIENT_ID", ErrMissingVariable)
	}
	if c.Discord.ClientID == "" {
		return fmt.Errorf("%w: DISCORD_CLIENT_ID", ErrMissingVariable)
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("UPDATE_INTERVAL must be positive, got %s", c.UpdateInterval)
	}
	if c.Image.Quality < 1 || c.Image.Quality > 100 {
		return fmt.Errorf("IMAGE_QUALITY must be between 1 and 100, got %d", c.Image.Quality)
	}
	if c.Image.MaxWidth <= 0 {
		return fmt.Errorf("IMAGE_MAX_WIDTH must be positive, got %d", c.Image.MaxWidth)
	}
	if c.Discord.AutoRestart && c.Discord.RestartThreshold <= 0 {
		return fmt.Errorf("DISCORD_RESTART_THRESHOLD must be positive, got %d", c.Discord.RestartThreshold)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvMillis(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Millisecond
}

func getEnvBool(key string, fallback bool) bool {
	if s := os.Getenv(key); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return fallback
}

func parseFlipMode(s string) FlipMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return FlipAuto
	case "true", "1", "yes":
		return FlipOn
	default:
		return FlipOff
	}
}
