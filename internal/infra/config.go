package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	DefaultLocale       string
	GeminiAPIKey        string
	LockEnvKey          bool
	GeminiBaseURL       string
	ScriptProvider      string
	ScriptModel         string
	ImageModel          string
	VideoModel          string
	VideoFromImageModel string
	VideoPollInterval   time.Duration
	CohereAPIKey        string
	CohereModel         string
	MediaDir            string
	PresetsPath         string
	InspirationFeeds    []string
	CORSAllowedOrigins  []string
	MaxUploadBytes      int64
	ProviderTimeout     time.Duration
	DownloadTimeout     time.Duration
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
	SessionIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "8080"),
		DefaultLocale:       getEnv("DEFAULT_LOCALE", "en"),
		GeminiAPIKey:        firstEnv("GEMINI_API_KEY", "API_KEY"),
		LockEnvKey:          getEnvBool("LOCK_ENV_API_KEY", false),
		GeminiBaseURL:       getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		ScriptProvider:      strings.ToLower(getEnv("SCRIPT_PROVIDER", "gemini")),
		ScriptModel:         getEnv("SCRIPT_MODEL", "gemini-3-pro-preview"),
		ImageModel:          getEnv("IMAGE_MODEL", "gemini-3-pro-image-preview"),
		VideoModel:          getEnv("VIDEO_MODEL", "veo-3.1-generate-preview"),
		VideoFromImageModel: getEnv("VIDEO_FROM_IMAGE_MODEL", "veo-3.1-fast-generate-preview"),
		VideoPollInterval:   time.Second * time.Duration(getEnvInt("VIDEO_POLL_INTERVAL_SECONDS", 5)),
		CohereAPIKey:        os.Getenv("COHERE_API_KEY"),
		CohereModel:         getEnv("COHERE_MODEL", "command-r-plus"),
		MediaDir:            os.Getenv("MEDIA_DIR"),
		PresetsPath:         os.Getenv("STUDIO_PRESETS_PATH"),
		InspirationFeeds:    getEnvList("INSPIRATION_FEEDS"),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS"),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_MB", 20)) << 20,
		ProviderTimeout:     time.Second * time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 60)),
		DownloadTimeout:     time.Second * time.Duration(getEnvInt("DOWNLOAD_TIMEOUT_SECONDS", 300)),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		SessionIdleTimeout:  time.Minute * time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 120)),
	}

	switch cfg.ScriptProvider {
	case "gemini", "cohere":
	default:
		return nil, fmt.Errorf("unsupported SCRIPT_PROVIDER %q", cfg.ScriptProvider)
	}

	if cfg.ScriptProvider == "cohere" && strings.TrimSpace(cfg.CohereAPIKey) == "" {
		return nil, fmt.Errorf("COHERE_API_KEY is required when SCRIPT_PROVIDER=cohere")
	}

	if cfg.VideoPollInterval <= 0 {
		return nil, fmt.Errorf("VIDEO_POLL_INTERVAL_SECONDS must be positive")
	}

	return cfg, nil
}

// ApplyPresets overlays non-empty preset values onto the configuration.
func (c *Config) ApplyPresets(p *Presets) {
	if c == nil || p == nil {
		return
	}
	if p.Models.Script != "" {
		c.ScriptModel = p.Models.Script
	}
	if p.Models.Image != "" {
		c.ImageModel = p.Models.Image
	}
	if p.Models.Video != "" {
		c.VideoModel = p.Models.Video
	}
	if p.Models.VideoFromImage != "" {
		c.VideoFromImageModel = p.Models.VideoFromImage
	}
	if p.PollIntervalSeconds > 0 {
		c.VideoPollInterval = time.Duration(p.PollIntervalSeconds) * time.Second
	}
	if len(p.InspirationFeeds) > 0 {
		c.InspirationFeeds = append([]string(nil), p.InspirationFeeds...)
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
