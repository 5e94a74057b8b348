package config

import (
	"os"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName          string
	Port             string
	Env              string
	Debug            bool
	PlaceholderImage string
	CatalogCacheTTL  int64 // seconds
	PreviewTTL       int64 // seconds
	Ozon             OzonConfig
}

// OzonConfig holds marketplace seller API settings.
type OzonConfig struct {
	ClientID    string
	APIKey      string
	BaseURL     string
	ListPath    string
	DetailsPath string
	PageSize    int
	BatchSize   int
	Timeout     time.Duration
}

// Configured reports whether seller credentials are present.
func (o OzonConfig) Configured() bool {
	return o.ClientID != "" && o.APIKey != ""
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:          GetEnv("APP_NAME", "larana"),
			Port:             GetEnv("PORT", "8080"),
			Env:              os.Getenv("APP_ENV"),
			Debug:            os.Getenv("DEBUG") == "true",
			PlaceholderImage: GetEnv("PLACEHOLDER_IMAGE", "https://cdn.poehali.dev/files/placeholder.jpg"),
			CatalogCacheTTL:  int64(GetEnvInt("CATALOG_CACHE_TTL", 300)),
			PreviewTTL:       int64(GetEnvInt("OZON_PREVIEW_TTL", 1800)),
			Ozon:             LoadOzonConfig(),
		}
	})
}

// LoadOzonConfig reads the OZON_* variables.
func LoadOzonConfig() OzonConfig {
	return OzonConfig{
		ClientID:    os.Getenv("OZON_CLIENT_ID"),
		APIKey:      os.Getenv("OZON_API_KEY"),
		BaseURL:     GetEnv("OZON_API_URL", "https://api-seller.ozon.ru"),
		ListPath:    GetEnv("OZON_LIST_PATH", "/v3/product/list"),
		DetailsPath: GetEnv("OZON_DETAILS_PATH", "/v3/product/info/list"),
		PageSize:    GetEnvInt("OZON_PAGE_SIZE", 1000),
		BatchSize:   GetEnvInt("OZON_BATCH_SIZE", 100),
		Timeout:     time.Duration(GetEnvInt("OZON_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}
