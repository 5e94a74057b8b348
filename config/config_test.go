package config

import (
	"testing"
	"time"
)

func TestGetEnv_Default(t *testing.T) {
	t.Setenv("LARANA_TEST_VAR", "")
	if got := GetEnv("LARANA_TEST_VAR", "def"); got != "def" {
		t.Errorf("GetEnv = %q, want def", got)
	}
	t.Setenv("LARANA_TEST_VAR", "set")
	if got := GetEnv("LARANA_TEST_VAR", "def"); got != "set" {
		t.Errorf("GetEnv = %q, want set", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("LARANA_TEST_INT", "42")
	if got := GetEnvInt("LARANA_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	t.Setenv("LARANA_TEST_INT", "abc")
	if got := GetEnvInt("LARANA_TEST_INT", 1); got != 1 {
		t.Errorf("GetEnvInt malformed = %d, want 1", got)
	}
}

func TestLoadOzonConfig_Defaults(t *testing.T) {
	t.Setenv("OZON_CLIENT_ID", "")
	t.Setenv("OZON_API_KEY", "")
	t.Setenv("OZON_API_URL", "")
	t.Setenv("OZON_TIMEOUT_SECONDS", "")
	cfg := LoadOzonConfig()
	if cfg.Configured() {
		t.Error("Configured = true without credentials")
	}
	if cfg.BaseURL != "https://api-seller.ozon.ru" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.PageSize != 1000 || cfg.BatchSize != 100 {
		t.Errorf("PageSize/BatchSize = %d/%d, want 1000/100", cfg.PageSize, cfg.BatchSize)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestNewDB_SQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", t.TempDir()+"/config_test.db")
	t.Setenv("GORM_LOG", "off")
	db, err := NewDB()
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("DB(): %v", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestNewDB_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := NewDB(); err == nil {
		t.Error("NewDB with unknown driver: want error")
	}
}
