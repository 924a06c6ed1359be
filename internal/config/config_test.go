package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.OCRLanguage != "por" {
		t.Errorf("OCRLanguage = %q, want por", cfg.OCRLanguage)
	}
	if cfg.ExtractTimeout != 30*time.Second {
		t.Errorf("ExtractTimeout = %v, want 30s", cfg.ExtractTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OCR_LANGUAGE", "eng")
	t.Setenv("OCR_EXTRACT_TIMEOUT", "5s")
	t.Setenv("IMAGE_CACHE_SIZE", "16")

	cfg := Load()

	if cfg.OCRLanguage != "eng" {
		t.Errorf("OCRLanguage = %q, want eng", cfg.OCRLanguage)
	}
	if cfg.ExtractTimeout != 5*time.Second {
		t.Errorf("ExtractTimeout = %v, want 5s", cfg.ExtractTimeout)
	}
	if cfg.ImageCacheSize != 16 {
		t.Errorf("ImageCacheSize = %d, want 16", cfg.ImageCacheSize)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.local",
		DBPort:     "3306",
		DBUser:     "inspector",
		DBPassword: "secret",
		DBName:     "labelverify",
	}

	want := "inspector:secret@tcp(db.local:3306)/labelverify?parseTime=true"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
