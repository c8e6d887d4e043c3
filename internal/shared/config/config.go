package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	CatalogPath       string
	DeckStoreType     string
	DeckDir           string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	S3Endpoint        string
	SkeletonDeck      string
	TempDir           string
	LeadStore         string
	LeadLogPath       string
	DatabaseURL       string
	LogLevel          string
	LogFormat         string
	GenerateRateLimit float64
	GenerateRateBurst int
}

var defaults = map[string]any{
	"port":                "8000",
	"env":                 "dev",
	"cors_allow_origins":  "*",
	"catalog_path":        "./data/catalog.yaml",
	"deck_store":          "local",
	"deck_dir":            "./data/product_folder",
	"aws_region":          "",
	"s3_bucket":           "",
	"s3_prefix":           "",
	"s3_endpoint":         "",
	"skeleton_deck":       "skeleton.pdf",
	"temp_dir":            "",
	"lead_store":          "csv",
	"lead_log_path":       "./data/lead_tracker/leads.csv",
	"database_url":        "",
	"log_level":           "info",
	"log_format":          "json",
	"generate_rate_limit": 0.0,
	"generate_rate_burst": 5,
}

// NewViper returns a viper instance with defaults registered and environment
// lookup enabled. Keys map to upper-case environment variables (catalog_path -> CATALOG_PATH).
func NewViper() *viper.Viper {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()
	return v
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	LoadDotEnv()
	return FromViper(NewViper())
}

// LoadDotEnv loads .env files from the working directory, best effort.
func LoadDotEnv() {
	loadEnvFiles(".env", "cmd/.env")
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		Port:              v.GetString("port"),
		Env:               normalizeEnv(v.GetString("env")),
		CORSAllowOrigin:   splitAndTrim(v.GetString("cors_allow_origins")),
		CatalogPath:       v.GetString("catalog_path"),
		DeckStoreType:     normalizeStoreType(v.GetString("deck_store")),
		DeckDir:           v.GetString("deck_dir"),
		AWSRegion:         v.GetString("aws_region"),
		S3Bucket:          v.GetString("s3_bucket"),
		S3Prefix:          v.GetString("s3_prefix"),
		S3Endpoint:        v.GetString("s3_endpoint"),
		SkeletonDeck:      v.GetString("skeleton_deck"),
		TempDir:           v.GetString("temp_dir"),
		LeadStore:         normalizeLeadStore(v.GetString("lead_store")),
		LeadLogPath:       v.GetString("lead_log_path"),
		DatabaseURL:       v.GetString("database_url"),
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
		GenerateRateLimit: v.GetFloat64("generate_rate_limit"),
		GenerateRateBurst: v.GetInt("generate_rate_burst"),
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeLeadStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "none", "off":
		return "none"
	default:
		return "csv"
	}
}
