package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	ResultsBackend string // fs|sql
	BlobBasePath   string // root of the flat-file store

	TestsDir      string
	TestCacheSize int

	StorageAccessKey string
	AuthHMACSecret   string

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	MailerAPIURL    string
	MailerAccessKey string
	MailerFromName  string
	MailerTimeout   time.Duration

	ShowResultsToUser bool
	GeneratePDF       bool
	StoreResults      bool
	RejectSuspicious  bool
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:     mode,
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		ResultsBackend: envOr("RESULTS_BACKEND", "fs"),
		BlobBasePath:   envOr("BLOB_BASE_PATH", "./data"),

		TestsDir:      envOr("TESTS_DIR", "./definitions"),
		TestCacheSize: envInt("TEST_CACHE_SIZE", 32),

		StorageAccessKey: envOr("STORAGE_ACCESS_KEY", "dev-storage-key"),
		AuthHMACSecret:   envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		AdminUser: envOr("ADMIN_USER", "admin"),
		// bcrypt("admin"); override in any shared deployment.
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2b$10$NTM1O9yRjwOLGNvgTmaV6.Ivdxfpd4Ifd4dKNxVv9TejUH3KivU86"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://compass.example.com"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:8000"),

		MailerAPIURL:    os.Getenv("MAILER_API_URL"),
		MailerAccessKey: os.Getenv("MAILER_ACCESS_KEY"),
		MailerFromName:  envOr("MAILER_FROM_NAME", "Career Compass"),
		MailerTimeout:   time.Duration(envInt("MAILER_TIMEOUT_SEC", 20)) * time.Second,

		ShowResultsToUser: envBool("SHOW_RESULTS_TO_USER", true),
		GeneratePDF:       envBool("GENERATE_PDF", true),
		StoreResults:      envBool("STORE_RESULTS", true),
		RejectSuspicious:  envBool("REJECT_SUSPICIOUS", false),
	}
}

// CORSOrigins returns the origin list for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
