package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
)

// Config stores runtime configuration for the CLI and the query server.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	CORSAllowedOrigins         []string
	DBPath                     string
	TournamentBaseURL          string
	CompetitionsBaseURL        string
	UserAgent                  string
	LookupTimeout              time.Duration
	RangeTimeout               time.Duration
	CompetitionsCacheTTL       time.Duration
	DefaultYear                int
	ProbeYears                 int
	SplitDepth                 int
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

// now is swapped in tests.
var now = time.Now

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	lookupTimeout, err := time.ParseDuration(getEnv("VOLLEYBALL_LOOKUP_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VOLLEYBALL_LOOKUP_TIMEOUT: %w", err)
	}
	if lookupTimeout <= 0 {
		return Config{}, fmt.Errorf("VOLLEYBALL_LOOKUP_TIMEOUT must be > 0")
	}
	rangeTimeout, err := time.ParseDuration(getEnv("VOLLEYBALL_RANGE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VOLLEYBALL_RANGE_TIMEOUT: %w", err)
	}
	if rangeTimeout <= 0 {
		return Config{}, fmt.Errorf("VOLLEYBALL_RANGE_TIMEOUT must be > 0")
	}

	competitionsCacheTTL, err := time.ParseDuration(getEnv("VOLLEYBALL_COMPETITIONS_CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VOLLEYBALL_COMPETITIONS_CACHE_TTL: %w", err)
	}
	if competitionsCacheTTL <= 0 {
		return Config{}, fmt.Errorf("VOLLEYBALL_COMPETITIONS_CACHE_TTL must be > 0")
	}

	defaultYear, err := getEnvAsInt("VOLLEYBALL_DEFAULT_YEAR", now().UTC().Year())
	if err != nil {
		return Config{}, fmt.Errorf("parse VOLLEYBALL_DEFAULT_YEAR: %w", err)
	}
	if defaultYear < 1900 || defaultYear > 9999 {
		return Config{}, fmt.Errorf("VOLLEYBALL_DEFAULT_YEAR must be a four digit year")
	}
	probeYears, err := getEnvAsInt("VOLLEYBALL_PROBE_YEARS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse VOLLEYBALL_PROBE_YEARS: %w", err)
	}
	if probeYears < 1 {
		return Config{}, fmt.Errorf("VOLLEYBALL_PROBE_YEARS must be >= 1")
	}
	splitDepth, err := getEnvAsInt("VOLLEYBALL_SPLIT_DEPTH", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse VOLLEYBALL_SPLIT_DEPTH: %w", err)
	}
	if splitDepth < 1 {
		return Config{}, fmt.Errorf("VOLLEYBALL_SPLIT_DEPTH must be >= 1")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "volleyball-stats"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DBPath:                     strings.TrimSpace(getEnv("DB_PATH", "volleyball_data.db")),
		TournamentBaseURL:          strings.TrimSpace(getEnv("VOLLEYBALL_TOURNAMENT_BASE_URL", "https://en.volleyballworld.com/api/v1/volley-tournament")),
		CompetitionsBaseURL:        strings.TrimSpace(getEnv("VOLLEYBALL_COMPETITIONS_BASE_URL", "https://en.volleyballworld.com/api/v1/globalschedule/competitions")),
		UserAgent:                  strings.TrimSpace(getEnv("VOLLEYBALL_USER_AGENT", "")),
		LookupTimeout:              lookupTimeout,
		RangeTimeout:               rangeTimeout,
		CompetitionsCacheTTL:       competitionsCacheTTL,
		DefaultYear:                defaultYear,
		ProbeYears:                 probeYears,
		SplitDepth:                 splitDepth,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.DBPath == "" {
		return Config{}, fmt.Errorf("DB_PATH cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
