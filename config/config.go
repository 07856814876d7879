package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the offer pipeline itself, the optional run log in PostgreSQL, the HTTP API and logging.
//
// Example ENV equivalent:
//
//	OFER_SIDE=CPA
//	OFER_INPUT_PATH=./data/input/OFER_CPA_20181116.txt
//	OFER_OUTPUT_TARGET=CPA
//	OFER_CPA_OUTPUT_PATH=./data/output/CPA/OFER_CPA_20181005.csv
//	OFER_SYMBOLS=PETR4,VALE3
//	RUNLOG_ENABLED=true
//	POSTGRES_HOST=localhost
type Config struct {
	Offers   OffersConfig   // Offer-book filter pipeline settings
	RunLog   RunLogConfig   // Whether processed files are recorded in PostgreSQL
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Log      LogConfig      // Logger level and format
}

// OffersConfig describes one filter-and-project run over an OFER file.
//
// CPAOutputPath and VDAOutputPath are both kept as named targets; OutputTarget
// selects which of them a single-file run writes to.
type OffersConfig struct {
	Side          string
	InputPath     string
	OutputTarget  string
	CPAOutputPath string
	VDAOutputPath string
	InputDir      string
	OutputDir     string
	Delimiter     string
	HeaderLines   int
	Symbols       []string
	SymbolWidth   int
	SymbolMatch   string
	DropColumns   []string // empty means the side's default drop-list
	OutputFormat  string
}

// OutputPath returns the configured path of the selected output target.
func (o OffersConfig) OutputPath() string {
	if strings.EqualFold(o.OutputTarget, "VDA") {
		return o.VDAOutputPath
	}
	return o.CPAOutputPath
}

// RunLogConfig toggles persistence of processed runs.
type RunLogConfig struct {
	Enabled bool
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// LogConfig is read by logger.Init.
type LogConfig struct {
	Level  string
	Pretty bool
}

// DefaultSymbols is the instrument allow-list used when OFER_SYMBOLS is unset.
var DefaultSymbols = []string{
	"SUZB3", "MGLU3", "FIBR3", "BTOW3", "VALE3",
	"BRKM5", "EMBR3", "PETR4", "CPFE3", "KLBN4",
	"BRFS3", "KROT3", "ELET6", "QUAL3", "UGPA3",
	"ECOR3", "ELET3", "CCRO3", "SBSP3", "GOLL4",
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// It returns an error naming every missing or invalid key; AppConfig is
// populated either way so callers can still log with it.
func LoadConfig() error {
	v := viper.New()
	setDefaults(v)

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore error if no .env

	v.AutomaticEnv()

	AppConfig = Config{
		Offers: OffersConfig{
			Side:          strings.ToUpper(strings.TrimSpace(v.GetString("OFER_SIDE"))),
			InputPath:     v.GetString("OFER_INPUT_PATH"),
			OutputTarget:  strings.ToUpper(strings.TrimSpace(v.GetString("OFER_OUTPUT_TARGET"))),
			CPAOutputPath: v.GetString("OFER_CPA_OUTPUT_PATH"),
			VDAOutputPath: v.GetString("OFER_VDA_OUTPUT_PATH"),
			InputDir:      v.GetString("OFER_INPUT_DIR"),
			OutputDir:     v.GetString("OFER_OUTPUT_DIR"),
			Delimiter:     v.GetString("OFER_DELIMITER"),
			HeaderLines:   v.GetInt("OFER_HEADER_LINES"),
			Symbols:       getList(v, "OFER_SYMBOLS"),
			SymbolWidth:   v.GetInt("OFER_SYMBOL_WIDTH"),
			SymbolMatch:   strings.ToLower(strings.TrimSpace(v.GetString("OFER_SYMBOL_MATCH"))),
			DropColumns:   getList(v, "OFER_DROP_COLUMNS"),
			OutputFormat:  strings.ToLower(strings.TrimSpace(v.GetString("OFER_OUTPUT_FORMAT"))),
		},
		RunLog: RunLogConfig{
			Enabled: v.GetBool("RUNLOG_ENABLED"),
		},
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	return validateConfig(AppConfig)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "b3ofer")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	v.SetDefault("RUNLOG_ENABLED", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.SetDefault("OFER_SIDE", "CPA")
	v.SetDefault("OFER_INPUT_PATH", "./data/input/OFER_CPA_20181116.txt")
	v.SetDefault("OFER_OUTPUT_TARGET", "CPA")
	v.SetDefault("OFER_CPA_OUTPUT_PATH", "./data/output/CPA/OFER_CPA_20181005.csv")
	v.SetDefault("OFER_VDA_OUTPUT_PATH", "./data/output/VDA/OFER_VDA_20181122.csv")
	v.SetDefault("OFER_INPUT_DIR", "./data/input")
	v.SetDefault("OFER_OUTPUT_DIR", "./data/output")
	v.SetDefault("OFER_DELIMITER", ";")
	v.SetDefault("OFER_HEADER_LINES", 1)
	v.SetDefault("OFER_SYMBOLS", DefaultSymbols)
	v.SetDefault("OFER_SYMBOL_WIDTH", 50)
	v.SetDefault("OFER_SYMBOL_MATCH", "exact")
	v.SetDefault("OFER_DROP_COLUMNS", []string{})
	v.SetDefault("OFER_OUTPUT_FORMAT", "csv")
}

// getList accepts both slice defaults and comma-separated env values.
// Entries are trimmed and empty ones dropped.
func getList(v *viper.Viper, key string) []string {
	var raw []string
	switch val := v.Get(key).(type) {
	case []string:
		raw = val
	case string:
		raw = strings.Split(val, ",")
	default:
		raw = v.GetStringSlice(key)
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// validateConfig collects every problem instead of stopping at the first one.
func validateConfig(cfg Config) error {
	var problems []string

	o := cfg.Offers
	if o.Side != "CPA" && o.Side != "VDA" {
		problems = append(problems, fmt.Sprintf("OFER_SIDE must be CPA or VDA, got %q", o.Side))
	}
	if o.OutputTarget != "CPA" && o.OutputTarget != "VDA" {
		problems = append(problems, fmt.Sprintf("OFER_OUTPUT_TARGET must be CPA or VDA, got %q", o.OutputTarget))
	}
	if o.OutputPath() == "" {
		problems = append(problems, "OFER_"+o.OutputTarget+"_OUTPUT_PATH")
	}
	if len([]rune(o.Delimiter)) != 1 {
		problems = append(problems, fmt.Sprintf("OFER_DELIMITER must be a single character, got %q", o.Delimiter))
	}
	if o.HeaderLines < 0 {
		problems = append(problems, "OFER_HEADER_LINES must be >= 0")
	}
	if len(o.Symbols) == 0 {
		problems = append(problems, "OFER_SYMBOLS")
	}
	if o.SymbolWidth < 0 {
		problems = append(problems, "OFER_SYMBOL_WIDTH must be >= 0")
	}
	if o.SymbolMatch != "exact" && o.SymbolMatch != "trim" {
		problems = append(problems, fmt.Sprintf("OFER_SYMBOL_MATCH must be exact or trim, got %q", o.SymbolMatch))
	}
	if o.OutputFormat != "csv" && o.OutputFormat != "xlsx" {
		problems = append(problems, fmt.Sprintf("OFER_OUTPUT_FORMAT must be csv or xlsx, got %q", o.OutputFormat))
	}

	if cfg.Server.Port == "" {
		problems = append(problems, "SERVER_PORT")
	}
	if cfg.RunLog.Enabled {
		if cfg.Postgres.Host == "" {
			problems = append(problems, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			problems = append(problems, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			problems = append(problems, "POSTGRES_USER")
		}
		if cfg.Postgres.DBName == "" {
			problems = append(problems, "POSTGRES_DB")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
