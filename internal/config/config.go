package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "REVIEW_SCANNER_CONFIG"
	serverAddrEnv      = "SERVER_ADDR"
	sheetIDEnv         = "GOOGLE_SHEET_ID"
	credentialsFileEnv = "GOOGLE_CREDENTIALS_FILE"
	sheetNameEnv       = "GOOGLE_SHEET_NAME"
)

// Config holds process-wide settings, loaded once at startup.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Source  SourceConfig  `yaml:"source"`
	Browser BrowserConfig `yaml:"browser"`
	Sheets  SheetsConfig  `yaml:"sheets"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig describes the inbound HTTP surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// SourceConfig bounds and addresses the upstream review-listing endpoint.
type SourceConfig struct {
	BaseURL        string  `yaml:"baseUrl"`
	PageSize       int     `yaml:"pageSize"`
	MaxPages       int     `yaml:"maxPages"`
	RequestsPerSec float64 `yaml:"requestsPerSec"`
	TimeoutSeconds int     `yaml:"timeoutSeconds"`
}

// Timeout returns the per-call timeout for review page requests.
func (s SourceConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// BrowserConfig drives the headless page fetcher.
type BrowserConfig struct {
	DisableHeadless       bool `yaml:"disableHeadless"`
	NavigationTimeoutSecs int  `yaml:"navigationTimeoutSeconds"`
}

// Headless reports whether the browser should run without a window.
func (b BrowserConfig) Headless() bool {
	return !b.DisableHeadless
}

// NavigationTimeout time-boxes a single page render.
func (b BrowserConfig) NavigationTimeout() time.Duration {
	if b.NavigationTimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.NavigationTimeoutSecs) * time.Second
}

// SheetsConfig identifies the destination spreadsheet and its credentials.
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheetId"`
	SheetName       string `yaml:"sheetName"`
	CredentialsFile string `yaml:"credentialsFile"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(sheetIDEnv); v != "" {
		c.Sheets.SpreadsheetID = v
	}

	if v := os.Getenv(credentialsFileEnv); v != "" {
		c.Sheets.CredentialsFile = v
	}

	if v := os.Getenv(sheetNameEnv); v != "" {
		c.Sheets.SheetName = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if len(override.Server.AllowedOrigins) > 0 {
		base.Server.AllowedOrigins = override.Server.AllowedOrigins
	}

	if override.Source.BaseURL != "" {
		base.Source.BaseURL = override.Source.BaseURL
	}
	if override.Source.PageSize > 0 {
		base.Source.PageSize = override.Source.PageSize
	}
	if override.Source.MaxPages > 0 {
		base.Source.MaxPages = override.Source.MaxPages
	}
	if override.Source.RequestsPerSec > 0 {
		base.Source.RequestsPerSec = override.Source.RequestsPerSec
	}
	if override.Source.TimeoutSeconds > 0 {
		base.Source.TimeoutSeconds = override.Source.TimeoutSeconds
	}

	if override.Browser.NavigationTimeoutSecs > 0 {
		base.Browser.NavigationTimeoutSecs = override.Browser.NavigationTimeoutSecs
	}
	base.Browser.DisableHeadless = base.Browser.DisableHeadless || override.Browser.DisableHeadless

	if override.Sheets.SpreadsheetID != "" {
		base.Sheets.SpreadsheetID = override.Sheets.SpreadsheetID
	}
	if override.Sheets.SheetName != "" {
		base.Sheets.SheetName = override.Sheets.SheetName
	}
	if override.Sheets.CredentialsFile != "" {
		base.Sheets.CredentialsFile = override.Sheets.CredentialsFile
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8000",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Source: SourceConfig{
			BaseURL:        "https://my.daraz.pk",
			PageSize:       20,
			MaxPages:       5,
			RequestsPerSec: 2,
			TimeoutSeconds: 15,
		},
		Browser: BrowserConfig{
			NavigationTimeoutSecs: 30,
		},
		Sheets: SheetsConfig{
			SheetName: "Sheet1",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
