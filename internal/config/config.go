package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"boxscorecli/pkg/contracts/domain"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"45s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"20"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/boxscore.log"`
}

// PipelineConfig contains the feature pipeline policies and output settings
type PipelineConfig struct {
	Pairing      domain.PairingMode   `yaml:"pairing" envconfig:"PAIRING" default:"strict"`
	HomeFlag     domain.HomeFlagMode  `yaml:"home_flag" envconfig:"HOME_FLAG" default:"strict"`
	Profile      domain.OutputProfile `yaml:"profile" envconfig:"PROFILE" default:"full"`
	OutputFormat string               `yaml:"output_format" envconfig:"OUTPUT_FORMAT" default:"csv"`
	InputDir     string               `yaml:"input_dir" envconfig:"INPUT_DIR" default:"data/input"`
	OutputDir    string               `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/output"`
	CSVBOM       bool                 `yaml:"csv_bom" envconfig:"CSV_BOM" default:"true"`
	MaxBodyBytes int64                `yaml:"max_body_bytes" envconfig:"MAX_BODY_BYTES" default:"33554432"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME" default:"boxscore-features"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
	EnableTracing  bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING" default:"false"`
	EnableMetrics  bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS" default:"true"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"stdout"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" default:"prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// Load loads configuration from environment variables and an optional YAML
// file. Values set in the environment win over the file.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, switches, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, switches, cfg, envSet)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileSwitches holds the file settings whose zero value is meaningful. A nil
// pointer means the key is absent from the file.
type fileSwitches struct {
	Security struct {
		EnableCORS *bool `yaml:"enable_cors"`
		RateLimit  struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"rate_limit"`
	} `yaml:"security"`
	Pipeline struct {
		CSVBOM *bool `yaml:"csv_bom"`
	} `yaml:"pipeline"`
	Telemetry struct {
		EnableTracing *bool    `yaml:"enable_tracing"`
		EnableMetrics *bool    `yaml:"enable_metrics"`
		SampleRatio   *float64 `yaml:"sample_ratio"`
	} `yaml:"telemetry"`
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, fileSwitches, error) {
	var switches fileSwitches

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, switches, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, switches, err
	}
	if err := yaml.Unmarshal(data, &switches); err != nil {
		return nil, switches, err
	}

	return &cfg, switches, nil
}

// envSet reports whether BOXSCORE_<key> is set in the environment
func envSet(key string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + key)
	return ok
}

// mergeConfigs overlays file values onto the env-and-default config. A field
// keeps its env value when the variable is set or the file leaves it empty.
// Booleans and the sample ratio count as set in the file when their key is present.
func mergeConfigs(fileConfig Config, switches fileSwitches, envConfig Config, isSet func(string) bool) Config {
	out := envConfig

	overlay := func(key string, fileEmpty bool, apply func()) {
		if !fileEmpty && !isSet(key) {
			apply()
		}
	}

	overlayBool := func(key string, v *bool, dst *bool) {
		if v != nil {
			overlay(key, false, func() { *dst = *v })
		}
	}

	f := fileConfig
	overlay("SERVER_PORT", f.Server.Port == 0, func() { out.Server.Port = f.Server.Port })
	overlay("SERVER_READ_TIMEOUT", f.Server.ReadTimeout == 0, func() { out.Server.ReadTimeout = f.Server.ReadTimeout })
	overlay("SERVER_WRITE_TIMEOUT", f.Server.WriteTimeout == 0, func() { out.Server.WriteTimeout = f.Server.WriteTimeout })
	overlay("SERVER_IDLE_TIMEOUT", f.Server.IdleTimeout == 0, func() { out.Server.IdleTimeout = f.Server.IdleTimeout })
	overlay("SERVER_SHUTDOWN_TIMEOUT", f.Server.ShutdownTimeout == 0, func() { out.Server.ShutdownTimeout = f.Server.ShutdownTimeout })
	overlay("SERVER_REQUEST_TIMEOUT", f.Server.RequestTimeout == 0, func() { out.Server.RequestTimeout = f.Server.RequestTimeout })
	overlay("SERVER_MAX_HEADER_BYTES", f.Server.MaxHeaderBytes == 0, func() { out.Server.MaxHeaderBytes = f.Server.MaxHeaderBytes })

	overlay("SECURITY_ALLOWED_ORIGINS", len(f.Security.AllowedOrigins) == 0, func() { out.Security.AllowedOrigins = f.Security.AllowedOrigins })
	overlay("SECURITY_RATE_LIMIT_RPS", f.Security.RateLimit.RPS == 0, func() { out.Security.RateLimit.RPS = f.Security.RateLimit.RPS })
	overlay("SECURITY_RATE_LIMIT_BURST", f.Security.RateLimit.Burst == 0, func() { out.Security.RateLimit.Burst = f.Security.RateLimit.Burst })
	overlayBool("SECURITY_ENABLE_CORS", switches.Security.EnableCORS, &out.Security.EnableCORS)
	overlayBool("SECURITY_RATE_LIMIT_ENABLED", switches.Security.RateLimit.Enabled, &out.Security.RateLimit.Enabled)

	overlay("LOGGING_LEVEL", f.Logging.Level == "", func() { out.Logging.Level = f.Logging.Level })
	overlay("LOGGING_OUTPUT", f.Logging.Output == "", func() { out.Logging.Output = f.Logging.Output })
	overlay("LOGGING_FILE_PATH", f.Logging.FilePath == "", func() { out.Logging.FilePath = f.Logging.FilePath })

	overlay("PIPELINE_PAIRING", f.Pipeline.Pairing == "", func() { out.Pipeline.Pairing = f.Pipeline.Pairing })
	overlay("PIPELINE_HOME_FLAG", f.Pipeline.HomeFlag == "", func() { out.Pipeline.HomeFlag = f.Pipeline.HomeFlag })
	overlay("PIPELINE_PROFILE", f.Pipeline.Profile == "", func() { out.Pipeline.Profile = f.Pipeline.Profile })
	overlay("PIPELINE_OUTPUT_FORMAT", f.Pipeline.OutputFormat == "", func() { out.Pipeline.OutputFormat = f.Pipeline.OutputFormat })
	overlay("PIPELINE_INPUT_DIR", f.Pipeline.InputDir == "", func() { out.Pipeline.InputDir = f.Pipeline.InputDir })
	overlay("PIPELINE_OUTPUT_DIR", f.Pipeline.OutputDir == "", func() { out.Pipeline.OutputDir = f.Pipeline.OutputDir })
	overlay("PIPELINE_MAX_BODY_BYTES", f.Pipeline.MaxBodyBytes == 0, func() { out.Pipeline.MaxBodyBytes = f.Pipeline.MaxBodyBytes })
	overlayBool("PIPELINE_CSV_BOM", switches.Pipeline.CSVBOM, &out.Pipeline.CSVBOM)

	overlay("TELEMETRY_SERVICE_NAME", f.Telemetry.ServiceName == "", func() { out.Telemetry.ServiceName = f.Telemetry.ServiceName })
	overlay("TELEMETRY_ENVIRONMENT", f.Telemetry.Environment == "", func() { out.Telemetry.Environment = f.Telemetry.Environment })
	overlay("TELEMETRY_TRACE_EXPORTER", f.Telemetry.TraceExporter == "", func() { out.Telemetry.TraceExporter = f.Telemetry.TraceExporter })
	overlay("TELEMETRY_METRIC_EXPORTER", f.Telemetry.MetricExporter == "", func() { out.Telemetry.MetricExporter = f.Telemetry.MetricExporter })
	overlayBool("TELEMETRY_ENABLE_TRACING", switches.Telemetry.EnableTracing, &out.Telemetry.EnableTracing)
	overlayBool("TELEMETRY_ENABLE_METRICS", switches.Telemetry.EnableMetrics, &out.Telemetry.EnableMetrics)
	if r := switches.Telemetry.SampleRatio; r != nil {
		overlay("TELEMETRY_SAMPLE_RATIO", false, func() { out.Telemetry.SampleRatio = *r })
	}

	return out
}

// Validate checks the configuration and normalizes the logging settings
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	switch c.Pipeline.Pairing {
	case domain.PairingStrict, domain.PairingLenient:
	default:
		return fmt.Errorf("invalid pairing mode %q: want strict or lenient", c.Pipeline.Pairing)
	}

	switch c.Pipeline.HomeFlag {
	case domain.HomeFlagStrict, domain.HomeFlagLenient:
	default:
		return fmt.Errorf("invalid home flag mode %q: want strict or lenient", c.Pipeline.HomeFlag)
	}

	switch c.Pipeline.Profile {
	case domain.ProfileFull, domain.ProfileModel:
	default:
		return fmt.Errorf("invalid output profile %q: want full or model", c.Pipeline.Profile)
	}

	if !IsOutputFormat(c.Pipeline.OutputFormat) {
		return fmt.Errorf("invalid output format %q: want one of %s", c.Pipeline.OutputFormat, strings.Join(OutputFormats, ", "))
	}

	if c.Pipeline.MaxBodyBytes <= 0 {
		return fmt.Errorf("pipeline max body bytes must be positive")
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be within [0, 1]")
	}

	// logs are always JSON
	c.Logging.Format = "json"
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// getConfigFilePath returns BOXSCORE_CONFIG or the first config.yaml found
func getConfigFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Pipeline: PipelineConfig{
			Pairing:      domain.PairingStrict,
			HomeFlag:     domain.HomeFlagStrict,
			Profile:      domain.ProfileFull,
			OutputFormat: FormatCSV,
			InputDir:     DefaultInputDir,
			OutputDir:    DefaultOutputDir,
			CSVBOM:       true,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    AppName,
			Environment:    "development",
			EnableTracing:  false,
			EnableMetrics:  true,
			TraceExporter:  "stdout",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}
