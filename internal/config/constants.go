package config

import "time"

// Application constants
const (
	AppName    = "boxscore-features"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. BOXSCORE_SERVER_PORT
	EnvPrefix = "BOXSCORE"
	// ConfigFileEnv names the optional YAML config file
	ConfigFileEnv = "BOXSCORE_CONFIG"

	// Rate Limiting
	DefaultRateLimit = 20 // requests per second
	DefaultBurstSize = 10

	// Timeouts
	DefaultRequestTimeout = 45 * time.Second

	// Request limits
	DefaultMaxBodyBytes = 32 << 20

	// File Paths (relative to the base directory)
	DefaultDataDir   = "data"
	DefaultInputDir  = "data/input"
	DefaultOutputDir = "data/output"
	DefaultLogsDir   = "logs"
	DefaultLogFile   = "logs/boxscore.log"

	// Log Settings
	DefaultLogLevel = "info"

	// Input file name patterns. The period token must appear in the base name.
	HalfFilePattern         = `(?i)(^|[_\-. ])(half|1h|first[_\- ]?half)([_\-. ]|$)`
	ThirdQuarterFilePattern = `(?i)(^|[_\-. ])(3q|q3|third[_\- ]?quarter)([_\-. ]|$)`

	// API Endpoints
	APIBasePath      = "/api/v1"
	FeaturesEndpoint = "/api/v1/features"
	HealthEndpoint   = "/api/health"
	MetricsEndpoint  = "/metrics"
)

// Output formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// OutputFormats lists every supported output format
var OutputFormats = []string{FormatCSV, FormatXLSX, FormatJSON}

// IsOutputFormat reports whether f names a supported output format
func IsOutputFormat(f string) bool {
	for _, o := range OutputFormats {
		if f == o {
			return true
		}
	}
	return false
}
