// Package config provides configuration management for the box-score feature
// pipeline and its HTTP server.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML file named by BOXSCORE_CONFIG, or ./config.yaml
//	3. Default values from struct tags (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern BOXSCORE_<SECTION>_<FIELD>:
//
//	BOXSCORE_SERVER_PORT=8080
//	BOXSCORE_PIPELINE_PAIRING=lenient
//	BOXSCORE_PIPELINE_PROFILE=model
//	BOXSCORE_LOGGING_LEVEL=debug
//	BOXSCORE_TELEMETRY_ENABLE_TRACING=true
//
// # Paths
//
// Paths resolves the pipeline input and output directories against a base
// directory, the executable's directory when obtained through GetPaths.
package config
