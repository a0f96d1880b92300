// Package utils exposes reusable helpers consumed by the gitmaint commands.
//
// ConfigurationLoader layers the embedded defaults, configuration files, and
// GITMAINT_ environment variables through Viper. LoggerFactory builds zap loggers
// in structured or console encoding.
package utils
