package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	logFormatContextKeyConstant             = commandContextKey("logFormat")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return context.WithValue(accessor.ensureContext(parentContext), configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, available := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	return configurationFilePath, available
}

// WithLogFormat records the active log format so commands can pick console event rendering.
func (accessor CommandContextAccessor) WithLogFormat(parentContext context.Context, logFormat LogFormat) context.Context {
	return context.WithValue(accessor.ensureContext(parentContext), logFormatContextKeyConstant, logFormat)
}

// LogFormat extracts the active log format from the provided context.
func (accessor CommandContextAccessor) LogFormat(executionContext context.Context) (LogFormat, bool) {
	if executionContext == nil {
		return "", false
	}
	logFormat, available := executionContext.Value(logFormatContextKeyConstant).(LogFormat)
	return logFormat, available
}

func (accessor CommandContextAccessor) ensureContext(parentContext context.Context) context.Context {
	if parentContext == nil {
		return context.Background()
	}
	return parentContext
}
