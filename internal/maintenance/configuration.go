package maintenance

import "strings"

const (
	configurationRootKeyConstant           = "root"
	configurationRecursiveKeyConstant      = "recursive"
	configurationRepositoriesKeyConstant   = "repositories"
	configurationRepositoryFileKeyConstant = "repository_file"
	configurationRemoteKeyConstant         = "remote"
	configurationDryRunKeyConstant         = "dry_run"
	configurationKeySeparatorConstant      = "."
	defaultRootConstant                    = "."
)

// CommandConfiguration captures persistent settings for the maintenance commands.
type CommandConfiguration struct {
	Root           string   `mapstructure:"root"`
	Recursive      bool     `mapstructure:"recursive"`
	Repositories   []string `mapstructure:"repositories"`
	RepositoryFile string   `mapstructure:"repository_file"`
	Remote         string   `mapstructure:"remote"`
	DryRun         bool     `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration returns baseline configuration values for the maintenance commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Root: defaultRootConstant}
}

// DefaultConfigurationValues exposes the default configuration keyed for Viper under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		qualifyConfigurationKey(prefix, configurationRootKeyConstant):           defaults.Root,
		qualifyConfigurationKey(prefix, configurationRecursiveKeyConstant):      defaults.Recursive,
		qualifyConfigurationKey(prefix, configurationRepositoriesKeyConstant):   []string{},
		qualifyConfigurationKey(prefix, configurationRepositoryFileKeyConstant): defaults.RepositoryFile,
		qualifyConfigurationKey(prefix, configurationRemoteKeyConstant):         defaults.Remote,
		qualifyConfigurationKey(prefix, configurationDryRunKeyConstant):         defaults.DryRun,
	}
}

func qualifyConfigurationKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Root = strings.TrimSpace(configuration.Root)
	if len(sanitized.Root) == 0 {
		sanitized.Root = defaultRootConstant
	}
	sanitized.RepositoryFile = strings.TrimSpace(configuration.RepositoryFile)
	sanitized.Remote = strings.TrimSpace(configuration.Remote)
	sanitized.Repositories = append([]string(nil), configuration.Repositories...)
	return sanitized
}
