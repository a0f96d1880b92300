package maintenance

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitmaint/internal/execshell"
	"github.com/temirov/gitmaint/internal/repos/dependencies"
	"github.com/temirov/gitmaint/internal/repos/shared"
	"github.com/temirov/gitmaint/internal/repos/sources"
	"github.com/temirov/gitmaint/internal/ui"
	"github.com/temirov/gitmaint/internal/utils"
	flagutils "github.com/temirov/gitmaint/internal/utils/flags"
)

const (
	maintainCommandUseConstant              = "gitmaint [root]"
	maintainCommandShortDescriptionConstant = "Run git maintenance across local repositories"
	maintainCommandLongDescriptionConstant  = "gitmaint finds Git working copies under a root directory, or takes them from --repositories or --file, and runs git gc --aggressive, git fetch --prune, and a stash count in each one. Without --recursive only the root and its immediate children are checked."
	listCommandUseConstant                  = "list [root]"
	listCommandShortDescriptionConstant     = "Print the repositories gitmaint would maintain"
	noRepositoriesFoundMessageConstant      = "No Git repositories found.\n"
	listedRepositoryTemplateConstant        = "%s\n"
	maximumPositionalArgumentsConstant      = 1
	repositoriesResolvedMessageConstant     = "repositories resolved"
	logFieldConfigurationFileConstant       = "config_file"
	logFieldRepositoryCountConstant         = "repository_count"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the maintenance configuration after it has been loaded.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the maintenance cobra commands with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  shared.GitExecutor
	FileSystem                   shared.FileSystem
	Discoverer                   shared.RepositoryDiscoverer

	sourceFlagValues    *flagutils.RepositorySourceFlagValues
	executionFlagValues *flagutils.ExecutionFlagValues
}

// Build constructs the maintenance command with its list subcommand. The repository
// selection flags are persistent so both commands accept them.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           maintainCommandUseConstant,
		Short:         maintainCommandShortDescriptionConstant,
		Long:          maintainCommandLongDescriptionConstant,
		Args:          cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.runMaintain,
	}

	builder.sourceFlagValues = flagutils.BindRepositorySourceFlags(command, flagutils.RepositorySourceFlagValues{})
	builder.executionFlagValues = flagutils.BindExecutionFlags(command, flagutils.ExecutionFlagValues{})

	command.AddCommand(&cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.runList,
	})

	return command, nil
}

func (builder *CommandBuilder) runMaintain(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration(command, arguments)
	logger := builder.resolveLogger()

	repositories, resolveError := builder.resolveRepositories(command, logger, configuration)
	if resolveError != nil {
		return resolveError
	}

	reporter := shared.NewWriterReporter(utils.NewFlushingWriter(command.OutOrStdout()))
	if len(repositories) == 0 {
		reporter.Printf(noRepositoriesFoundMessageConstant)
		return nil
	}

	gitExecutor, executorError := builder.resolveGitExecutor(command, logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, gitExecutor, dependencies.ResolveFileSystem(builder.FileSystem), reporter)
	if serviceError != nil {
		return serviceError
	}

	return service.Maintain(command.Context(), repositories, Options{RemoteName: configuration.Remote, DryRun: configuration.DryRun})
}

func (builder *CommandBuilder) runList(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration(command, arguments)

	repositories, resolveError := builder.resolveRepositories(command, builder.resolveLogger(), configuration)
	if resolveError != nil {
		return resolveError
	}

	reporter := shared.NewWriterReporter(command.OutOrStdout())
	if len(repositories) == 0 {
		reporter.Printf(noRepositoriesFoundMessageConstant)
		return nil
	}
	for _, repositoryPath := range repositories {
		reporter.Printf(listedRepositoryTemplateConstant, repositoryPath)
	}
	return nil
}

func (builder *CommandBuilder) resolveRepositories(command *cobra.Command, logger *zap.Logger, configuration CommandConfiguration) ([]string, error) {
	resolver := sources.NewResolver(logger, builder.FileSystem, builder.Discoverer)
	resolution, resolveError := resolver.Resolve(command.Context(), sources.Options{
		Root:           configuration.Root,
		Recursive:      configuration.Recursive,
		Repositories:   configuration.Repositories,
		RepositoryFile: configuration.RepositoryFile,
	})
	if resolveError != nil {
		return nil, resolveError
	}

	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Debug(repositoriesResolvedMessageConstant,
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
		zap.Int(logFieldRepositoryCountConstant, len(resolution.Repositories)),
	)
	return resolution.Repositories, nil
}

// resolveConfiguration layers explicit flags and the positional root over the loaded configuration.
func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command, arguments []string) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	overrides := flagutils.ExplicitRepositorySourceValues(command, builder.sourceFlagValues)
	if overrides.Recursive != nil {
		configuration.Recursive = *overrides.Recursive
	}
	if overrides.Repositories != nil {
		configuration.Repositories = overrides.Repositories
	}
	if overrides.RepositoryFile != nil {
		configuration.RepositoryFile = *overrides.RepositoryFile
	}
	if overrides.Remote != nil {
		configuration.Remote = *overrides.Remote
	}
	if dryRun := flagutils.ExplicitDryRun(command, builder.executionFlagValues); dryRun != nil {
		configuration.DryRun = *dryRun
	}
	if len(arguments) > 0 {
		configuration.Root = arguments[0]
	}

	return configuration.sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// resolveGitExecutor renders command events through the console logger in human-readable mode
// and keeps the structured lifecycle logs otherwise.
func (builder *CommandBuilder) resolveGitExecutor(command *cobra.Command, logger *zap.Logger) (shared.GitExecutor, error) {
	if !builder.humanReadableLoggingEnabled(command) {
		return dependencies.ResolveGitExecutor(builder.GitExecutor, logger)
	}
	var observer execshell.CommandEventObserver = ui.NewConsoleCommandEventLogger(logger)
	return dependencies.ResolveGitExecutor(builder.GitExecutor, zap.NewNop(), observer)
}

func (builder *CommandBuilder) humanReadableLoggingEnabled(command *cobra.Command) bool {
	if builder.HumanReadableLoggingProvider != nil {
		return builder.HumanReadableLoggingProvider()
	}
	logFormat, available := utils.NewCommandContextAccessor().LogFormat(command.Context())
	return available && logFormat == utils.LogFormatConsole
}
