package maintenance

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitmaint/internal/execshell"
	"github.com/temirov/gitmaint/internal/repos/shared"
)

const (
	gitGarbageCollectionSubcommandConstant = "gc"
	gitAggressiveFlagConstant              = "--aggressive"
	gitFetchSubcommandConstant             = "fetch"
	gitPruneFlagConstant                   = "--prune"
	gitStashSubcommandConstant             = "stash"
	gitStashListSubcommandConstant         = "list"
	wordCountLinesFlagConstant             = "-l"

	maintainingRepositoryTemplateConstant   = "Maintaining %s\n"
	wouldMaintainRepositoryTemplateConstant = "Would maintain %s\n"
	plannedCommandTemplateConstant          = "  %s\n"
	stashWarningTemplateConstant            = "%s has %d stash %s\n"
	stashEntrySingularConstant              = "entry"
	stashEntryPluralConstant                = "entries"

	resolveDirectoryOperationConstant = "resolve repository directory"
	enterDirectoryOperationConstant   = "enter repository directory"
	restoreDirectoryOperationConstant = "restore working directory"
	parseStashCountOperationConstant  = "parse stash count"

	repositoryMaintenanceStartedMessageConstant   = "Repository maintenance started"
	repositoryMaintenanceCompletedMessageConstant = "Repository maintenance completed"
	nonZeroExitContinuesMessageConstant           = "Continuing after non-zero exit status"
	logFieldRepositoryConstant                    = "repository"
	logFieldDirectoryConstant                     = "directory"
	logFieldStashCountConstant                    = "stash_count"
	logFieldCommandConstant                       = "command"
	logFieldExitCodeConstant                      = "exit_code"
)

// Options configures how each repository is maintained.
type Options struct {
	// RemoteName is passed to git fetch; empty selects git's default remote.
	RemoteName string
	// DryRun prints the planned commands without entering directories or running them.
	DryRun bool
}

// Service runs the maintenance sequence on repositories one at a time.
type Service struct {
	logger      *zap.Logger
	gitExecutor shared.GitExecutor
	fileSystem  shared.FileSystem
	reporter    shared.Reporter
}

// NewService constructs a Service. A nil logger or reporter falls back to a no-op logger and stdout.
func NewService(logger *zap.Logger, gitExecutor shared.GitExecutor, fileSystem shared.FileSystem, reporter shared.Reporter) (*Service, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &Service{logger: logger, gitExecutor: gitExecutor, fileSystem: fileSystem, reporter: reporter}, nil
}

// Maintain maintains repositories in order and stops at the first fatal failure.
func (service *Service) Maintain(executionContext context.Context, repositories []string, options Options) error {
	for _, repositoryPath := range repositories {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		if maintenanceError := service.MaintainRepository(executionContext, repositoryPath, options); maintenanceError != nil {
			return maintenanceError
		}
	}
	return nil
}

// MaintainRepository enters repositoryPath, runs gc, fetch --prune, and the stash count, then
// restores the previous working directory on every path out. Non-zero exit statuses from git
// are logged and do not stop the sequence.
func (service *Service) MaintainRepository(executionContext context.Context, repositoryPath string, options Options) (maintenanceError error) {
	if options.DryRun {
		service.reportPlan(repositoryPath, options)
		return nil
	}

	service.reporter.Printf(maintainingRepositoryTemplateConstant, repositoryPath)

	repositoryDirectory, absError := service.fileSystem.Abs(repositoryPath)
	if absError != nil {
		return FailureError{Kind: FailureKindDirectoryUnavailable, RepositoryPath: repositoryPath, Operation: resolveDirectoryOperationConstant, Cause: absError}
	}

	scope, enterError := EnterWorkingDirectory(service.fileSystem, repositoryDirectory)
	if enterError != nil {
		return FailureError{Kind: FailureKindDirectoryUnavailable, RepositoryPath: repositoryPath, Operation: enterDirectoryOperationConstant, Cause: enterError}
	}
	defer func() {
		restoreError := scope.Restore()
		if restoreError != nil && maintenanceError == nil {
			maintenanceError = FailureError{Kind: FailureKindDirectoryUnavailable, RepositoryPath: repositoryPath, Operation: restoreDirectoryOperationConstant, Cause: restoreError}
		}
	}()

	service.logger.Info(repositoryMaintenanceStartedMessageConstant,
		zap.String(logFieldRepositoryConstant, repositoryPath),
		zap.String(logFieldDirectoryConstant, repositoryDirectory),
	)

	for _, step := range []execshell.ShellCommand{garbageCollectionCommand(repositoryDirectory), fetchPruneCommand(repositoryDirectory, options.RemoteName)} {
		if stepError := service.runStep(executionContext, repositoryPath, step); stepError != nil {
			return stepError
		}
	}

	stashCount, stashError := service.countStashEntries(executionContext, repositoryPath, repositoryDirectory)
	if stashError != nil {
		return stashError
	}
	if stashCount > 0 {
		service.reporter.Printf(stashWarningTemplateConstant, repositoryPath, stashCount, stashEntryNoun(stashCount))
	}

	service.logger.Info(repositoryMaintenanceCompletedMessageConstant,
		zap.String(logFieldRepositoryConstant, repositoryPath),
		zap.Int(logFieldStashCountConstant, stashCount),
	)
	return nil
}

// runStep runs a git command with inherited output. Only a launch failure is fatal.
func (service *Service) runStep(executionContext context.Context, repositoryPath string, command execshell.ShellCommand) error {
	_, executionError := service.gitExecutor.ExecuteGit(executionContext, command.Details)
	if executionError == nil {
		return nil
	}

	var commandFailed execshell.CommandFailedError
	if errors.As(executionError, &commandFailed) {
		service.logger.Debug(nonZeroExitContinuesMessageConstant,
			zap.String(logFieldRepositoryConstant, repositoryPath),
			zap.String(logFieldCommandConstant, command.String()),
			zap.Int(logFieldExitCodeConstant, commandFailed.Result.ExitCode),
		)
		return nil
	}

	return FailureError{Kind: FailureKindLaunchFailed, RepositoryPath: repositoryPath, Operation: command.String(), Cause: executionError}
}

// countStashEntries pipes git stash list into wc -l and parses the line count. The count is
// read even when the pipeline exits non-zero.
func (service *Service) countStashEntries(executionContext context.Context, repositoryPath string, repositoryDirectory string) (int, error) {
	command := stashCountCommand(repositoryDirectory)

	executionResult, executionError := service.gitExecutor.ExecuteGitPipedTo(executionContext, command.Details, *command.PipeTo)
	if executionError != nil {
		var commandFailed execshell.CommandFailedError
		if !errors.As(executionError, &commandFailed) {
			return 0, FailureError{Kind: FailureKindLaunchFailed, RepositoryPath: repositoryPath, Operation: command.String(), Cause: executionError}
		}
		executionResult = commandFailed.Result
	}

	stashCount, parseError := strconv.Atoi(strings.TrimSpace(executionResult.StandardOutput))
	if parseError != nil {
		return 0, FailureError{Kind: FailureKindStashCountUnparsable, RepositoryPath: repositoryPath, Operation: parseStashCountOperationConstant, Cause: parseError}
	}
	return stashCount, nil
}

func (service *Service) reportPlan(repositoryPath string, options Options) {
	service.reporter.Printf(wouldMaintainRepositoryTemplateConstant, repositoryPath)
	for _, command := range PlannedCommands(repositoryPath, options) {
		service.reporter.Printf(plannedCommandTemplateConstant, command.String())
	}
}

// PlannedCommands lists the commands MaintainRepository runs for a repository.
func PlannedCommands(repositoryDirectory string, options Options) []execshell.ShellCommand {
	return []execshell.ShellCommand{
		garbageCollectionCommand(repositoryDirectory),
		fetchPruneCommand(repositoryDirectory, options.RemoteName),
		stashCountCommand(repositoryDirectory),
	}
}

func garbageCollectionCommand(repositoryDirectory string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{gitGarbageCollectionSubcommandConstant, gitAggressiveFlagConstant},
			WorkingDirectory: repositoryDirectory,
			InheritOutput:    true,
		},
	}
}

func fetchPruneCommand(repositoryDirectory string, remoteName string) execshell.ShellCommand {
	arguments := []string{gitFetchSubcommandConstant, gitPruneFlagConstant}
	if trimmedRemote := strings.TrimSpace(remoteName); len(trimmedRemote) > 0 {
		arguments = append(arguments, trimmedRemote)
	}
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: repositoryDirectory,
			InheritOutput:    true,
		},
	}
}

func stashCountCommand(repositoryDirectory string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{gitStashSubcommandConstant, gitStashListSubcommandConstant},
			WorkingDirectory: repositoryDirectory,
		},
		PipeTo: &execshell.ShellCommand{
			Name:    execshell.CommandWordCount,
			Details: execshell.CommandDetails{Arguments: []string{wordCountLinesFlagConstant}},
		},
	}
}

func stashEntryNoun(stashCount int) string {
	if stashCount == 1 {
		return stashEntrySingularConstant
	}
	return stashEntryPluralConstant
}
