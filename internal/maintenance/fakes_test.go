package maintenance_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/temirov/gitmaint/internal/execshell"
	"github.com/temirov/gitmaint/internal/repos/discovery"
)

var errFakeDirectoryMissing = errors.New("no such directory")

type recordedInvocation struct {
	command          string
	workingDirectory string
	processDirectory string
	inheritOutput    bool
}

type stepOutcome struct {
	result execshell.ExecutionResult
	err    error
}

// fakeGitExecutor records invocations and replies with canned outcomes keyed by git subcommand.
type fakeGitExecutor struct {
	fileSystem   *fakeFileSystem
	outcomes     map[string]stepOutcome
	stashOutput  string
	invocations  []recordedInvocation
	stashOutcome *stepOutcome
}

func (executor *fakeGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	command := execshell.ShellCommand{Name: execshell.CommandGit, Details: details}
	executor.record(command)
	outcome, configured := executor.outcomes[details.Arguments[0]]
	if !configured {
		return execshell.ExecutionResult{}, nil
	}
	return outcome.result, outcome.err
}

func (executor *fakeGitExecutor) ExecuteGitPipedTo(_ context.Context, details execshell.CommandDetails, consumer execshell.ShellCommand) (execshell.ExecutionResult, error) {
	command := execshell.ShellCommand{Name: execshell.CommandGit, Details: details, PipeTo: &consumer}
	executor.record(command)
	if executor.stashOutcome != nil {
		return executor.stashOutcome.result, executor.stashOutcome.err
	}
	output := executor.stashOutput
	if len(output) == 0 {
		output = "0\n"
	}
	return execshell.ExecutionResult{StandardOutput: output}, nil
}

func (executor *fakeGitExecutor) record(command execshell.ShellCommand) {
	processDirectory := ""
	if executor.fileSystem != nil {
		processDirectory = executor.fileSystem.currentDirectory
	}
	executor.invocations = append(executor.invocations, recordedInvocation{
		command:          command.String(),
		workingDirectory: command.Details.WorkingDirectory,
		processDirectory: processDirectory,
		inheritOutput:    command.Details.InheritOutput,
	})
}

func (executor *fakeGitExecutor) commands() []string {
	commands := make([]string, 0, len(executor.invocations))
	for _, invocation := range executor.invocations {
		commands = append(commands, invocation.command)
	}
	return commands
}

// fakeFileSystem tracks a virtual working directory. Directories listed in missingDirectories cannot be entered.
type fakeFileSystem struct {
	currentDirectory   string
	missingDirectories map[string]struct{}
	chdirHistory       []string
	files              map[string]string
}

func newFakeFileSystem(currentDirectory string, missingDirectories ...string) *fakeFileSystem {
	missing := make(map[string]struct{}, len(missingDirectories))
	for _, directory := range missingDirectories {
		missing[directory] = struct{}{}
	}
	return &fakeFileSystem{currentDirectory: currentDirectory, missingDirectories: missing, files: map[string]string{}}
}

func (fileSystem *fakeFileSystem) Getwd() (string, error) {
	return fileSystem.currentDirectory, nil
}

func (fileSystem *fakeFileSystem) Chdir(path string) error {
	if _, missing := fileSystem.missingDirectories[path]; missing {
		return &fs.PathError{Op: "chdir", Path: path, Err: errFakeDirectoryMissing}
	}
	fileSystem.chdirHistory = append(fileSystem.chdirHistory, path)
	fileSystem.currentDirectory = path
	return nil
}

func (fileSystem *fakeFileSystem) Stat(path string) (fs.FileInfo, error) {
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (fileSystem *fakeFileSystem) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(fileSystem.currentDirectory, path), nil
}

func (fileSystem *fakeFileSystem) ReadFile(path string) ([]byte, error) {
	contents, exists := fileSystem.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(contents), nil
}

type recordingDiscoverer struct {
	roots        []string
	options      discovery.Options
	repositories []string
	calls        int
}

func (discoverer *recordingDiscoverer) DiscoverRepositories(roots []string, options discovery.Options) ([]string, error) {
	discoverer.calls++
	discoverer.roots = append([]string{}, roots...)
	discoverer.options = options
	return discoverer.repositories, nil
}

func joinLines(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
