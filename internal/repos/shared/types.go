package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/gitmaint/internal/execshell"
	"github.com/temirov/gitmaint/internal/repos/discovery"
)

// FileSystem exposes filesystem operations required by repository services.
type FileSystem interface {
	Getwd() (string, error)
	Chdir(path string) error
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	ReadFile(path string) ([]byte, error)
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitPipedTo(executionContext context.Context, details execshell.CommandDetails, consumer execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// RepositoryDiscoverer locates Git repositories for bulk operations.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string, options discovery.Options) ([]string, error)
}
