package maintenance

import (
	"errors"
	"fmt"
)

const (
	failureErrorTemplateConstant            = "%s: %s: %v"
	gitExecutorNotConfiguredMessageConstant = "maintenance git executor not configured"
	fileSystemNotConfiguredMessageConstant  = "maintenance file system not configured"
)

// ErrGitExecutorNotConfigured indicates that a Service was constructed without a git executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)

// ErrFileSystemNotConfigured indicates that a Service was constructed without a file system.
var ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)

// FailureKind classifies a fatal maintenance failure.
type FailureKind string

// Fatal failure kinds. Every kind stops the run.
const (
	// FailureKindDirectoryUnavailable reports a repository directory that could not be entered, or an
	// original directory that could not be restored.
	FailureKindDirectoryUnavailable FailureKind = "directory_unavailable"
	// FailureKindLaunchFailed reports a subprocess that could not be started.
	FailureKindLaunchFailed FailureKind = "launch_failed"
	// FailureKindStashCountUnparsable reports stash count output that is not an integer.
	FailureKindStashCountUnparsable FailureKind = "stash_count_unparsable"
)

// FailureError describes a fatal failure while maintaining a repository.
type FailureError struct {
	Kind           FailureKind
	RepositoryPath string
	Operation      string
	Cause          error
}

func (failure FailureError) Error() string {
	return fmt.Sprintf(failureErrorTemplateConstant, failure.RepositoryPath, failure.Operation, failure.Cause)
}

func (failure FailureError) Unwrap() error {
	return failure.Cause
}
