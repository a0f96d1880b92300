package maintenance

import (
	"github.com/temirov/gitmaint/internal/repos/shared"
)

// WorkingDirectoryScope records the process working directory before entering another one.
// Restore returns to the recorded directory and is safe to call more than once.
type WorkingDirectoryScope struct {
	fileSystem        shared.FileSystem
	originalDirectory string
	restored          bool
}

// EnterWorkingDirectory changes into targetDirectory and returns a scope that restores the
// previous directory. The working directory is unchanged when an error is returned.
func EnterWorkingDirectory(fileSystem shared.FileSystem, targetDirectory string) (*WorkingDirectoryScope, error) {
	originalDirectory, getwdError := fileSystem.Getwd()
	if getwdError != nil {
		return nil, getwdError
	}
	if chdirError := fileSystem.Chdir(targetDirectory); chdirError != nil {
		return nil, chdirError
	}
	return &WorkingDirectoryScope{fileSystem: fileSystem, originalDirectory: originalDirectory}, nil
}

// Restore changes back to the original directory.
func (scope *WorkingDirectoryScope) Restore() error {
	if scope == nil || scope.restored {
		return nil
	}
	scope.restored = true
	return scope.fileSystem.Chdir(scope.originalDirectory)
}
