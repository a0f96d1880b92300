package discovery

import (
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	currentDirectoryConstant         = "."
)

// Depth limits, counted in path segments below a root. A root's child directory is at
// depth 1 and that child's metadata directory at depth 2.
const (
	// UnboundedDepth disables the depth limit.
	UnboundedDepth = 0
	// ImmediateChildrenDepth finds the root itself and its direct children.
	ImmediateChildrenDepth = 2
)

// Options configures repository discovery.
type Options struct {
	MaxDepth int
}

// OptionsForRecursion maps the recursive switch onto a depth limit.
func OptionsForRecursion(recursive bool) Options {
	if recursive {
		return Options{MaxDepth: UnboundedDepth}
	}
	return Options{MaxDepth: ImmediateChildrenDepth}
}

// FilesystemRepositoryDiscoverer locates git repositories on disk.
type FilesystemRepositoryDiscoverer struct{}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// DiscoverRepositories walks the provided roots and returns, in traversal order, the parent
// of every .git directory found within the depth limit. A symlinked root is followed and results
// are reported under the root as given. Unreadable entries are skipped.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string, options Options) ([]string, error) {
	seen := make(map[string]struct{})
	var repositories []string

	for _, root := range roots {
		walkRoot := resolveRoot(root)
		walkError := filepath.WalkDir(walkRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				return nil
			}

			depth := entryDepth(walkRoot, path)
			if options.MaxDepth != UnboundedDepth && depth > options.MaxDepth {
				if directoryEntry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if directoryEntry.Name() != gitMetadataDirectoryNameConstant {
				if directoryEntry.IsDir() && options.MaxDepth != UnboundedDepth && depth == options.MaxDepth {
					return fs.SkipDir
				}
				return nil
			}

			if !directoryEntry.IsDir() {
				return nil
			}

			resolvedRepositoryPath := filepath.Dir(path)
			if _, alreadySeen := seen[resolvedRepositoryPath]; !alreadySeen {
				seen[resolvedRepositoryPath] = struct{}{}
				repositories = append(repositories, reportedPath(root, walkRoot, resolvedRepositoryPath))
			}

			return fs.SkipDir
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	return repositories, nil
}

// resolveRoot follows a symlinked root so the walk enters it. Links below the root are not followed.
func resolveRoot(root string) string {
	resolvedRoot, resolveError := filepath.EvalSymlinks(root)
	if resolveError != nil {
		return root
	}
	return resolvedRoot
}

// reportedPath expresses a repository found under walkRoot relative to the root as given.
func reportedPath(root string, walkRoot string, repositoryPath string) string {
	if walkRoot == root {
		return repositoryPath
	}
	relativePath, relativeError := filepath.Rel(walkRoot, repositoryPath)
	if relativeError != nil {
		return repositoryPath
	}
	return filepath.Join(root, relativePath)
}

func entryDepth(root string, path string) int {
	relativePath, relativeError := filepath.Rel(root, path)
	if relativeError != nil || relativePath == currentDirectoryConstant {
		return 0
	}
	return strings.Count(relativePath, string(filepath.Separator)) + 1
}
