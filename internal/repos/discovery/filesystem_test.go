package discovery_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitmaint/internal/repos/discovery"
)

const (
	developerDirectoryName             = "Dev"
	engineeringGroupDirectoryName      = "Group1"
	applicationRepositoryDirectoryName = "Repo1"
	serviceRepositoryDirectoryName     = "Repo2"
	toolsRepositoryDirectoryName       = "Repo3"
	gitMetadataDirectoryName           = ".git"
	repositoryDirectoryPermissions     = 0o755
	repositoryFilePermissions          = 0o644
)

type repositoryDefinition struct {
	directorySegments []string
}

func (definition repositoryDefinition) repositoryPath(rootDirectory string) string {
	segments := append([]string{rootDirectory}, definition.directorySegments...)
	return filepath.Join(segments...)
}

func (definition repositoryDefinition) gitMetadataPath(rootDirectory string) string {
	segments := append([]string{rootDirectory}, definition.directorySegments...)
	segments = append(segments, gitMetadataDirectoryName)
	return filepath.Join(segments...)
}

func createRepositories(testFramework *testing.T, rootDirectory string, definitions []repositoryDefinition) {
	testFramework.Helper()
	for _, definition := range definitions {
		creationError := os.MkdirAll(definition.gitMetadataPath(rootDirectory), repositoryDirectoryPermissions)
		require.NoError(testFramework, creationError)
	}
}

func expectedPaths(rootDirectory string, definitions []repositoryDefinition) []string {
	paths := make([]string, 0, len(definitions))
	for _, definition := range definitions {
		paths = append(paths, definition.repositoryPath(rootDirectory))
	}
	return paths
}

func TestFilesystemRepositoryDiscovererHonorsDepth(testFramework *testing.T) {
	shallowRepository := repositoryDefinition{directorySegments: []string{"a"}}
	nestedRepository := repositoryDefinition{directorySegments: []string{"b", "nested"}}
	deepRepository := repositoryDefinition{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, applicationRepositoryDirectoryName}}
	allRepositories := []repositoryDefinition{shallowRepository, nestedRepository, deepRepository}

	testCases := []struct {
		name                 string
		options              discovery.Options
		expectedRepositories []repositoryDefinition
	}{
		{
			name:                 "non_recursive_returns_immediate_children",
			options:              discovery.OptionsForRecursion(false),
			expectedRepositories: []repositoryDefinition{shallowRepository},
		},
		{
			name:                 "recursive_returns_every_depth",
			options:              discovery.OptionsForRecursion(true),
			expectedRepositories: []repositoryDefinition{deepRepository, shallowRepository, nestedRepository},
		},
		{
			name:                 "explicit_depth_three",
			options:              discovery.Options{MaxDepth: 3},
			expectedRepositories: []repositoryDefinition{shallowRepository, nestedRepository},
		},
	}

	for _, testCase := range testCases {
		testFramework.Run(testCase.name, func(testFramework *testing.T) {
			rootDirectory := testFramework.TempDir()
			createRepositories(testFramework, rootDirectory, allRepositories)

			discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories([]string{rootDirectory}, testCase.options)
			require.NoError(testFramework, discoveryError)
			require.Equal(testFramework, expectedPaths(rootDirectory, testCase.expectedRepositories), discoveredRepositories)
		})
	}
}

func TestFilesystemRepositoryDiscovererFindsRootRepository(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()
	createRepositories(testFramework, rootDirectory, []repositoryDefinition{
		{directorySegments: []string{}},
		{directorySegments: []string{toolsRepositoryDirectoryName}},
	})

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories([]string{rootDirectory}, discovery.OptionsForRecursion(false))
	require.NoError(testFramework, discoveryError)
	require.Equal(testFramework, []string{rootDirectory, filepath.Join(rootDirectory, toolsRepositoryDirectoryName)}, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererReportsNestedRepositoriesOnce(testFramework *testing.T) {
	definitions := []repositoryDefinition{
		{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, applicationRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, serviceRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, toolsRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, toolsRepositoryDirectoryName, "vendor", "inner"}},
	}

	rootDirectory := testFramework.TempDir()
	createRepositories(testFramework, rootDirectory, definitions)

	developerDirectoryPath := filepath.Join(rootDirectory, developerDirectoryName)
	engineeringGroupDirectoryPath := filepath.Join(developerDirectoryPath, engineeringGroupDirectoryName)

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories(
		[]string{rootDirectory, developerDirectoryPath, engineeringGroupDirectoryPath},
		discovery.OptionsForRecursion(true),
	)
	require.NoError(testFramework, discoveryError)
	require.Equal(testFramework, expectedPaths(rootDirectory, definitions), discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererIgnoresMetadataFilesAndUnreadableEntries(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()
	createRepositories(testFramework, rootDirectory, []repositoryDefinition{{directorySegments: []string{applicationRepositoryDirectoryName}}})

	worktreeDirectoryPath := filepath.Join(rootDirectory, "worktree")
	require.NoError(testFramework, os.MkdirAll(worktreeDirectoryPath, repositoryDirectoryPermissions))
	require.NoError(testFramework, os.WriteFile(filepath.Join(worktreeDirectoryPath, gitMetadataDirectoryName), []byte("gitdir: ../elsewhere\n"), repositoryFilePermissions))

	require.NoError(testFramework, os.Symlink(filepath.Join(rootDirectory, "missing-target"), filepath.Join(rootDirectory, "dangling")))

	if runtime.GOOS != "windows" && os.Geteuid() != 0 {
		lockedDirectoryPath := filepath.Join(rootDirectory, "locked")
		require.NoError(testFramework, os.MkdirAll(filepath.Join(lockedDirectoryPath, gitMetadataDirectoryName), repositoryDirectoryPermissions))
		require.NoError(testFramework, os.Chmod(lockedDirectoryPath, 0o000))
		testFramework.Cleanup(func() {
			_ = os.Chmod(lockedDirectoryPath, repositoryDirectoryPermissions)
		})
	}

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories([]string{rootDirectory}, discovery.OptionsForRecursion(true))
	require.NoError(testFramework, discoveryError)
	require.Equal(testFramework, []string{filepath.Join(rootDirectory, applicationRepositoryDirectoryName)}, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererSkipsMissingRoot(testFramework *testing.T) {
	missingRoot := filepath.Join(testFramework.TempDir(), "absent")

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories([]string{missingRoot}, discovery.OptionsForRecursion(false))
	require.NoError(testFramework, discoveryError)
	require.Empty(testFramework, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererFollowsSymlinkedRoot(testFramework *testing.T) {
	workspaceDirectory := testFramework.TempDir()
	realRoot := filepath.Join(workspaceDirectory, "real")
	linkedRoot := filepath.Join(workspaceDirectory, "link")
	definitions := []repositoryDefinition{
		{directorySegments: []string{applicationRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, serviceRepositoryDirectoryName}},
	}
	createRepositories(testFramework, realRoot, definitions)
	require.NoError(testFramework, os.Symlink(realRoot, linkedRoot))

	discoverer := discovery.NewFilesystemRepositoryDiscoverer()

	recursiveRepositories, recursiveError := discoverer.DiscoverRepositories([]string{linkedRoot}, discovery.OptionsForRecursion(true))
	require.NoError(testFramework, recursiveError)
	require.Equal(testFramework, []string{
		filepath.Join(linkedRoot, developerDirectoryName, serviceRepositoryDirectoryName),
		filepath.Join(linkedRoot, applicationRepositoryDirectoryName),
	}, recursiveRepositories)

	shallowRepositories, shallowError := discoverer.DiscoverRepositories([]string{linkedRoot}, discovery.OptionsForRecursion(false))
	require.NoError(testFramework, shallowError)
	require.Equal(testFramework, []string{filepath.Join(linkedRoot, applicationRepositoryDirectoryName)}, shallowRepositories)

	bothRoots, bothError := discoverer.DiscoverRepositories([]string{linkedRoot, realRoot}, discovery.OptionsForRecursion(false))
	require.NoError(testFramework, bothError)
	require.Equal(testFramework, []string{filepath.Join(linkedRoot, applicationRepositoryDirectoryName)}, bothRoots)
}
