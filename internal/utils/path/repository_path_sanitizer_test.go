package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gitmaint/internal/utils/path"
)

const (
	testCaseAbsolutePathSuffixConstant       = "repository-path-sanitizer"
	testCaseTildeRelativePathConstant        = "Projects/example"
	testCaseWhitespacePrefixConstant         = "  "
	testCaseWhitespaceSuffixConstant         = "\t"
	testCaseCommentLineConstant              = "# archived repositories"
	testCaseHomeDirectoryConstant            = "/home/maintainer"
	testCaseSanitizerDefaultCaseNameConstant = "default_configuration"
	testCaseCommentFilterCaseNameConstant    = "comment_filter_configuration"
)

func TestRepositoryPathSanitizerNormalizesInputs(testInstance *testing.T) {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testCaseHomeDirectoryConstant, nil
	})

	absolutePath := filepath.Join(testInstance.TempDir(), testCaseAbsolutePathSuffixConstant)
	tildeInput := "~/" + testCaseTildeRelativePathConstant
	expandedTilde := filepath.Join(testCaseHomeDirectoryConstant, testCaseTildeRelativePathConstant)

	testCases := []struct {
		name            string
		sanitizer       *pathutils.RepositoryPathSanitizer
		inputs          []string
		expectedOutputs []string
	}{
		{
			name:      testCaseSanitizerDefaultCaseNameConstant,
			sanitizer: pathutils.NewRepositoryPathSanitizerWithConfiguration(homeExpander, pathutils.RepositoryPathSanitizerConfiguration{}),
			inputs: []string{
				"",
				testCaseWhitespacePrefixConstant + absolutePath + testCaseWhitespaceSuffixConstant,
				testCaseWhitespacePrefixConstant + tildeInput + testCaseWhitespaceSuffixConstant,
				absolutePath,
			},
			expectedOutputs: []string{absolutePath, expandedTilde, absolutePath},
		},
		{
			name:      testCaseCommentFilterCaseNameConstant,
			sanitizer: pathutils.NewRepositoryPathSanitizerWithConfiguration(homeExpander, pathutils.RepositoryPathSanitizerConfiguration{DropCommentLines: true}),
			inputs: []string{
				testCaseCommentLineConstant,
				"   ",
				tildeInput,
				"./relative",
			},
			expectedOutputs: []string{expandedTilde, "./relative"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			sanitized := testCase.sanitizer.Sanitize(testCase.inputs)
			require.Equal(subTest, testCase.expectedOutputs, sanitized)
		})
	}
}

func TestRepositoryPathSanitizerReturnsNilForEmptyResults(testInstance *testing.T) {
	sanitizer := pathutils.NewRepositoryPathSanitizer()

	require.Nil(testInstance, sanitizer.Sanitize([]string{"   ", "\n"}))
}

func TestHomeExpanderLeavesPathsUntouchedWithoutHome(testInstance *testing.T) {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", filepath.ErrBadPattern
	})

	require.Equal(testInstance, "~/repo", homeExpander.Expand("~/repo"))
	require.Equal(testInstance, "~other/repo", pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testCaseHomeDirectoryConstant, nil
	}).Expand("~other/repo"))
	require.Equal(testInstance, testCaseHomeDirectoryConstant, pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testCaseHomeDirectoryConstant, nil
	}).Expand("~"))
}

func TestHomeExpanderConsultsProviderOnce(testInstance *testing.T) {
	providerCalls := 0
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		providerCalls++
		return testCaseHomeDirectoryConstant, nil
	})

	require.Equal(testInstance, filepath.Join(testCaseHomeDirectoryConstant, "src", "api"), homeExpander.Expand("~/src/api"))
	require.Equal(testInstance, "/srv/~/api", homeExpander.Expand("/srv/~/api"))
	require.Equal(testInstance, testCaseHomeDirectoryConstant, homeExpander.Expand("~"))
	require.Equal(testInstance, 1, providerCalls)
}
