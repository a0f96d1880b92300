package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "LogLevels",
			defaultChoice:  "warn",
			choices:        []string{"debug", "info", "warn", "error"},
			description:    "Override the configured log level.",
			expectedOutput: "`<debug|info|WARN|error>` Override the configured log level.",
		},
		{
			name:           "LogFormatsDefaultFirst",
			defaultChoice:  "structured",
			choices:        []string{"structured", "console"},
			description:    "Override the configured log format.",
			expectedOutput: "`<STRUCTURED|console>` Override the configured log format.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "no",
			choices:        []string{"yes", "no"},
			expectedOutput: "`<yes|NO>`",
		},
		{
			name:           "DuplicatesAndBlanksDropped",
			defaultChoice:  "Console",
			choices:        []string{"console", "", "CONSOLE", " structured "},
			description:    "  Pick a format.  ",
			expectedOutput: "`<CONSOLE|structured>` Pick a format.",
		},
		{
			name:           "UnknownDefault",
			defaultChoice:  "trace",
			choices:        []string{"debug", "info"},
			description:    "Level.",
			expectedOutput: "`<debug|info>` Level.",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expectedOutput, FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description))
		})
	}
}
