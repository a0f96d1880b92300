package utils_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitmaint/internal/utils"
)

const (
	testInfoMessageConstant = "repository maintained"
	testWarnMessageConstant = "git fetch exited with code 1"
)

// captureLoggerOutput builds a logger while standard error points at a pipe, since zap
// binds its sink to os.Stderr at construction time.
func captureLoggerOutput(testInstance *testing.T, level utils.LogLevel, format utils.LogFormat, emit func(logger *zap.Logger)) (string, error) {
	testInstance.Helper()
	pipeReader, pipeWriter, pipeError := os.Pipe()
	require.NoError(testInstance, pipeError)

	originalStandardError := os.Stderr
	os.Stderr = pipeWriter
	logger, creationError := utils.NewLoggerFactory().CreateLogger(level, format)
	os.Stderr = originalStandardError

	if creationError == nil {
		emit(logger)
		_ = logger.Sync()
	}
	require.NoError(testInstance, pipeWriter.Close())

	capturedOutput, readError := io.ReadAll(pipeReader)
	require.NoError(testInstance, readError)
	require.NoError(testInstance, pipeReader.Close())
	return string(bytes.TrimSpace(capturedOutput)), creationError
}

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name             string
		level            utils.LogLevel
		format           utils.LogFormat
		expectInfo       bool
		expectStructured bool
	}{
		{name: "DefaultWarnStructured", level: utils.LogLevelWarn, format: utils.LogFormatStructured, expectStructured: true},
		{name: "InfoStructured", level: utils.LogLevelInfo, format: utils.LogFormatStructured, expectInfo: true, expectStructured: true},
		{name: "DebugConsole", level: utils.LogLevelDebug, format: utils.LogFormatConsole, expectInfo: true},
		{name: "WarnConsole", level: utils.LogLevelWarn, format: utils.LogFormatConsole},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			output, creationError := captureLoggerOutput(subtest, testCase.level, testCase.format, func(logger *zap.Logger) {
				logger.Info(testInfoMessageConstant)
				logger.Warn(testWarnMessageConstant)
			})
			require.NoError(subtest, creationError)

			lines := bytes.Split([]byte(output), []byte("\n"))
			require.Contains(subtest, output, testWarnMessageConstant)
			if testCase.expectInfo {
				require.Contains(subtest, output, testInfoMessageConstant)
				require.Len(subtest, lines, 2)
			} else {
				require.NotContains(subtest, output, testInfoMessageConstant)
				require.Len(subtest, lines, 1)
			}

			for _, line := range lines {
				require.Equal(subtest, testCase.expectStructured, json.Valid(line))
			}
			if !testCase.expectStructured {
				require.NotContains(subtest, output, "logger_factory_test.go")
			}
		})
	}
}

func TestLoggerFactoryRejectsUnsupportedValues(testInstance *testing.T) {
	testCases := []struct {
		name   string
		level  utils.LogLevel
		format utils.LogFormat
	}{
		{name: "Level", level: utils.LogLevel("verbose"), format: utils.LogFormatStructured},
		{name: "Format", level: utils.LogLevelInfo, format: utils.LogFormat("xml")},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			logger, creationError := utils.NewLoggerFactory().CreateLogger(testCase.level, testCase.format)
			require.Error(subtest, creationError)
			require.Nil(subtest, logger)
		})
	}
}

func TestLogValueNormalization(testInstance *testing.T) {
	require.Equal(testInstance, utils.LogLevelWarn, utils.NormalizeLogLevel("  WARN "))
	require.Equal(testInstance, utils.LogFormatConsole, utils.NormalizeLogFormat("Console"))
	require.Equal(testInstance, []string{"debug", "info", "warn", "error"}, utils.SupportedLogLevels())
	require.Equal(testInstance, []string{"structured", "console"}, utils.SupportedLogFormats())
}
