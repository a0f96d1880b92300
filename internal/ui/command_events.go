package ui

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/gitmaint/internal/execshell"
)

const (
	elapsedSuffixTemplateConstant = "%s (%s)"
	elapsedPrecisionConstant      = 10 * time.Millisecond
)

// Clock reports the current time.
type Clock func() time.Time

// ConsoleCommandEventLogger prints one human-readable line per command lifecycle event.
// Completion lines carry the time elapsed since the matching start event.
type ConsoleCommandEventLogger struct {
	logger        *zap.Logger
	formatter     execshell.CommandMessageFormatter
	clock         Clock
	pendingStarts map[string]time.Time
}

// NewConsoleCommandEventLogger constructs an event logger that measures time with the wall clock.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	return NewConsoleCommandEventLoggerWithClock(logger, time.Now)
}

// NewConsoleCommandEventLoggerWithClock constructs an event logger with a custom clock.
func NewConsoleCommandEventLoggerWithClock(logger *zap.Logger, clock Clock) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &ConsoleCommandEventLogger{
		logger:        logger,
		formatter:     execshell.CommandMessageFormatter{},
		clock:         clock,
		pendingStarts: make(map[string]time.Time),
	}
}

// CommandStarted records the start time and prints what is about to run.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.pendingStarts[commandKey(command)] = eventLogger.clock()
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted prints the outcome of a command that ran; non-zero exits are warnings.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode != 0 {
		eventLogger.logger.Warn(eventLogger.withElapsed(command, eventLogger.formatter.BuildFailureMessage(command, result)))
		return
	}
	eventLogger.logger.Info(eventLogger.withElapsed(command, eventLogger.formatter.BuildSuccessMessage(command)))
}

// CommandExecutionFailed prints a command that could not be started.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	delete(eventLogger.pendingStarts, commandKey(command))
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}

func (eventLogger *ConsoleCommandEventLogger) withElapsed(command execshell.ShellCommand, message string) string {
	key := commandKey(command)
	startedAt, started := eventLogger.pendingStarts[key]
	if !started {
		return message
	}
	delete(eventLogger.pendingStarts, key)
	elapsed := eventLogger.clock().Sub(startedAt).Round(elapsedPrecisionConstant)
	return fmt.Sprintf(elapsedSuffixTemplateConstant, message, elapsed)
}

func commandKey(command execshell.ShellCommand) string {
	return command.Details.WorkingDirectory + "\x00" + command.String()
}
