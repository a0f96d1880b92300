package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	pipelineConnectErrorTemplateConstant = "unable to connect %s to %s: %w"
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct {
	standardOutput io.Writer
	standardError  io.Writer
}

// NewOSCommandRunner constructs a runner whose inherited output goes to the process terminal.
func NewOSCommandRunner() *OSCommandRunner {
	return NewOSCommandRunnerWithWriters(os.Stdout, os.Stderr)
}

// NewOSCommandRunnerWithWriters constructs a runner whose inherited output goes to the provided writers.
func NewOSCommandRunnerWithWriters(standardOutput io.Writer, standardError io.Writer) *OSCommandRunner {
	if standardOutput == nil {
		standardOutput = os.Stdout
	}
	if standardError == nil {
		standardError = os.Stderr
	}
	return &OSCommandRunner{standardOutput: standardOutput, standardError: standardError}
}

// Run executes the supplied command, connecting any piped stages.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if command.PipeTo != nil {
		return runner.runPipeline(executionContext, command.Stages())
	}

	executable := runner.buildExecutable(executionContext, command)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	if command.Details.InheritOutput {
		executable.Stdout = runner.standardOutput
		executable.Stderr = runner.standardError
	} else {
		executable.Stdout = &standardOutputBuffer
		executable.Stderr = &standardErrorBuffer
	}

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}

// runPipeline wires stage N's stdout into stage N+1's stdin. Standard error of every
// stage goes to the terminal; the last stage's stdout is captured unless it inherits output.
// The result carries the exit code of the last stage. Every started stage is waited for
// before returning, including on failure.
func (runner *OSCommandRunner) runPipeline(executionContext context.Context, stages []ShellCommand) (ExecutionResult, error) {
	executables := make([]*exec.Cmd, 0, len(stages))
	for _, stage := range stages {
		executable := runner.buildExecutable(executionContext, stage)
		executable.Stderr = runner.standardError
		executables = append(executables, executable)
	}

	pipeReaders := make([]io.Closer, 0, len(executables)-1)
	for stageIndex := 0; stageIndex < len(executables)-1; stageIndex++ {
		pipeReader, pipeError := executables[stageIndex].StdoutPipe()
		if pipeError != nil {
			closeAll(pipeReaders)
			return ExecutionResult{}, fmt.Errorf(pipelineConnectErrorTemplateConstant, stages[stageIndex].Name, stages[stageIndex+1].Name, pipeError)
		}
		executables[stageIndex+1].Stdin = pipeReader
		pipeReaders = append(pipeReaders, pipeReader)
	}

	lastIndex := len(executables) - 1
	var standardOutputBuffer bytes.Buffer
	if stages[lastIndex].Details.InheritOutput {
		executables[lastIndex].Stdout = runner.standardOutput
	} else {
		executables[lastIndex].Stdout = &standardOutputBuffer
	}

	// Consumers start first so that no producer writes into an unread pipe.
	for stageIndex := lastIndex; stageIndex >= 0; stageIndex-- {
		if startError := executables[stageIndex].Start(); startError != nil {
			closeAll(pipeReaders)
			abandonStartedExecutables(executables[stageIndex+1:])
			return ExecutionResult{}, startError
		}
	}

	exitCode := 0
	var waitFailure error
	for stageIndex, executable := range executables {
		waitError := executable.Wait()
		if waitError == nil {
			continue
		}
		exitError := &exec.ExitError{}
		if !errors.As(waitError, &exitError) {
			if waitFailure == nil {
				waitFailure = waitError
			}
			continue
		}
		if stageIndex == lastIndex {
			exitCode = exitError.ExitCode()
		}
	}
	if waitFailure != nil {
		return ExecutionResult{}, waitFailure
	}

	return ExecutionResult{StandardOutput: standardOutputBuffer.String(), ExitCode: exitCode}, nil
}

func (runner *OSCommandRunner) buildExecutable(executionContext context.Context, command ShellCommand) *exec.Cmd {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	return executable
}

func closeAll(closers []io.Closer) {
	for _, closer := range closers {
		_ = closer.Close()
	}
}

func abandonStartedExecutables(executables []*exec.Cmd) {
	for _, executable := range executables {
		if executable.Process == nil {
			continue
		}
		_ = executable.Process.Kill()
		_ = executable.Wait()
	}
}
