package ui

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/temirov/templatesync/internal/execshell"
)

const logFieldInFlightConstant = "in_flight"

// ConsoleCommandEventLogger narrates concurrent git clone and pull invocations in human-readable form.
// Every message carries the number of git processes still running once the event is applied.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
	inFlight  atomic.Int64
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger}
}

func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	running := eventLogger.inFlight.Add(1)
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command), zap.Int64(logFieldInFlightConstant, running))
}

// CommandCompleted logs non-zero exits as warnings.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	running := zap.Int64(logFieldInFlightConstant, eventLogger.finish())
	if result.ExitCode != 0 {
		eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result), running)
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command), running)
}

func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure), zap.Int64(logFieldInFlightConstant, eventLogger.finish()))
}

// finish decrements the running count without going below zero for unmatched events.
func (eventLogger *ConsoleCommandEventLogger) finish() int64 {
	for {
		current := eventLogger.inFlight.Load()
		if current == 0 {
			return 0
		}
		if eventLogger.inFlight.CompareAndSwap(current, current-1) {
			return current - 1
		}
	}
}
