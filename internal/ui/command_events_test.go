package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gitprep/gitprep/internal/execshell"
	"github.com/gitprep/gitprep/internal/ui"
)

const (
	uiTestStartedCaseNameConstant          = "started"
	uiTestCompletedCaseNameConstant        = "completed"
	uiTestFailedCaseNameConstant           = "failed_exit_code"
	uiTestExecutionFailureCaseNameConstant = "execution_failure"
)

func TestConsoleCommandEventLoggerLevels(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"init"}, WorkingDirectory: "/workspace/project"},
	}

	testCases := []struct {
		name          string
		emitEvent     func(eventLogger *ui.ConsoleCommandEventLogger)
		expectedLevel zap.AtomicLevel
	}{
		{
			name: uiTestStartedCaseNameConstant,
			emitEvent: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandStarted(command)
			},
			expectedLevel: zap.NewAtomicLevelAt(zap.InfoLevel),
		},
		{
			name: uiTestCompletedCaseNameConstant,
			emitEvent: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel: zap.NewAtomicLevelAt(zap.InfoLevel),
		},
		{
			name: uiTestFailedCaseNameConstant,
			emitEvent: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "boom"})
			},
			expectedLevel: zap.NewAtomicLevelAt(zap.WarnLevel),
		},
		{
			name: uiTestExecutionFailureCaseNameConstant,
			emitEvent: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandExecutionFailed(command, errors.New("missing executable"))
			},
			expectedLevel: zap.NewAtomicLevelAt(zap.ErrorLevel),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zap.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

			testCase.emitEvent(eventLogger)

			logEntries := observedLogs.All()
			require.Len(testInstance, logEntries, 1)
			require.Equal(testInstance, testCase.expectedLevel.Level(), logEntries[0].Level)
		})
	}
}
