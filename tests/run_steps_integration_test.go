package tests

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	runStepsFileNameConstant             = "steps.yaml"
	runStepsUnknownOperationYAMLConstant = "steps:\n  - operation: deploy\n"
	runStepsFlagTemplateConstant         = "--steps=%s"
	runStepsCommandTimeout               = 30 * time.Second
	runStepsMissingFlagMessageConstant   = "required flag(s) \"steps\" not set"
	runStepsUnknownOperationMessage      = "unknown operation"
)

func runFailingIntegrationCommand(testInstance *testing.T, repositoryRoot string, arguments []string) string {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), runStepsCommandTimeout)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, "go", arguments...)
	command.Dir = repositoryRoot

	outputBytes, runError := command.CombinedOutput()
	outputText := string(outputBytes)
	require.Error(testInstance, runError, outputText)
	return outputText
}

func TestRunCommandRequiresStepsFlag(testInstance *testing.T) {
	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	outputText := runFailingIntegrationCommand(testInstance, repositoryRootDirectory, []string{"run", ".", "run"})
	require.Contains(testInstance, outputText, runStepsMissingFlagMessageConstant)
}

func TestRunCommandRejectsUnknownOperations(testInstance *testing.T) {
	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	stepsFilePath := filepath.Join(testInstance.TempDir(), runStepsFileNameConstant)
	require.NoError(testInstance, os.WriteFile(stepsFilePath, []byte(runStepsUnknownOperationYAMLConstant), 0o600))

	outputText := runFailingIntegrationCommand(testInstance, repositoryRootDirectory, []string{"run", ".", "run", fmt.Sprintf(runStepsFlagTemplateConstant, stepsFilePath)})
	require.Contains(testInstance, outputText, runStepsUnknownOperationMessage)
}
