package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-viper/mapstructure/v2"

	"github.com/gitprep/gitprep/internal/bootstrap"
	"github.com/gitprep/gitprep/internal/provision"
)

const (
	signingSetupExecutorMissingMessageConstant = "signing-setup executor not configured"
	bootstrapExecutorMissingMessageConstant    = "bootstrap executor not configured"
	stepOptionsDecodeErrorTemplateConstant     = "step %d (%s): failed to decode options: %w"
	stepFailureTemplateConstant                = "step %d (%s) failed: %w"
	stepStartedNoticeTemplateConstant          = "Step %d/%d: %s\n"
)

// ErrSigningSetupExecutorNotConfigured indicates the signing-setup hook was missing.
var ErrSigningSetupExecutorNotConfigured = errors.New(signingSetupExecutorMissingMessageConstant)

// ErrBootstrapExecutorNotConfigured indicates the bootstrap hook was missing.
var ErrBootstrapExecutorNotConfigured = errors.New(bootstrapExecutorMissingMessageConstant)

// OperationExecutors supplies the per-operation entry points invoked by the runner.
type OperationExecutors struct {
	SigningSetup func(executionContext context.Context, configuration provision.CommandConfiguration) error
	Bootstrap    func(executionContext context.Context, configuration bootstrap.CommandConfiguration) error
}

// Runner executes steps sequentially, stopping at the first failure.
type Runner struct {
	executors    OperationExecutors
	outputWriter io.Writer
}

// NewRunner constructs a Runner from the provided executors.
func NewRunner(executors OperationExecutors, outputWriter io.Writer) (*Runner, error) {
	if executors.SigningSetup == nil {
		return nil, ErrSigningSetupExecutorNotConfigured
	}
	if executors.Bootstrap == nil {
		return nil, ErrBootstrapExecutorNotConfigured
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Runner{executors: executors, outputWriter: outputWriter}, nil
}

// Run executes every configured step in order.
func (runner *Runner) Run(executionContext context.Context, configuration Configuration) error {
	totalSteps := len(configuration.Steps)
	for stepIndex, step := range configuration.Steps {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}

		fmt.Fprintf(runner.outputWriter, stepStartedNoticeTemplateConstant, stepIndex+1, totalSteps, step.Operation)

		if stepError := runner.runStep(executionContext, stepIndex, step); stepError != nil {
			return stepError
		}
	}
	return nil
}

func (runner *Runner) runStep(executionContext context.Context, stepIndex int, step StepConfiguration) error {
	switch step.Operation {
	case OperationTypeSigningSetup:
		configuration := provision.DefaultCommandConfiguration()
		if decodeError := decodeStepOptions(step.Options, &configuration); decodeError != nil {
			return fmt.Errorf(stepOptionsDecodeErrorTemplateConstant, stepIndex+1, step.Operation, decodeError)
		}
		if executionError := runner.executors.SigningSetup(executionContext, configuration.Sanitize()); executionError != nil {
			return fmt.Errorf(stepFailureTemplateConstant, stepIndex+1, step.Operation, executionError)
		}
	case OperationTypeBootstrap:
		configuration := bootstrap.DefaultCommandConfiguration()
		if decodeError := decodeStepOptions(step.Options, &configuration); decodeError != nil {
			return fmt.Errorf(stepOptionsDecodeErrorTemplateConstant, stepIndex+1, step.Operation, decodeError)
		}
		if executionError := runner.executors.Bootstrap(executionContext, configuration.Sanitize()); executionError != nil {
			return fmt.Errorf(stepFailureTemplateConstant, stepIndex+1, step.Operation, executionError)
		}
	}
	return nil
}

func decodeStepOptions(options map[string]any, target any) error {
	if len(options) == 0 {
		return nil
	}

	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if decoderError != nil {
		return decoderError
	}
	return decoder.Decode(options)
}
