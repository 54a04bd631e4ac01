package workflow

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configurationLoadErrorTemplateConstant     = "failed to load steps file: %w"
	configurationParseErrorTemplateConstant    = "failed to parse steps file: %w"
	configurationPathRequiredMessageConstant   = "steps file path must be provided"
	configurationEmptyStepsMessageConstant     = "steps file must define at least one step"
	configurationOperationMissingTemplateConst = "step %d is missing an operation name"
	configurationUnknownOperationTemplateConst = "step %d names unknown operation %q"
)

// OperationType identifies supported workflow operations.
type OperationType string

// Supported workflow operations.
const (
	OperationTypeSigningSetup OperationType = OperationType("signing-setup")
	OperationTypeBootstrap    OperationType = OperationType("bootstrap")
)

// Configuration describes the ordered steps loaded from YAML.
type Configuration struct {
	Steps []StepConfiguration `yaml:"steps"`
}

// StepConfiguration associates an operation type with declarative options.
type StepConfiguration struct {
	Operation OperationType  `yaml:"operation"`
	Options   map[string]any `yaml:"with"`
}

// LoadConfiguration reads the steps definition from disk and validates it.
func LoadConfiguration(filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	return ParseConfiguration(contentBytes)
}

// ParseConfiguration decodes and validates a steps document.
func ParseConfiguration(contentBytes []byte) (Configuration, error) {
	var configuration Configuration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	if len(configuration.Steps) == 0 {
		return Configuration{}, errors.New(configurationEmptyStepsMessageConstant)
	}

	for stepIndex := range configuration.Steps {
		trimmedOperation := strings.TrimSpace(string(configuration.Steps[stepIndex].Operation))
		if len(trimmedOperation) == 0 {
			return Configuration{}, fmt.Errorf(configurationOperationMissingTemplateConst, stepIndex+1)
		}

		operationType := OperationType(trimmedOperation)
		switch operationType {
		case OperationTypeSigningSetup, OperationTypeBootstrap:
			configuration.Steps[stepIndex].Operation = operationType
		default:
			return Configuration{}, fmt.Errorf(configurationUnknownOperationTemplateConst, stepIndex+1, trimmedOperation)
		}
	}

	return configuration, nil
}
