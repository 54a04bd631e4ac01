package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gitprep/gitprep/internal/execshell"
)

const (
	repoSubcommandConstant                  = "repo"
	viewSubcommandConstant                  = "view"
	createSubcommandConstant                = "create"
	gpgKeySubcommandConstant                = "gpg-key"
	addSubcommandConstant                   = "add"
	authSubcommandConstant                  = "auth"
	statusSubcommandConstant                = "status"
	jsonFlagConstant                        = "--json"
	titleFlagConstant                       = "--title"
	privateVisibilityFlagConstant           = "--private"
	publicVisibilityFlagConstant            = "--public"
	internalVisibilityFlagConstant          = "--internal"
	stdinReferenceConstant                  = "-"
	repositoryFieldNameConstant             = "repository"
	keyTitleFieldNameConstant               = "key_title"
	armoredKeyFieldNameConstant             = "armored_key"
	visibilityFieldNameConstant             = "visibility"
	requiredValueMessageConstant            = "value required"
	unknownVisibilityMessageConstant        = "unknown repository visibility"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	repoViewJSONFieldsConstant              = "defaultBranchRef,nameWithOwner,visibility"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	addGPGKeyOperationNameConstant          = OperationName("AddGPGKey")
	createRepositoryOperationNameConstant   = OperationName("CreateRepository")
	repositoryMetadataOperationNameConstant = OperationName("ResolveRepoMetadata")
	authStatusOperationNameConstant         = OperationName("CheckAuthStatus")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryVisibility describes acceptable repository visibility levels.
type RepositoryVisibility string

// Repository visibility enumerations.
const (
	RepositoryVisibilityPrivate  RepositoryVisibility = RepositoryVisibility("private")
	RepositoryVisibilityPublic   RepositoryVisibility = RepositoryVisibility("public")
	RepositoryVisibilityInternal RepositoryVisibility = RepositoryVisibility("internal")
)

// RepositoryMetadata contains key details resolved from GitHub.
type RepositoryMetadata struct {
	NameWithOwner string
	Visibility    string
	DefaultBranch string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// AddGPGKey registers an armored public key with the authenticated account using gh gpg-key add.
// The armored key travels over stdin so it never touches the argument list.
func (client *Client) AddGPGKey(executionContext context.Context, armoredKey string, keyTitle string) error {
	if len(strings.TrimSpace(armoredKey)) == 0 {
		return InvalidInputError{FieldName: armoredKeyFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedTitle := strings.TrimSpace(keyTitle)
	if len(trimmedTitle) == 0 {
		return InvalidInputError{FieldName: keyTitleFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			gpgKeySubcommandConstant,
			addSubcommandConstant,
			stdinReferenceConstant,
			titleFlagConstant,
			trimmedTitle,
		},
		StandardInput: []byte(armoredKey),
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: addGPGKeyOperationNameConstant, Cause: executionError}
	}

	return nil
}

// CreateRepository creates a remote repository using gh repo create.
// No README or licence flags are ever passed so the new repository starts without history.
func (client *Client) CreateRepository(executionContext context.Context, repository string, visibility RepositoryVisibility) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	visibilityFlag, visibilityError := visibilityFlagFor(visibility)
	if visibilityError != nil {
		return visibilityError
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			createSubcommandConstant,
			repositoryIdentifier,
			visibilityFlag,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: createRepositoryOperationNameConstant, Cause: executionError}
	}

	return nil
}

// RepositoryExists reports whether gh repo view resolves the repository.
func (client *Client) RepositoryExists(executionContext context.Context, repository string) (bool, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return false, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, OperationError{Operation: repositoryMetadataOperationNameConstant, Cause: executionError}
	}

	return true, nil
}

// ResolveRepoMetadata retrieves canonical metadata for a repository using gh repo view.
func (client *Client) ResolveRepoMetadata(executionContext context.Context, repository string) (RepositoryMetadata, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return RepositoryMetadata{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return RepositoryMetadata{}, OperationError{Operation: repositoryMetadataOperationNameConstant, Cause: executionError}
	}

	var response struct {
		NameWithOwner    string `json:"nameWithOwner"`
		Visibility       string `json:"visibility"`
		DefaultBranchRef struct {
			Name string `json:"name"`
		} `json:"defaultBranchRef"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return RepositoryMetadata{}, ResponseDecodingError{Operation: repositoryMetadataOperationNameConstant, Cause: decodingError}
	}

	return RepositoryMetadata{
		NameWithOwner: response.NameWithOwner,
		Visibility:    response.Visibility,
		DefaultBranch: response.DefaultBranchRef.Name,
	}, nil
}

// CheckAuthStatus verifies the GitHub CLI is authenticated.
func (client *Client) CheckAuthStatus(executionContext context.Context) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{authSubcommandConstant, statusSubcommandConstant},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: authStatusOperationNameConstant, Cause: executionError}
	}

	return nil
}

func visibilityFlagFor(visibility RepositoryVisibility) (string, error) {
	switch visibility {
	case RepositoryVisibilityPrivate:
		return privateVisibilityFlagConstant, nil
	case RepositoryVisibilityPublic:
		return publicVisibilityFlagConstant, nil
	case RepositoryVisibilityInternal:
		return internalVisibilityFlagConstant, nil
	default:
		return "", InvalidInputError{FieldName: visibilityFieldNameConstant, Message: unknownVisibilityMessageConstant}
	}
}
