package sshauth

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitprep/gitprep/internal/execshell"
	pathutils "github.com/gitprep/gitprep/internal/utils/path"
)

const (
	listIdentitiesFlagConstant          = "-l"
	missingExecutorMessageConstant      = "ssh-add executor is required"
	identityPathRequiredMessageConstant = "identity file path is required"
	addIdentityErrorTemplateConstant    = "failed to add identity %s: %w"
	listIdentitiesErrorTemplateConstant = "failed to list agent identities: %w"
)

// SSHAddExecutor runs ssh-add commands on behalf of the agent client.
type SSHAddExecutor interface {
	ExecuteSSHAdd(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// AgentClient loads and inspects identities held by the running ssh agent.
type AgentClient struct {
	executor     SSHAddExecutor
	homeExpander *pathutils.HomeExpander
}

// NewAgentClient constructs an AgentClient backed by the provided executor.
func NewAgentClient(executor SSHAddExecutor, homeExpander *pathutils.HomeExpander) (*AgentClient, error) {
	if executor == nil {
		return nil, fmt.Errorf("%s", missingExecutorMessageConstant)
	}
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	return &AgentClient{executor: executor, homeExpander: homeExpander}, nil
}

// AddIdentity loads the identity file into the agent, expanding a leading tilde.
func (client *AgentClient) AddIdentity(executionContext context.Context, identityFilePath string) error {
	trimmedPath := strings.TrimSpace(identityFilePath)
	if len(trimmedPath) == 0 {
		return fmt.Errorf("%s", identityPathRequiredMessageConstant)
	}

	expandedPath := client.homeExpander.Expand(trimmedPath)
	_, executionError := client.executor.ExecuteSSHAdd(executionContext, execshell.CommandDetails{
		Arguments: []string{expandedPath},
	})
	if executionError != nil {
		return fmt.Errorf(addIdentityErrorTemplateConstant, expandedPath, executionError)
	}
	return nil
}

// EnsureIdentity loads the identity file into the agent unless it is already listed.
func (client *AgentClient) EnsureIdentity(executionContext context.Context, identityFilePath string) error {
	trimmedPath := strings.TrimSpace(identityFilePath)
	if len(trimmedPath) == 0 {
		return fmt.Errorf("%s", identityPathRequiredMessageConstant)
	}

	expandedPath := client.homeExpander.Expand(trimmedPath)
	// ssh-add -l fails when the agent holds no identities
	identityListing, listingError := client.ListIdentities(executionContext)
	if listingError == nil && identityListed(identityListing, expandedPath) {
		return nil
	}

	return client.AddIdentity(executionContext, expandedPath)
}

func identityListed(identityListing string, expandedPath string) bool {
	for _, listingLine := range strings.Split(identityListing, "\n") {
		if strings.Contains(listingLine, expandedPath) {
			return true
		}
	}
	return false
}

// ListIdentities returns the raw identity listing from the agent.
func (client *AgentClient) ListIdentities(executionContext context.Context) (string, error) {
	executionResult, executionError := client.executor.ExecuteSSHAdd(executionContext, execshell.CommandDetails{
		Arguments: []string{listIdentitiesFlagConstant},
	})
	if executionError != nil {
		return "", fmt.Errorf(listIdentitiesErrorTemplateConstant, executionError)
	}
	return executionResult.StandardOutput, nil
}
