package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gitprep/gitprep/internal/execshell"
)

const (
	requiredValueMessageConstant            = "value is required"
	gitInitSubcommandConstant               = "init"
	gitAddSubcommandConstant                = "add"
	gitCommitSubcommandConstant             = "commit"
	gitBranchSubcommandConstant             = "branch"
	gitRemoteSubcommandConstant             = "remote"
	gitPushSubcommandConstant               = "push"
	gitPullSubcommandConstant               = "pull"
	gitConfigSubcommandConstant             = "config"
	gitStatusSubcommandConstant             = "status"
	gitRevParseSubcommandConstant           = "rev-parse"
	gitAllPathsArgumentConstant             = "."
	gitCommitMessageFlagConstant            = "-m"
	gitForceRenameFlagConstant              = "-M"
	gitRemoteAddArgumentConstant            = "add"
	gitRemoteGetURLArgumentConstant         = "get-url"
	gitUpstreamFlagConstant                 = "-u"
	gitAllowUnrelatedHistoriesFlagConstant  = "--allow-unrelated-histories"
	gitNoRebaseFlagConstant                 = "--no-rebase"
	gitGlobalFlagConstant                   = "--global"
	gitPorcelainFlagConstant                = "--porcelain"
	gitIsInsideWorkTreeFlagConstant         = "--is-inside-work-tree"
	gitTrueOutputConstant                   = "true"
	repositoryPathRequiredMessageConstant   = "repository path is required"
	missingExecutorMessageConstant          = "git executor is required"
	operationErrorTemplateConstant          = "git %s failed: %w"
	configurationKeyRequiredMessageConstant = "configuration key is required"
)

// GitExecutor runs git commands on behalf of the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager provides structured git operations against a working directory.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, fmt.Errorf("%s", missingExecutorMessageConstant)
	}
	return &RepositoryManager{executor: executor}, nil
}

// InitializeRepository creates a fresh git repository in the provided directory.
func (manager *RepositoryManager) InitializeRepository(executionContext context.Context, repositoryPath string) error {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitInitSubcommandConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, gitInitSubcommandConstant, executionError)
	}
	return nil
}

// IsInsideWorkTree reports whether the directory already belongs to a git repository.
func (manager *RepositoryManager) IsInsideWorkTree(executionContext context.Context, repositoryPath string) (bool, error) {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return false, validationError
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitIsInsideWorkTreeFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		if commandFailed(executionError) {
			return false, nil
		}
		return false, fmt.Errorf(operationErrorTemplateConstant, gitRevParseSubcommandConstant, executionError)
	}

	return strings.TrimSpace(executionResult.StandardOutput) == gitTrueOutputConstant, nil
}

// StageAllChanges stages every pending change in the repository.
func (manager *RepositoryManager) StageAllChanges(executionContext context.Context, repositoryPath string) error {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitAddSubcommandConstant, gitAllPathsArgumentConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, gitAddSubcommandConstant, executionError)
	}
	return nil
}

// HasStagedChanges reports whether any change is staged for commit.
func (manager *RepositoryManager) HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return false, validationError
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, fmt.Errorf(operationErrorTemplateConstant, gitStatusSubcommandConstant, executionError)
	}

	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// CreateCommit records a commit with the provided message.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(commitMessage)) == 0 {
		return fmt.Errorf("%s", requiredValueMessageConstant)
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitCommitMessageFlagConstant, commitMessage},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, gitCommitSubcommandConstant, executionError)
	}
	return nil
}

// RenameCurrentBranch force-renames the checked out branch.
func (manager *RepositoryManager) RenameCurrentBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(branchName)) == 0 {
		return fmt.Errorf("%s", requiredValueMessageConstant)
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant, gitForceRenameFlagConstant, branchName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, gitBranchSubcommandConstant, executionError)
	}
	return nil
}

// AddRemote registers a named remote pointing at the provided URL.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(remoteName)) == 0 || len(strings.TrimSpace(remoteURL)) == 0 {
		return fmt.Errorf("%s", requiredValueMessageConstant)
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteAddArgumentConstant, remoteName, remoteURL},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, gitRemoteSubcommandConstant, executionError)
	}
	return nil
}

// GetRemoteURL resolves the URL configured for a named remote, returning an empty string when the remote is not registered.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return "", validationError
	}
	if len(strings.TrimSpace(remoteName)) == 0 {
		return "", fmt.Errorf("%s", requiredValueMessageConstant)
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLArgumentConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		if commandFailed(executionError) {
			return "", nil
		}
		return "", fmt.Errorf(operationErrorTemplateConstant, gitRemoteSubcommandConstant, executionError)
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// PushWithUpstream pushes the branch to the remote and records the upstream association.
func (manager *RepositoryManager) PushWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(remoteName)) == 0 || len(strings.TrimSpace(branchName)) == 0 {
		return fmt.Errorf("%s", requiredValueMessageConstant)
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitPushSubcommandConstant, gitUpstreamFlagConstant, remoteName, branchName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, gitPushSubcommandConstant, executionError)
	}
	return nil
}

// PullAllowingUnrelatedHistories merges remote history into the local branch even without a common ancestor.
func (manager *RepositoryManager) PullAllowingUnrelatedHistories(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	if validationError := requireRepositoryPath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(remoteName)) == 0 || len(strings.TrimSpace(branchName)) == 0 {
		return fmt.Errorf("%s", requiredValueMessageConstant)
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitPullSubcommandConstant, gitAllowUnrelatedHistoriesFlagConstant, gitNoRebaseFlagConstant, remoteName, branchName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, gitPullSubcommandConstant, executionError)
	}
	return nil
}

// GetGlobalConfiguration reads a global git configuration value, returning an empty string when unset.
func (manager *RepositoryManager) GetGlobalConfiguration(executionContext context.Context, configurationKey string) (string, error) {
	if len(strings.TrimSpace(configurationKey)) == 0 {
		return "", fmt.Errorf("%s", configurationKeyRequiredMessageConstant)
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitConfigSubcommandConstant, gitGlobalFlagConstant, configurationKey},
	})
	if executionError != nil {
		if commandFailed(executionError) {
			return "", nil
		}
		return "", fmt.Errorf(operationErrorTemplateConstant, gitConfigSubcommandConstant, executionError)
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// SetGlobalConfiguration writes a global git configuration value.
func (manager *RepositoryManager) SetGlobalConfiguration(executionContext context.Context, configurationKey string, configurationValue string) error {
	if len(strings.TrimSpace(configurationKey)) == 0 {
		return fmt.Errorf("%s", configurationKeyRequiredMessageConstant)
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitConfigSubcommandConstant, gitGlobalFlagConstant, configurationKey, configurationValue},
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, gitConfigSubcommandConstant, executionError)
	}
	return nil
}

func commandFailed(executionError error) bool {
	var failedError execshell.CommandFailedError
	return errors.As(executionError, &failedError)
}

func requireRepositoryPath(repositoryPath string) error {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return fmt.Errorf("%s", repositoryPathRequiredMessageConstant)
	}
	return nil
}
