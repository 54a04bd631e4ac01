package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gitprep/gitprep/internal/githubcli"
	"github.com/gitprep/gitprep/internal/gitrepo"
)

const (
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	repositoryClientMissingMessageConstant  = "repository client not configured"
	repositoryPathRequiredMessageConstant   = "repository path must be provided"
	ownerRequiredMessageConstant            = "repository owner must be provided"
	nothingToCommitMessageConstant          = "nothing to commit in a freshly initialized repository"
	remoteMismatchTemplateConstant          = "remote %s points at %s, expected %s"
	unknownVisibilityTemplateConstant       = "unknown repository visibility %q"
	remedyFailureTemplateConstant           = "remedy %s failed: %w"
	sshAgentMissingMessageConstant          = "ssh agent client not configured"
	stepInitializeLabelConstant             = "init"
	stepStageLabelConstant                  = "stage"
	stepCommitLabelConstant                 = "commit"
	stepCreateRemoteLabelConstant           = "create-remote"
	stepRenameBranchLabelConstant           = "rename-branch"
	stepAddRemoteLabelConstant              = "add-remote"
	stepPushLabelConstant                   = "push"
	bootstrapCompleteNoticeTemplate         = "Bootstrapped %s -> %s\n"
	remedyAppliedNoticeTemplateConstant     = "Applying remedy %s and retrying push\n"
	defaultBranchNoticeTemplateConstant     = "Remote default branch is %s, pushing %s\n"
	repositorySlugSeparatorConstant         = "/"
)

// ErrRepositoryManagerNotConfigured indicates the git dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrRepositoryClientNotConfigured indicates the hosting client dependency was missing.
var ErrRepositoryClientNotConfigured = errors.New(repositoryClientMissingMessageConstant)

// ErrSSHAgentNotConfigured indicates the ssh agent dependency was missing when its remedy was needed.
var ErrSSHAgentNotConfigured = errors.New(sshAgentMissingMessageConstant)

// ErrRepositoryPathRequired indicates the target directory option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrOwnerRequired indicates the remote owner option was empty.
var ErrOwnerRequired = errors.New(ownerRequiredMessageConstant)

// ErrNothingToCommit indicates a fresh repository contained no stageable files.
var ErrNothingToCommit = errors.New(nothingToCommitMessageConstant)

// LocalRepositoryManager enumerates git operations required by the workflow.
type LocalRepositoryManager interface {
	IsInsideWorkTree(executionContext context.Context, repositoryPath string) (bool, error)
	InitializeRepository(executionContext context.Context, repositoryPath string) error
	StageAllChanges(executionContext context.Context, repositoryPath string) error
	HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error
	RenameCurrentBranch(executionContext context.Context, repositoryPath string, branchName string) error
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	PushWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	PullAllowingUnrelatedHistories(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
}

// RemoteRepositoryClient enumerates hosting operations required by the workflow.
type RemoteRepositoryClient interface {
	RepositoryExists(executionContext context.Context, repository string) (bool, error)
	CreateRepository(executionContext context.Context, repository string, visibility githubcli.RepositoryVisibility) error
	ResolveRepoMetadata(executionContext context.Context, repository string) (githubcli.RepositoryMetadata, error)
}

// SSHAgentClient loads identities for the publickey remedy.
type SSHAgentClient interface {
	EnsureIdentity(executionContext context.Context, identityFilePath string) error
}

// Dependencies enumerates external collaborators required for bootstrap.
type Dependencies struct {
	RepositoryManager LocalRepositoryManager
	RepositoryClient  RemoteRepositoryClient
	SSHAgent          SSHAgentClient
	OutputWriter      io.Writer
}

// Options configures a bootstrap run.
type Options struct {
	RepositoryPath string
	Owner          string
	RepositoryName string
	Visibility     string
	CommitMessage  string
	BranchName     string
	RemoteName     string
	RemoteProtocol string
	RemoteHost     string
	IdentityFile   string
}

// Result captures the observable outcomes of a bootstrap run.
type Result struct {
	StepsExecuted       []string
	StepsSkipped        []string
	RemediesApplied     []RemedyKind
	RemoteURL           string
	RemoteDefaultBranch string
}

// Service coordinates the repository bootstrap workflow.
type Service struct {
	repositoryManager LocalRepositoryManager
	repositoryClient  RemoteRepositoryClient
	sshAgent          SSHAgentClient
	outputWriter      io.Writer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.RepositoryClient == nil {
		return nil, ErrRepositoryClientNotConfigured
	}

	outputWriter := dependencies.OutputWriter
	if outputWriter == nil {
		outputWriter = io.Discard
	}

	return &Service{
		repositoryManager: dependencies.RepositoryManager,
		repositoryClient:  dependencies.RepositoryClient,
		sshAgent:          dependencies.SSHAgent,
		outputWriter:      outputWriter,
	}, nil
}

// Bootstrap executes the ordered first-push steps.
func (service *Service) Bootstrap(executionContext context.Context, options Options) (Result, error) {
	normalizedOptions, normalizationError := normalizeOptions(options)
	if normalizationError != nil {
		return Result{}, normalizationError
	}

	result := Result{}

	alreadyRepository, workTreeError := service.repositoryManager.IsInsideWorkTree(executionContext, normalizedOptions.RepositoryPath)
	if workTreeError != nil {
		return result, workTreeError
	}
	if alreadyRepository {
		result.StepsSkipped = append(result.StepsSkipped, stepInitializeLabelConstant)
	} else {
		if initializationError := service.repositoryManager.InitializeRepository(executionContext, normalizedOptions.RepositoryPath); initializationError != nil {
			return result, initializationError
		}
		result.StepsExecuted = append(result.StepsExecuted, stepInitializeLabelConstant)
	}

	if stagingError := service.repositoryManager.StageAllChanges(executionContext, normalizedOptions.RepositoryPath); stagingError != nil {
		return result, stagingError
	}
	result.StepsExecuted = append(result.StepsExecuted, stepStageLabelConstant)

	stagedChanges, stagingStateError := service.repositoryManager.HasStagedChanges(executionContext, normalizedOptions.RepositoryPath)
	if stagingStateError != nil {
		return result, stagingStateError
	}
	switch {
	case stagedChanges:
		if commitError := service.repositoryManager.CreateCommit(executionContext, normalizedOptions.RepositoryPath, normalizedOptions.CommitMessage); commitError != nil {
			return result, commitError
		}
		result.StepsExecuted = append(result.StepsExecuted, stepCommitLabelConstant)
	case alreadyRepository:
		result.StepsSkipped = append(result.StepsSkipped, stepCommitLabelConstant)
	default:
		return result, ErrNothingToCommit
	}

	repositorySlug := normalizedOptions.Owner + repositorySlugSeparatorConstant + normalizedOptions.RepositoryName
	repositoryExists, existenceError := service.repositoryClient.RepositoryExists(executionContext, repositorySlug)
	if existenceError != nil {
		return result, existenceError
	}
	if repositoryExists {
		repositoryMetadata, metadataError := service.repositoryClient.ResolveRepoMetadata(executionContext, repositorySlug)
		if metadataError != nil {
			return result, metadataError
		}
		result.RemoteDefaultBranch = repositoryMetadata.DefaultBranch
		if len(repositoryMetadata.DefaultBranch) > 0 && repositoryMetadata.DefaultBranch != normalizedOptions.BranchName {
			fmt.Fprintf(service.outputWriter, defaultBranchNoticeTemplateConstant, repositoryMetadata.DefaultBranch, normalizedOptions.BranchName)
		}
		result.StepsSkipped = append(result.StepsSkipped, stepCreateRemoteLabelConstant)
	} else {
		visibility, visibilityError := parseVisibility(normalizedOptions.Visibility)
		if visibilityError != nil {
			return result, visibilityError
		}
		if creationError := service.repositoryClient.CreateRepository(executionContext, repositorySlug, visibility); creationError != nil {
			return result, creationError
		}
		result.StepsExecuted = append(result.StepsExecuted, stepCreateRemoteLabelConstant)
	}

	if renameError := service.repositoryManager.RenameCurrentBranch(executionContext, normalizedOptions.RepositoryPath, normalizedOptions.BranchName); renameError != nil {
		return result, renameError
	}
	result.StepsExecuted = append(result.StepsExecuted, stepRenameBranchLabelConstant)

	desiredRemote := gitrepo.RemoteURL{
		Protocol:   gitrepo.RemoteProtocol(normalizedOptions.RemoteProtocol),
		Host:       normalizedOptions.RemoteHost,
		Owner:      normalizedOptions.Owner,
		Repository: normalizedOptions.RepositoryName,
	}
	desiredRemoteURL, remoteURLError := gitrepo.FormatRemoteURL(desiredRemote)
	if remoteURLError != nil {
		return result, remoteURLError
	}
	result.RemoteURL = desiredRemoteURL

	existingRemoteURL, remoteLookupError := service.repositoryManager.GetRemoteURL(executionContext, normalizedOptions.RepositoryPath, normalizedOptions.RemoteName)
	if remoteLookupError != nil {
		return result, remoteLookupError
	}
	switch {
	case len(existingRemoteURL) == 0:
		if remoteAdditionError := service.repositoryManager.AddRemote(executionContext, normalizedOptions.RepositoryPath, normalizedOptions.RemoteName, desiredRemoteURL); remoteAdditionError != nil {
			return result, remoteAdditionError
		}
		result.StepsExecuted = append(result.StepsExecuted, stepAddRemoteLabelConstant)
	case remoteMatchesDesired(existingRemoteURL, desiredRemote):
		result.StepsSkipped = append(result.StepsSkipped, stepAddRemoteLabelConstant)
	default:
		return result, fmt.Errorf(remoteMismatchTemplateConstant, normalizedOptions.RemoteName, existingRemoteURL, desiredRemoteURL)
	}

	if pushError := service.pushWithRemedies(executionContext, normalizedOptions, &result); pushError != nil {
		return result, pushError
	}
	result.StepsExecuted = append(result.StepsExecuted, stepPushLabelConstant)

	fmt.Fprintf(service.outputWriter, bootstrapCompleteNoticeTemplate, normalizedOptions.RepositoryPath, desiredRemoteURL)
	return result, nil
}

func (service *Service) pushWithRemedies(executionContext context.Context, options Options, result *Result) error {
	appliedRemedies := map[RemedyKind]struct{}{}

	pushError := service.repositoryManager.PushWithUpstream(executionContext, options.RepositoryPath, options.RemoteName, options.BranchName)
	for pushError != nil {
		if executionContext.Err() != nil {
			return executionContext.Err()
		}

		remedy := ClassifyPushFailure(pushError)
		if remedy == RemedyNone {
			return pushError
		}
		if _, alreadyApplied := appliedRemedies[remedy]; alreadyApplied {
			return pushError
		}
		appliedRemedies[remedy] = struct{}{}

		fmt.Fprintf(service.outputWriter, remedyAppliedNoticeTemplateConstant, remedy)
		if remedyError := service.applyRemedy(executionContext, remedy, options); remedyError != nil {
			return fmt.Errorf(remedyFailureTemplateConstant, remedy, remedyError)
		}
		result.RemediesApplied = append(result.RemediesApplied, remedy)

		pushError = service.repositoryManager.PushWithUpstream(executionContext, options.RepositoryPath, options.RemoteName, options.BranchName)
	}

	return nil
}

func (service *Service) applyRemedy(executionContext context.Context, remedy RemedyKind, options Options) error {
	switch remedy {
	case RemedySSHIdentity:
		if service.sshAgent == nil {
			return ErrSSHAgentNotConfigured
		}
		return service.sshAgent.EnsureIdentity(executionContext, options.IdentityFile)
	case RemedyUnrelatedHistories:
		return service.repositoryManager.PullAllowingUnrelatedHistories(executionContext, options.RepositoryPath, options.RemoteName, options.BranchName)
	default:
		return nil
	}
}

func remoteMatchesDesired(existingRemoteURL string, desiredRemote gitrepo.RemoteURL) bool {
	parsedRemote, parseError := gitrepo.ParseRemoteURL(existingRemoteURL)
	if parseError != nil {
		return false
	}
	return strings.EqualFold(parsedRemote.Host, desiredRemote.Host) &&
		strings.EqualFold(parsedRemote.Owner, desiredRemote.Owner) &&
		strings.EqualFold(parsedRemote.Repository, desiredRemote.Repository)
}

func normalizeOptions(options Options) (Options, error) {
	normalized := options

	if len(strings.TrimSpace(normalized.RepositoryPath)) == 0 {
		return Options{}, ErrRepositoryPathRequired
	}
	if len(strings.TrimSpace(normalized.Owner)) == 0 {
		return Options{}, ErrOwnerRequired
	}

	if len(strings.TrimSpace(normalized.RepositoryName)) == 0 {
		absolutePath, absoluteError := filepath.Abs(normalized.RepositoryPath)
		if absoluteError != nil {
			return Options{}, absoluteError
		}
		normalized.RepositoryName = filepath.Base(absolutePath)
	}

	defaults := DefaultCommandConfiguration()
	if len(strings.TrimSpace(normalized.Visibility)) == 0 {
		normalized.Visibility = defaults.Visibility
	}
	if len(strings.TrimSpace(normalized.CommitMessage)) == 0 {
		normalized.CommitMessage = defaults.CommitMessage
	}
	if len(strings.TrimSpace(normalized.BranchName)) == 0 {
		normalized.BranchName = defaults.BranchName
	}
	if len(strings.TrimSpace(normalized.RemoteName)) == 0 {
		normalized.RemoteName = defaults.RemoteName
	}
	if len(strings.TrimSpace(normalized.RemoteProtocol)) == 0 {
		normalized.RemoteProtocol = defaults.RemoteProtocol
	}
	if len(strings.TrimSpace(normalized.RemoteHost)) == 0 {
		normalized.RemoteHost = defaults.RemoteHost
	}
	if len(strings.TrimSpace(normalized.IdentityFile)) == 0 {
		normalized.IdentityFile = defaults.IdentityFile
	}

	return normalized, nil
}

func parseVisibility(visibility string) (githubcli.RepositoryVisibility, error) {
	switch githubcli.RepositoryVisibility(visibility) {
	case githubcli.RepositoryVisibilityPrivate, githubcli.RepositoryVisibilityPublic, githubcli.RepositoryVisibilityInternal:
		return githubcli.RepositoryVisibility(visibility), nil
	default:
		return "", fmt.Errorf(unknownVisibilityTemplateConstant, visibility)
	}
}
