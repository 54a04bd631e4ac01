package bootstrap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitprep/gitprep/internal/bootstrap"
	"github.com/gitprep/gitprep/internal/execshell"
	"github.com/gitprep/gitprep/internal/githubcli"
)

const (
	serviceTestRepositoryPathConstant = "/workspace/project"
	serviceTestOwnerConstant          = "operator"
	serviceTestRepositoryNameConstant = "project"
	serviceTestRemoteURLConstant      = "git@github.com:operator/project.git"
	serviceTestIdentityFileConstant   = "~/.ssh/id_ed25519"
)

type fakeRepositoryManager struct {
	insideWorkTree    bool
	stagedChanges     bool
	existingRemote    string
	remoteLookupError error
	pushErrors        []error
	pushAttempts      int
	pullCalls         int
	initializeCalls   int
	commitMessages    []string
	renamedBranches   []string
	addedRemoteURLs   []string
	stageCalls        int
	operationalError  error
}

func (manager *fakeRepositoryManager) IsInsideWorkTree(context.Context, string) (bool, error) {
	return manager.insideWorkTree, nil
}

func (manager *fakeRepositoryManager) InitializeRepository(context.Context, string) error {
	manager.initializeCalls++
	return manager.operationalError
}

func (manager *fakeRepositoryManager) StageAllChanges(context.Context, string) error {
	manager.stageCalls++
	return nil
}

func (manager *fakeRepositoryManager) HasStagedChanges(context.Context, string) (bool, error) {
	return manager.stagedChanges, nil
}

func (manager *fakeRepositoryManager) CreateCommit(_ context.Context, _ string, commitMessage string) error {
	manager.commitMessages = append(manager.commitMessages, commitMessage)
	return nil
}

func (manager *fakeRepositoryManager) RenameCurrentBranch(_ context.Context, _ string, branchName string) error {
	manager.renamedBranches = append(manager.renamedBranches, branchName)
	return nil
}

func (manager *fakeRepositoryManager) AddRemote(_ context.Context, _ string, _ string, remoteURL string) error {
	manager.addedRemoteURLs = append(manager.addedRemoteURLs, remoteURL)
	return nil
}

func (manager *fakeRepositoryManager) GetRemoteURL(context.Context, string, string) (string, error) {
	if manager.remoteLookupError != nil {
		return "", manager.remoteLookupError
	}
	return manager.existingRemote, nil
}

func (manager *fakeRepositoryManager) PushWithUpstream(context.Context, string, string, string) error {
	manager.pushAttempts++
	if len(manager.pushErrors) == 0 {
		return nil
	}
	nextError := manager.pushErrors[0]
	manager.pushErrors = manager.pushErrors[1:]
	return nextError
}

func (manager *fakeRepositoryManager) PullAllowingUnrelatedHistories(context.Context, string, string, string) error {
	manager.pullCalls++
	return nil
}

type fakeRepositoryClient struct {
	repositoryExists bool
	existenceError   error
	createdSlugs     []string
	visibilities     []githubcli.RepositoryVisibility
	metadata         githubcli.RepositoryMetadata
	metadataError    error
	metadataCalls    int
}

func (client *fakeRepositoryClient) RepositoryExists(context.Context, string) (bool, error) {
	return client.repositoryExists, client.existenceError
}

func (client *fakeRepositoryClient) CreateRepository(_ context.Context, repository string, visibility githubcli.RepositoryVisibility) error {
	client.createdSlugs = append(client.createdSlugs, repository)
	client.visibilities = append(client.visibilities, visibility)
	return nil
}

func (client *fakeRepositoryClient) ResolveRepoMetadata(context.Context, string) (githubcli.RepositoryMetadata, error) {
	client.metadataCalls++
	return client.metadata, client.metadataError
}

type fakeSSHAgent struct {
	ensuredIdentities []string
	ensureError       error
}

func (agent *fakeSSHAgent) EnsureIdentity(_ context.Context, identityFilePath string) error {
	if agent.ensureError != nil {
		return agent.ensureError
	}
	agent.ensuredIdentities = append(agent.ensuredIdentities, identityFilePath)
	return nil
}

func pushFailureWithStderr(standardError string) error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: standardError},
	}
}

func defaultTestOptions() bootstrap.Options {
	return bootstrap.Options{
		RepositoryPath: serviceTestRepositoryPathConstant,
		Owner:          serviceTestOwnerConstant,
		RepositoryName: serviceTestRepositoryNameConstant,
		IdentityFile:   serviceTestIdentityFileConstant,
	}
}

func newTestService(testInstance *testing.T, manager *fakeRepositoryManager, client *fakeRepositoryClient, agent *fakeSSHAgent) *bootstrap.Service {
	service, creationError := bootstrap.NewService(bootstrap.Dependencies{
		RepositoryManager: manager,
		RepositoryClient:  client,
		SSHAgent:          agent,
	})
	require.NoError(testInstance, creationError)
	return service
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, creationError := bootstrap.NewService(bootstrap.Dependencies{RepositoryClient: &fakeRepositoryClient{}})
	require.ErrorIs(testInstance, creationError, bootstrap.ErrRepositoryManagerNotConfigured)

	_, creationError = bootstrap.NewService(bootstrap.Dependencies{RepositoryManager: &fakeRepositoryManager{}})
	require.ErrorIs(testInstance, creationError, bootstrap.ErrRepositoryClientNotConfigured)
}

func TestBootstrapValidatesOptions(testInstance *testing.T) {
	service := newTestService(testInstance, &fakeRepositoryManager{stagedChanges: true}, &fakeRepositoryClient{}, &fakeSSHAgent{})

	_, missingPathError := service.Bootstrap(context.Background(), bootstrap.Options{Owner: serviceTestOwnerConstant})
	require.ErrorIs(testInstance, missingPathError, bootstrap.ErrRepositoryPathRequired)

	_, missingOwnerError := service.Bootstrap(context.Background(), bootstrap.Options{RepositoryPath: serviceTestRepositoryPathConstant})
	require.ErrorIs(testInstance, missingOwnerError, bootstrap.ErrOwnerRequired)
}

func TestBootstrapFreshRepositoryExecutesAllSteps(testInstance *testing.T) {
	manager := &fakeRepositoryManager{stagedChanges: true}
	client := &fakeRepositoryClient{}
	service := newTestService(testInstance, manager, client, &fakeSSHAgent{})

	result, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.NoError(testInstance, bootstrapError)

	require.Equal(testInstance, 1, manager.initializeCalls)
	require.Equal(testInstance, 1, manager.stageCalls)
	require.Equal(testInstance, []string{"initial commit"}, manager.commitMessages)
	require.Equal(testInstance, []string{"main"}, manager.renamedBranches)
	require.Equal(testInstance, []string{serviceTestRemoteURLConstant}, manager.addedRemoteURLs)
	require.Equal(testInstance, []string{"operator/project"}, client.createdSlugs)
	require.Equal(testInstance, []githubcli.RepositoryVisibility{githubcli.RepositoryVisibilityPrivate}, client.visibilities)
	require.Equal(testInstance, serviceTestRemoteURLConstant, result.RemoteURL)
	require.Contains(testInstance, result.StepsExecuted, "push")
	require.Empty(testInstance, result.RemediesApplied)
}

func TestBootstrapSkipsCompletedSteps(testInstance *testing.T) {
	manager := &fakeRepositoryManager{
		insideWorkTree: true,
		stagedChanges:  false,
		existingRemote: serviceTestRemoteURLConstant,
	}
	client := &fakeRepositoryClient{repositoryExists: true}
	service := newTestService(testInstance, manager, client, &fakeSSHAgent{})

	result, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.NoError(testInstance, bootstrapError)

	require.Zero(testInstance, manager.initializeCalls)
	require.Empty(testInstance, manager.commitMessages)
	require.Empty(testInstance, manager.addedRemoteURLs)
	require.Empty(testInstance, client.createdSlugs)
	require.ElementsMatch(testInstance, []string{"init", "commit", "create-remote", "add-remote"}, result.StepsSkipped)
}

func TestBootstrapFreshRepositoryWithNothingToCommitFails(testInstance *testing.T) {
	manager := &fakeRepositoryManager{stagedChanges: false}
	service := newTestService(testInstance, manager, &fakeRepositoryClient{}, &fakeSSHAgent{})

	_, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.ErrorIs(testInstance, bootstrapError, bootstrap.ErrNothingToCommit)
}

func TestBootstrapRemoteURLMismatchFails(testInstance *testing.T) {
	manager := &fakeRepositoryManager{
		insideWorkTree: true,
		stagedChanges:  true,
		existingRemote: "git@github.com:someone-else/project.git",
	}
	service := newTestService(testInstance, manager, &fakeRepositoryClient{repositoryExists: true}, &fakeSSHAgent{})

	_, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.Error(testInstance, bootstrapError)
	require.Contains(testInstance, bootstrapError.Error(), "expected "+serviceTestRemoteURLConstant)
	require.Zero(testInstance, manager.pushAttempts)
}

func TestBootstrapAppliesSSHIdentityRemedy(testInstance *testing.T) {
	manager := &fakeRepositoryManager{
		stagedChanges: true,
		pushErrors:    []error{pushFailureWithStderr("git@github.com: Permission denied (publickey).")},
	}
	agent := &fakeSSHAgent{}
	service := newTestService(testInstance, manager, &fakeRepositoryClient{}, agent)

	result, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.NoError(testInstance, bootstrapError)
	require.Equal(testInstance, 2, manager.pushAttempts)
	require.Equal(testInstance, []string{serviceTestIdentityFileConstant}, agent.ensuredIdentities)
	require.Equal(testInstance, []bootstrap.RemedyKind{bootstrap.RemedySSHIdentity}, result.RemediesApplied)
}

func TestBootstrapAppliesUnrelatedHistoriesRemedy(testInstance *testing.T) {
	manager := &fakeRepositoryManager{
		stagedChanges: true,
		pushErrors: []error{
			pushFailureWithStderr("! [rejected] main -> main (fetch first)\nerror: failed to push some refs"),
		},
	}
	service := newTestService(testInstance, manager, &fakeRepositoryClient{}, &fakeSSHAgent{})

	result, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.NoError(testInstance, bootstrapError)
	require.Equal(testInstance, 2, manager.pushAttempts)
	require.Equal(testInstance, 1, manager.pullCalls)
	require.Equal(testInstance, []bootstrap.RemedyKind{bootstrap.RemedyUnrelatedHistories}, result.RemediesApplied)
}

func TestBootstrapRepeatedFailureAfterRemedyPropagates(testInstance *testing.T) {
	denialError := pushFailureWithStderr("git@github.com: Permission denied (publickey).")
	manager := &fakeRepositoryManager{
		stagedChanges: true,
		pushErrors:    []error{denialError, denialError},
	}
	service := newTestService(testInstance, manager, &fakeRepositoryClient{}, &fakeSSHAgent{})

	_, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.Error(testInstance, bootstrapError)
	require.Equal(testInstance, 2, manager.pushAttempts)
}

func TestBootstrapUnclassifiedPushFailurePropagates(testInstance *testing.T) {
	manager := &fakeRepositoryManager{
		stagedChanges: true,
		pushErrors:    []error{pushFailureWithStderr("fatal: unable to access remote")},
	}
	agent := &fakeSSHAgent{}
	service := newTestService(testInstance, manager, &fakeRepositoryClient{}, agent)

	_, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.Error(testInstance, bootstrapError)
	require.Equal(testInstance, 1, manager.pushAttempts)
	require.Empty(testInstance, agent.ensuredIdentities)
}

func TestBootstrapPropagatesRemoteLookupFailure(testInstance *testing.T) {
	lookupError := errors.New("git remote failed: signal: killed")
	manager := &fakeRepositoryManager{
		stagedChanges:     true,
		remoteLookupError: lookupError,
	}
	service := newTestService(testInstance, manager, &fakeRepositoryClient{}, &fakeSSHAgent{})

	_, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.ErrorIs(testInstance, bootstrapError, lookupError)
	require.Zero(testInstance, manager.pushAttempts)
	require.Empty(testInstance, manager.addedRemoteURLs)
}

func TestBootstrapReportsRemoteDefaultBranch(testInstance *testing.T) {
	manager := &fakeRepositoryManager{
		insideWorkTree: true,
		stagedChanges:  true,
		existingRemote: serviceTestRemoteURLConstant,
	}
	client := &fakeRepositoryClient{
		repositoryExists: true,
		metadata: githubcli.RepositoryMetadata{
			NameWithOwner: "operator/project",
			Visibility:    "PRIVATE",
			DefaultBranch: "master",
		},
	}
	service := newTestService(testInstance, manager, client, &fakeSSHAgent{})

	result, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.NoError(testInstance, bootstrapError)
	require.Equal(testInstance, 1, client.metadataCalls)
	require.Equal(testInstance, "master", result.RemoteDefaultBranch)
}

func TestBootstrapDoesNotResolveMetadataForNewRepository(testInstance *testing.T) {
	manager := &fakeRepositoryManager{stagedChanges: true}
	client := &fakeRepositoryClient{}
	service := newTestService(testInstance, manager, client, &fakeSSHAgent{})

	result, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.NoError(testInstance, bootstrapError)
	require.Zero(testInstance, client.metadataCalls)
	require.Empty(testInstance, result.RemoteDefaultBranch)
}

func TestBootstrapSkipsRemoteRegistrationForEquivalentURL(testInstance *testing.T) {
	manager := &fakeRepositoryManager{
		insideWorkTree: true,
		stagedChanges:  true,
		existingRemote: "https://github.com/Operator/project.git",
	}
	service := newTestService(testInstance, manager, &fakeRepositoryClient{repositoryExists: true}, &fakeSSHAgent{})

	result, bootstrapError := service.Bootstrap(context.Background(), defaultTestOptions())
	require.NoError(testInstance, bootstrapError)
	require.Empty(testInstance, manager.addedRemoteURLs)
	require.Contains(testInstance, result.StepsSkipped, "add-remote")
}
