package bootstrap_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitprep/gitprep/internal/bootstrap"
)

func TestCommandMetadata(testInstance *testing.T) {
	builder := &bootstrap.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "bootstrap", command.Use)

	for _, flagName := range []string{"path", "owner", "repository", "visibility", "message", "branch", "remote", "protocol", "host", "identity-file"} {
		require.NotNil(testInstance, command.Flags().Lookup(flagName), flagName)
	}
}

func TestCommandFlagOverridesConfiguration(testInstance *testing.T) {
	manager := &fakeRepositoryManager{stagedChanges: true}
	client := &fakeRepositoryClient{}

	builder := &bootstrap.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() bootstrap.CommandConfiguration {
			configuration := bootstrap.DefaultCommandConfiguration()
			configuration.Owner = "configured-owner"
			configuration.RepositoryPath = "/workspace/configured"
			return configuration
		},
		RepositoryManager: manager,
		RepositoryClient:  client,
		SSHAgent:          &fakeSSHAgent{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetArgs([]string{"--owner", "operator", "--repository", "project", "--branch", "trunk"})
	command.SetContext(context.Background())

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, []string{"operator/project"}, client.createdSlugs)
	require.Equal(testInstance, []string{"trunk"}, manager.renamedBranches)
}

func TestCommandRequiresOwner(testInstance *testing.T) {
	builder := &bootstrap.CommandBuilder{
		ConfigurationProvider: func() bootstrap.CommandConfiguration {
			configuration := bootstrap.DefaultCommandConfiguration()
			configuration.Owner = ""
			return configuration
		},
		RepositoryManager: &fakeRepositoryManager{stagedChanges: true},
		RepositoryClient:  &fakeRepositoryClient{},
		SSHAgent:          &fakeSSHAgent{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{})
	command.SetContext(context.Background())

	require.ErrorIs(testInstance, command.Execute(), bootstrap.ErrOwnerRequired)
}
