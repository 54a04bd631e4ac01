package workflow

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitprep/gitprep/internal/bootstrap"
	"github.com/gitprep/gitprep/internal/execshell"
	"github.com/gitprep/gitprep/internal/githubcli"
	"github.com/gitprep/gitprep/internal/gitrepo"
	"github.com/gitprep/gitprep/internal/gpg"
	"github.com/gitprep/gitprep/internal/provision"
	"github.com/gitprep/gitprep/internal/sshauth"
	"github.com/gitprep/gitprep/internal/ui"
)

const (
	commandUseConstant              = "run"
	commandShortDescriptionConstant = "Execute an ordered steps file"
	commandLongDescriptionConstant  = "run loads a YAML steps file naming signing-setup and bootstrap operations and executes them sequentially, stopping at the first failure."
	stepsFlagNameConstant           = "steps"
	stepsFlagDescriptionConstant    = "Path to the YAML steps file"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the run command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	Executors                    *OperationExecutors
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(stepsFlagNameConstant, "", stepsFlagDescriptionConstant)
	if markError := command.MarkFlagRequired(stepsFlagNameConstant); markError != nil {
		return nil, markError
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	stepsFilePath, flagError := command.Flags().GetString(stepsFlagNameConstant)
	if flagError != nil {
		return flagError
	}

	configuration, loadError := LoadConfiguration(stepsFilePath)
	if loadError != nil {
		return loadError
	}

	executors, executorsError := builder.resolveExecutors(command)
	if executorsError != nil {
		return executorsError
	}

	runner, runnerError := NewRunner(executors, command.OutOrStdout())
	if runnerError != nil {
		return runnerError
	}

	return runner.Run(command.Context(), configuration)
}

func (builder *CommandBuilder) resolveExecutors(command *cobra.Command) (OperationExecutors, error) {
	if builder.Executors != nil {
		return *builder.Executors, nil
	}

	shellExecutor, executorError := builder.buildShellExecutor()
	if executorError != nil {
		return OperationExecutors{}, executorError
	}

	return OperationExecutors{
		SigningSetup: func(executionContext context.Context, configuration provision.CommandConfiguration) error {
			return runSigningSetup(executionContext, command, shellExecutor, configuration)
		},
		Bootstrap: func(executionContext context.Context, configuration bootstrap.CommandConfiguration) error {
			return runBootstrap(executionContext, command, shellExecutor, configuration)
		},
	}, nil
}

func runSigningSetup(executionContext context.Context, command *cobra.Command, shellExecutor *execshell.ShellExecutor, configuration provision.CommandConfiguration) error {
	keyManager, keyManagerError := gpg.NewKeyManager(shellExecutor, configuration.TerminalDevice)
	if keyManagerError != nil {
		return keyManagerError
	}
	githubClient, clientError := githubcli.NewClient(shellExecutor)
	if clientError != nil {
		return clientError
	}
	repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceError := provision.NewService(provision.Dependencies{
		KeyManager:   keyManager,
		Registrar:    githubClient,
		GitConfig:    repositoryManager,
		Prompter:     provision.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout()),
		OutputWriter: command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, provisioningError := service.Provision(executionContext, provision.Options{
		RealName:   configuration.RealName,
		Email:      configuration.Email,
		Expiration: configuration.Expiration,
		Passphrase: configuration.Passphrase,
		KeyID:      configuration.KeyID,
		KeyTitle:   configuration.KeyTitle,
		SkipUpload: configuration.SkipUpload,
		ExportPath: configuration.ExportPath,
		AssumeYes:  configuration.AssumeYes,
	})
	return provisioningError
}

func runBootstrap(executionContext context.Context, command *cobra.Command, shellExecutor *execshell.ShellExecutor, configuration bootstrap.CommandConfiguration) error {
	repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
	if managerError != nil {
		return managerError
	}
	githubClient, clientError := githubcli.NewClient(shellExecutor)
	if clientError != nil {
		return clientError
	}
	agentClient, agentError := sshauth.NewAgentClient(shellExecutor, nil)
	if agentError != nil {
		return agentError
	}

	service, serviceError := bootstrap.NewService(bootstrap.Dependencies{
		RepositoryManager: repositoryManager,
		RepositoryClient:  githubClient,
		SSHAgent:          agentClient,
		OutputWriter:      command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, bootstrapError := service.Bootstrap(executionContext, bootstrap.Options{
		RepositoryPath: configuration.RepositoryPath,
		Owner:          configuration.Owner,
		RepositoryName: configuration.RepositoryName,
		Visibility:     configuration.Visibility,
		CommitMessage:  configuration.CommitMessage,
		BranchName:     configuration.BranchName,
		RemoteName:     configuration.RemoteName,
		RemoteProtocol: configuration.RemoteProtocol,
		RemoteHost:     configuration.RemoteHost,
		IdentityFile:   configuration.IdentityFile,
	})
	return bootstrapError
}

func (builder *CommandBuilder) buildShellExecutor() (*execshell.ShellExecutor, error) {
	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}
	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
