package bootstrap

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitprep/gitprep/internal/execshell"
	"github.com/gitprep/gitprep/internal/githubcli"
	"github.com/gitprep/gitprep/internal/gitrepo"
	"github.com/gitprep/gitprep/internal/sshauth"
	"github.com/gitprep/gitprep/internal/ui"
	"github.com/gitprep/gitprep/internal/utils"
)

const (
	commandUseConstant              = "bootstrap"
	commandShortDescriptionConstant = "Create a remote repository and push the first commit"
	commandLongDescriptionConstant  = "bootstrap initializes the target directory as a git repository, commits its contents, creates the remote repository without auto-generated files, and pushes with upstream tracking, retrying once after documented push failures."
	pathFlagNameConstant            = "path"
	pathFlagDescriptionConstant     = "Directory to bootstrap"
	ownerFlagNameConstant           = "owner"
	ownerFlagDescriptionConstant    = "Remote repository owner"
	repositoryFlagNameConstant      = "repository"
	repositoryFlagDescription       = "Remote repository name (defaults to the directory name)"
	visibilityFlagNameConstant      = "visibility"
	visibilityFlagDescription       = "Remote repository visibility (private, public, internal)"
	commitMessageFlagNameConstant   = "message"
	commitMessageFlagDescription    = "Commit message for the initial commit"
	branchFlagNameConstant          = "branch"
	branchFlagDescriptionConstant   = "Default branch name"
	remoteFlagNameConstant          = "remote"
	remoteFlagDescriptionConstant   = "Remote name"
	protocolFlagNameConstant        = "protocol"
	protocolFlagDescriptionConstant = "Remote protocol (ssh or https)"
	identityFlagNameConstant        = "identity-file"
	identityFlagDescriptionConstant = "SSH identity loaded when the push is denied"
	remoteHostFlagNameConstant      = "host"
	remoteHostFlagDescription       = "Remote host"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the bootstrap command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	RepositoryManager            LocalRepositoryManager
	RepositoryClient             RemoteRepositoryClient
	SSHAgent                     SSHAgentClient
}

// Build constructs the bootstrap command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(pathFlagNameConstant, "", pathFlagDescriptionConstant)
	command.Flags().String(ownerFlagNameConstant, "", ownerFlagDescriptionConstant)
	command.Flags().String(repositoryFlagNameConstant, "", repositoryFlagDescription)
	command.Flags().String(visibilityFlagNameConstant, "", visibilityFlagDescription)
	command.Flags().String(commitMessageFlagNameConstant, "", commitMessageFlagDescription)
	command.Flags().String(branchFlagNameConstant, "", branchFlagDescriptionConstant)
	command.Flags().String(remoteFlagNameConstant, "", remoteFlagDescriptionConstant)
	command.Flags().String(protocolFlagNameConstant, "", protocolFlagDescriptionConstant)
	command.Flags().String(remoteHostFlagNameConstant, "", remoteHostFlagDescription)
	command.Flags().String(identityFlagNameConstant, "", identityFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	options, optionsError := builder.resolveOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}

	dependencies, dependenciesError := builder.resolveDependencies(command)
	if dependenciesError != nil {
		return dependenciesError
	}

	service, serviceCreationError := NewService(dependencies)
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, bootstrapError := service.Bootstrap(command.Context(), options)
	return bootstrapError
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command, configuration CommandConfiguration) (Options, error) {
	options := Options{
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
	}

	stringOverrides := []struct {
		flagName string
		target   *string
	}{
		{flagName: pathFlagNameConstant, target: &options.RepositoryPath},
		{flagName: ownerFlagNameConstant, target: &options.Owner},
		{flagName: repositoryFlagNameConstant, target: &options.RepositoryName},
		{flagName: visibilityFlagNameConstant, target: &options.Visibility},
		{flagName: commitMessageFlagNameConstant, target: &options.CommitMessage},
		{flagName: branchFlagNameConstant, target: &options.BranchName},
		{flagName: remoteFlagNameConstant, target: &options.RemoteName},
		{flagName: protocolFlagNameConstant, target: &options.RemoteProtocol},
		{flagName: remoteHostFlagNameConstant, target: &options.RemoteHost},
		{flagName: identityFlagNameConstant, target: &options.IdentityFile},
	}
	for _, override := range stringOverrides {
		if !command.Flags().Changed(override.flagName) {
			continue
		}
		flagValue, flagError := command.Flags().GetString(override.flagName)
		if flagError != nil {
			return Options{}, flagError
		}
		*override.target = flagValue
	}

	return options, nil
}

func (builder *CommandBuilder) resolveDependencies(command *cobra.Command) (Dependencies, error) {
	dependencies := Dependencies{
		RepositoryManager: builder.RepositoryManager,
		RepositoryClient:  builder.RepositoryClient,
		SSHAgent:          builder.SSHAgent,
		OutputWriter:      utils.NewFlushingWriter(command.OutOrStdout()),
	}

	needsExecutor := dependencies.RepositoryManager == nil || dependencies.RepositoryClient == nil || dependencies.SSHAgent == nil
	if needsExecutor {
		shellExecutor, executorError := builder.buildShellExecutor()
		if executorError != nil {
			return Dependencies{}, executorError
		}

		if dependencies.RepositoryManager == nil {
			repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
			if managerError != nil {
				return Dependencies{}, managerError
			}
			dependencies.RepositoryManager = repositoryManager
		}

		if dependencies.RepositoryClient == nil {
			githubClient, clientError := githubcli.NewClient(shellExecutor)
			if clientError != nil {
				return Dependencies{}, clientError
			}
			dependencies.RepositoryClient = githubClient
		}

		if dependencies.SSHAgent == nil {
			agentClient, agentError := sshauth.NewAgentClient(shellExecutor, nil)
			if agentError != nil {
				return Dependencies{}, agentError
			}
			dependencies.SSHAgent = agentClient
		}
	}

	return dependencies, nil
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

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
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
