package provision

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitprep/gitprep/internal/execshell"
	"github.com/gitprep/gitprep/internal/githubcli"
	"github.com/gitprep/gitprep/internal/gitrepo"
	"github.com/gitprep/gitprep/internal/gpg"
	"github.com/gitprep/gitprep/internal/ui"
	"github.com/gitprep/gitprep/internal/utils"
)

const (
	commandUseConstant              = "signing-setup"
	commandShortDescriptionConstant = "Provision a GPG key and enable signed commits"
	commandLongDescriptionConstant  = "signing-setup generates or selects a GPG key pair, registers the public key with your GitHub account, and enables commit signing in the global git configuration."
	nameFlagNameConstant            = "name"
	nameFlagDescriptionConstant     = "Real name embedded in the generated key"
	emailFlagNameConstant           = "email"
	emailFlagDescriptionConstant    = "Email embedded in the generated key and used to locate it"
	expirationFlagNameConstant      = "expiration"
	expirationFlagDescription       = "Key expiration (0 means never)"
	keyIDFlagNameConstant           = "key-id"
	keyIDFlagDescriptionConstant    = "Use an existing secret key instead of generating one"
	keyTitleFlagNameConstant        = "key-title"
	keyTitleFlagDescriptionConstant = "Title for the uploaded key"
	skipUploadFlagNameConstant      = "skip-upload"
	skipUploadFlagDescription       = "Do not upload the key to the hosting account"
	exportPathFlagNameConstant      = "export-path"
	exportPathFlagDescription       = "Write the armored public key to this file"
	assumeYesFlagNameConstant       = "yes"
	assumeYesFlagDescription        = "Skip the upload confirmation prompt"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the signing-setup command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	KeyManager                   KeyProvisioner
	Registrar                    KeyRegistrar
	GitConfig                    GitConfigurationWriter
	Prompter                     ConfirmationPrompter
	FileWriter                   FileWriter
}

// Build constructs the signing-setup command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(nameFlagNameConstant, "", nameFlagDescriptionConstant)
	command.Flags().String(emailFlagNameConstant, "", emailFlagDescriptionConstant)
	command.Flags().String(expirationFlagNameConstant, "", expirationFlagDescription)
	command.Flags().String(keyIDFlagNameConstant, "", keyIDFlagDescriptionConstant)
	command.Flags().String(keyTitleFlagNameConstant, "", keyTitleFlagDescriptionConstant)
	command.Flags().Bool(skipUploadFlagNameConstant, false, skipUploadFlagDescription)
	command.Flags().String(exportPathFlagNameConstant, "", exportPathFlagDescription)
	command.Flags().Bool(assumeYesFlagNameConstant, false, assumeYesFlagDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	options, optionsError := builder.resolveOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}

	dependencies, dependenciesError := builder.resolveDependencies(command, configuration)
	if dependenciesError != nil {
		return dependenciesError
	}

	service, serviceCreationError := NewService(dependencies)
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, provisioningError := service.Provision(command.Context(), options)
	return provisioningError
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command, configuration CommandConfiguration) (Options, error) {
	options := Options{
		RealName:   configuration.RealName,
		Email:      configuration.Email,
		Expiration: configuration.Expiration,
		Passphrase: configuration.Passphrase,
		KeyID:      configuration.KeyID,
		KeyTitle:   configuration.KeyTitle,
		SkipUpload: configuration.SkipUpload,
		ExportPath: configuration.ExportPath,
		AssumeYes:  configuration.AssumeYes,
	}

	stringOverrides := []struct {
		flagName string
		target   *string
	}{
		{flagName: nameFlagNameConstant, target: &options.RealName},
		{flagName: emailFlagNameConstant, target: &options.Email},
		{flagName: expirationFlagNameConstant, target: &options.Expiration},
		{flagName: keyIDFlagNameConstant, target: &options.KeyID},
		{flagName: keyTitleFlagNameConstant, target: &options.KeyTitle},
		{flagName: exportPathFlagNameConstant, target: &options.ExportPath},
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

	booleanOverrides := []struct {
		flagName string
		target   *bool
	}{
		{flagName: skipUploadFlagNameConstant, target: &options.SkipUpload},
		{flagName: assumeYesFlagNameConstant, target: &options.AssumeYes},
	}
	for _, override := range booleanOverrides {
		if !command.Flags().Changed(override.flagName) {
			continue
		}
		flagValue, flagError := command.Flags().GetBool(override.flagName)
		if flagError != nil {
			return Options{}, flagError
		}
		*override.target = flagValue
	}

	return options, nil
}

func (builder *CommandBuilder) resolveDependencies(command *cobra.Command, configuration CommandConfiguration) (Dependencies, error) {
	dependencies := Dependencies{
		KeyManager:   builder.KeyManager,
		Registrar:    builder.Registrar,
		GitConfig:    builder.GitConfig,
		Prompter:     builder.Prompter,
		FileWriter:   builder.FileWriter,
		OutputWriter: utils.NewFlushingWriter(command.OutOrStdout()),
	}

	needsExecutor := dependencies.KeyManager == nil || dependencies.Registrar == nil || dependencies.GitConfig == nil
	if needsExecutor {
		shellExecutor, executorError := builder.buildShellExecutor()
		if executorError != nil {
			return Dependencies{}, executorError
		}

		if dependencies.KeyManager == nil {
			keyManager, keyManagerError := gpg.NewKeyManager(shellExecutor, configuration.TerminalDevice)
			if keyManagerError != nil {
				return Dependencies{}, keyManagerError
			}
			dependencies.KeyManager = keyManager
		}

		if dependencies.Registrar == nil {
			githubClient, clientError := githubcli.NewClient(shellExecutor)
			if clientError != nil {
				return Dependencies{}, clientError
			}
			dependencies.Registrar = githubClient
		}

		if dependencies.GitConfig == nil {
			repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
			if managerError != nil {
				return Dependencies{}, managerError
			}
			dependencies.GitConfig = repositoryManager
		}
	}

	if dependencies.Prompter == nil {
		dependencies.Prompter = NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
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
