package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitInitSubcommandNameConstant      = "init"
	gitAddSubcommandNameConstant       = "add"
	gitCommitSubcommandNameConstant    = "commit"
	gitBranchSubcommandNameConstant    = "branch"
	gitRemoteSubcommandNameConstant    = "remote"
	gitPushSubcommandNameConstant      = "push"
	gitPullSubcommandNameConstant      = "pull"
	gitConfigSubcommandNameConstant    = "config"
	gitRevParseSubcommandNameConstant  = "rev-parse"
	gitStatusSubcommandNameConstant    = "status"
	gitRemoteAddSubcommandNameConstant = "add"
	gitRemoteGetURLSubcommandConstant  = "get-url"
	gitBranchMoveFlagConstant          = "-M"
	gitMessageFlagConstant             = "-m"
	gitWorkTreeFlagConstant            = "--is-inside-work-tree"
)

const (
	gitInitStartTemplateConstant            = "Initializing repository in %s"
	gitInitSuccessTemplateConstant          = "Initialized repository in %s"
	gitInitFailureTemplateConstant          = "Failed to initialize repository in %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant = "Unable to initialize repository in %s: %s"
	gitAddStartTemplateConstant             = "Staging %s in %s"
	gitAddSuccessTemplateConstant           = "Staged %s in %s"
	gitAddFailureTemplateConstant           = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant  = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant          = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant        = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant        = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplate       = "Unable to create commit in %s with message %q: %s"
	gitBranchRenameStartTemplateConstant    = "Renaming current branch to %s in %s"
	gitBranchRenameSuccessTemplateConstant  = "Current branch in %s is now %s"
	gitBranchRenameFailureTemplateConstant  = "Failed to rename current branch to %s in %s (exit code %d%s)"
	gitBranchRenameExecutionFailureTemplate = "Unable to rename current branch to %s in %s: %s"
	gitRemoteAddStartTemplateConstant       = "Registering %s remote for %s as %s"
	gitRemoteAddSuccessTemplateConstant     = "%s remote for %s now points to %s"
	gitRemoteAddFailureTemplateConstant     = "Failed to register %s remote for %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplate    = "Unable to register %s remote for %s: %s"
	gitRemoteLookupStartTemplateConstant    = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant  = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant  = "Failed to read %s remote for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplate = "Unable to read %s remote for %s: %s"
	gitPushStartTemplateConstant            = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant          = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant          = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant = "Unable to push %s to %s from %s: %s"
	gitPullStartTemplateConstant            = "Pulling %s from %s into %s"
	gitPullSuccessTemplateConstant          = "Pulled %s from %s into %s"
	gitPullFailureTemplateConstant          = "Failed to pull %s from %s into %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant = "Unable to pull %s from %s into %s: %s"
	gitConfigStartTemplateConstant          = "Updating git configuration %s"
	gitConfigSuccessTemplateConstant        = "Updated git configuration %s"
	gitConfigFailureTemplateConstant        = "Failed to update git configuration %s (exit code %d%s)"
	gitConfigExecutionFailureTemplate       = "Unable to update git configuration %s: %s"
	gitWorkTreeStartTemplateConstant        = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant      = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant      = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplate     = "Could not analyze %s: %s"
	gitStatusStartTemplateConstant          = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant        = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant        = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConst  = "Unable to review working tree status in %s: %s"
	gitStageAllPathLabelConstant            = "all files"
	gitCommitMessageFallbackLabelConstant   = "(no message)"
	gitConfigScopeGlobalFlagConstant        = "--global"
	gitConfigGlobalScopeLabelTemplateConst  = "%s (global)"
	gitPushUpstreamTrackingSuffixConstant   = " with upstream tracking"
	gitPushSetUpstreamFlagConstant          = "-u"
	gitPushStartTrackingTemplateConstant    = "Pushing %s to %s from %s%s"
	gitPushSuccessTrackingTemplateConstant  = "Pushed %s to %s from %s%s"
	gitPullAllowUnrelatedHistoriesFlagConst = "--allow-unrelated-histories"
	gitPullUnrelatedHistoriesSuffixConstant = " allowing unrelated histories"
	gitPullStartUnrelatedTemplateConstant   = "Pulling %s from %s into %s%s"
	gitPullSuccessUnrelatedTemplateConstant = "Pulled %s from %s into %s%s"
)

const (
	gpgVersionFlagConstant         = "--version"
	gpgGenerateKeyFlagConstant     = "--full-generate-key"
	gpgListSecretKeysFlagConstant  = "--list-secret-keys"
	gpgExportFlagConstant          = "--export"
	gpgArmorFlagConstant           = "--armor"
	gpgBatchFlagConstant           = "--batch"
	gpgVersionStartMessageConstant = "Checking GPG installation"
	gpgVersionSuccessMessage       = "GPG tooling is available"
	gpgVersionFailureTemplate      = "GPG tooling unavailable (exit code %d%s)"
	gpgVersionExecutionFailure     = "Unable to check GPG installation: %s"
	gpgGenerateStartMessage        = "Generating GPG key pair"
	gpgGenerateSuccessMessage      = "Generated GPG key pair"
	gpgGenerateFailureTemplate     = "Failed to generate GPG key pair (exit code %d%s)"
	gpgGenerateExecutionFailure    = "Unable to generate GPG key pair: %s"
	gpgListStartMessageConstant    = "Listing secret GPG keys"
	gpgListSuccessMessageConstant  = "Listed secret GPG keys"
	gpgListFailureTemplate         = "Failed to list secret GPG keys (exit code %d%s)"
	gpgListExecutionFailure        = "Unable to list secret GPG keys: %s"
	gpgExportStartTemplate         = "Exporting armored public key %s"
	gpgExportSuccessTemplate       = "Exported armored public key %s"
	gpgExportFailureTemplate       = "Failed to export armored public key %s (exit code %d%s)"
	gpgExportExecutionFailure      = "Unable to export armored public key %s: %s"
)

const (
	githubGPGKeySubcommandConstant      = "gpg-key"
	githubRepoSubcommandConstant        = "repo"
	githubAuthSubcommandConstant        = "auth"
	githubAddSubcommandConstant         = "add"
	githubCreateSubcommandConstant      = "create"
	githubViewSubcommandConstant        = "view"
	githubStatusSubcommandConstant      = "status"
	githubKeyUploadStartMessage         = "Uploading GPG public key to GitHub"
	githubKeyUploadSuccessMessage       = "Uploaded GPG public key to GitHub"
	githubKeyUploadFailureTemplate      = "Failed to upload GPG public key to GitHub (exit code %d%s)"
	githubKeyUploadExecutionFailure     = "Unable to upload GPG public key to GitHub: %s"
	githubRepoCreateStartTemplate       = "Creating GitHub repository %s"
	githubRepoCreateSuccessTemplate     = "Created GitHub repository %s"
	githubRepoCreateFailureTemplate     = "Failed to create GitHub repository %s (exit code %d%s)"
	githubRepoCreateExecutionFailure    = "Unable to create GitHub repository %s: %s"
	githubRepoViewStartTemplate         = "Retrieving repository details for %s"
	githubRepoViewSuccessTemplate       = "Retrieved repository details for %s"
	githubRepoViewFailureTemplate       = "Failed to retrieve repository details for %s (exit code %d%s)"
	githubRepoViewExecutionFailure      = "Unable to retrieve repository details for %s: %s"
	githubAuthStatusStartMessage        = "Checking GitHub CLI authentication"
	githubAuthStatusSuccessMessage      = "GitHub CLI authentication confirmed"
	githubAuthStatusFailureTemplate     = "GitHub CLI authentication unavailable (exit code %d%s)"
	githubAuthStatusExecutionFailure    = "Unable to check GitHub CLI authentication: %s"
	githubCurrentRepositoryLabel        = "current repository"
	githubRepositoryArgumentIndexNumber = 2
)

const (
	sshAddListFlagConstant         = "-l"
	sshAddListStartMessage         = "Listing SSH agent identities"
	sshAddListSuccessMessage       = "Listed SSH agent identities"
	sshAddListFailureTemplate      = "Failed to list SSH agent identities (exit code %d%s)"
	sshAddListExecutionFailure     = "Unable to list SSH agent identities: %s"
	sshAddIdentityStartTemplate    = "Adding SSH identity %s to the agent"
	sshAddIdentitySuccessTemplate  = "Added SSH identity %s to the agent"
	sshAddIdentityFailureTemplate  = "Failed to add SSH identity %s to the agent (exit code %d%s)"
	sshAddIdentityExecutionFailure = "Unable to add SSH identity %s to the agent: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGPG:
		return formatter.describeGPGMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	case CommandSSHAdd:
		return formatter.describeSSHAddMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments

	switch strings.TrimSpace(arguments[0]) {
	case gitInitSubcommandNameConstant:
		return formatter.formatStaged(stage,
			fmt.Sprintf(gitInitStartTemplateConstant, workingDirectory),
			fmt.Sprintf(gitInitSuccessTemplateConstant, workingDirectory),
			fmt.Sprintf(gitInitFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gitInitExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
	case gitAddSubcommandNameConstant:
		stagedPath := formatter.describeStagedPath(arguments)
		return formatter.formatStaged(stage,
			fmt.Sprintf(gitAddStartTemplateConstant, stagedPath, workingDirectory),
			fmt.Sprintf(gitAddSuccessTemplateConstant, stagedPath, workingDirectory),
			fmt.Sprintf(gitAddFailureTemplateConstant, stagedPath, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gitAddExecutionFailureTemplateConstant, stagedPath, workingDirectory, formatter.describeFailure(failure)))
	case gitCommitSubcommandNameConstant:
		commitMessage := formatter.describeCommitMessage(arguments)
		return formatter.formatStaged(stage,
			fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage),
			fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage),
			fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gitCommitExecutionFailureTemplate, workingDirectory, commitMessage, formatter.describeFailure(failure)))
	case gitBranchSubcommandNameConstant:
		if containsArgument(arguments, gitBranchMoveFlagConstant) {
			branchName := formatter.ensureValue(formatter.lastArgument(arguments))
			return formatter.formatStaged(stage,
				fmt.Sprintf(gitBranchRenameStartTemplateConstant, branchName, workingDirectory),
				fmt.Sprintf(gitBranchRenameSuccessTemplateConstant, workingDirectory, branchName),
				fmt.Sprintf(gitBranchRenameFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
				fmt.Sprintf(gitBranchRenameExecutionFailureTemplate, branchName, workingDirectory, formatter.describeFailure(failure)))
		}
		return formatter.buildGenericMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		remoteName := formatter.ensureValue(formatter.argumentAfterFlags(arguments, 1))
		branchName := formatter.ensureValue(formatter.argumentAfterFlags(arguments, 2))
		trackingSuffix := emptyStringConstant
		if containsArgument(arguments, gitPushSetUpstreamFlagConstant) {
			trackingSuffix = gitPushUpstreamTrackingSuffixConstant
		}
		return formatter.formatStaged(stage,
			fmt.Sprintf(gitPushStartTrackingTemplateConstant, branchName, remoteName, workingDirectory, trackingSuffix),
			fmt.Sprintf(gitPushSuccessTrackingTemplateConstant, branchName, remoteName, workingDirectory, trackingSuffix),
			fmt.Sprintf(gitPushFailureTemplateConstant, branchName, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gitPushExecutionFailureTemplateConstant, branchName, remoteName, workingDirectory, formatter.describeFailure(failure)))
	case gitPullSubcommandNameConstant:
		remoteName := formatter.ensureValue(formatter.argumentAfterFlags(arguments, 1))
		branchName := formatter.ensureValue(formatter.argumentAfterFlags(arguments, 2))
		unrelatedSuffix := emptyStringConstant
		if containsArgument(arguments, gitPullAllowUnrelatedHistoriesFlagConst) {
			unrelatedSuffix = gitPullUnrelatedHistoriesSuffixConstant
		}
		return formatter.formatStaged(stage,
			fmt.Sprintf(gitPullStartUnrelatedTemplateConstant, branchName, remoteName, workingDirectory, unrelatedSuffix),
			fmt.Sprintf(gitPullSuccessUnrelatedTemplateConstant, branchName, remoteName, workingDirectory, unrelatedSuffix),
			fmt.Sprintf(gitPullFailureTemplateConstant, branchName, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gitPullExecutionFailureTemplateConstant, branchName, remoteName, workingDirectory, formatter.describeFailure(failure)))
	case gitConfigSubcommandNameConstant:
		configurationKey := formatter.describeConfigurationKey(arguments)
		return formatter.formatStaged(stage,
			fmt.Sprintf(gitConfigStartTemplateConstant, configurationKey),
			fmt.Sprintf(gitConfigSuccessTemplateConstant, configurationKey),
			fmt.Sprintf(gitConfigFailureTemplateConstant, configurationKey, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gitConfigExecutionFailureTemplate, configurationKey, formatter.describeFailure(failure)))
	case gitRevParseSubcommandNameConstant:
		if containsArgument(arguments, gitWorkTreeFlagConstant) {
			return formatter.formatStaged(stage,
				fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory),
				fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory),
				fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
				fmt.Sprintf(gitWorkTreeExecutionFailureTemplate, workingDirectory, formatter.describeFailure(failure)))
		}
		return formatter.buildGenericMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.formatStaged(stage,
			fmt.Sprintf(gitStatusStartTemplateConstant, workingDirectory),
			fmt.Sprintf(gitStatusSuccessTemplateConstant, workingDirectory),
			fmt.Sprintf(gitStatusFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gitStatusExecutionFailureTemplateConst, workingDirectory, formatter.describeFailure(failure)))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	switch strings.TrimSpace(arguments[1]) {
	case gitRemoteAddSubcommandNameConstant:
		remoteURL := formatter.ensureValue(formatter.argumentAtIndex(arguments, 3))
		return formatter.formatStaged(stage,
			fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, workingDirectory, remoteURL),
			fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, workingDirectory, remoteURL),
			fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gitRemoteAddExecutionFailureTemplate, remoteName, workingDirectory, formatter.describeFailure(failure)))
	case gitRemoteGetURLSubcommandConstant:
		remoteURL := strings.TrimSpace(result.StandardOutput)
		return formatter.formatStaged(stage,
			fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory),
			fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, formatter.ensureValue(remoteURL)),
			fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gitRemoteLookupExecutionFailureTemplate, remoteName, workingDirectory, formatter.describeFailure(failure)))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGPGMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments

	switch {
	case containsArgument(arguments, gpgVersionFlagConstant):
		return formatter.formatStaged(stage,
			gpgVersionStartMessageConstant,
			gpgVersionSuccessMessage,
			fmt.Sprintf(gpgVersionFailureTemplate, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gpgVersionExecutionFailure, formatter.describeFailure(failure)))
	case containsArgument(arguments, gpgGenerateKeyFlagConstant):
		return formatter.formatStaged(stage,
			gpgGenerateStartMessage,
			gpgGenerateSuccessMessage,
			fmt.Sprintf(gpgGenerateFailureTemplate, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gpgGenerateExecutionFailure, formatter.describeFailure(failure)))
	case containsArgument(arguments, gpgListSecretKeysFlagConstant):
		return formatter.formatStaged(stage,
			gpgListStartMessageConstant,
			gpgListSuccessMessageConstant,
			fmt.Sprintf(gpgListFailureTemplate, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gpgListExecutionFailure, formatter.describeFailure(failure)))
	case containsArgument(arguments, gpgExportFlagConstant):
		keyIdentifier := formatter.ensureValue(formatter.lastArgument(arguments))
		return formatter.formatStaged(stage,
			fmt.Sprintf(gpgExportStartTemplate, keyIdentifier),
			fmt.Sprintf(gpgExportSuccessTemplate, keyIdentifier),
			fmt.Sprintf(gpgExportFailureTemplate, keyIdentifier, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(gpgExportExecutionFailure, keyIdentifier, formatter.describeFailure(failure)))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	primaryArgument := strings.TrimSpace(arguments[0])
	secondaryArgument := strings.TrimSpace(arguments[1])

	switch {
	case primaryArgument == githubGPGKeySubcommandConstant && secondaryArgument == githubAddSubcommandConstant:
		return formatter.formatStaged(stage,
			githubKeyUploadStartMessage,
			githubKeyUploadSuccessMessage,
			fmt.Sprintf(githubKeyUploadFailureTemplate, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(githubKeyUploadExecutionFailure, formatter.describeFailure(failure)))
	case primaryArgument == githubRepoSubcommandConstant && secondaryArgument == githubCreateSubcommandConstant:
		repositoryIdentifier := formatter.describeRepositoryIdentifier(arguments)
		return formatter.formatStaged(stage,
			fmt.Sprintf(githubRepoCreateStartTemplate, repositoryIdentifier),
			fmt.Sprintf(githubRepoCreateSuccessTemplate, repositoryIdentifier),
			fmt.Sprintf(githubRepoCreateFailureTemplate, repositoryIdentifier, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(githubRepoCreateExecutionFailure, repositoryIdentifier, formatter.describeFailure(failure)))
	case primaryArgument == githubRepoSubcommandConstant && secondaryArgument == githubViewSubcommandConstant:
		repositoryIdentifier := formatter.describeRepositoryIdentifier(arguments)
		return formatter.formatStaged(stage,
			fmt.Sprintf(githubRepoViewStartTemplate, repositoryIdentifier),
			fmt.Sprintf(githubRepoViewSuccessTemplate, repositoryIdentifier),
			fmt.Sprintf(githubRepoViewFailureTemplate, repositoryIdentifier, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(githubRepoViewExecutionFailure, repositoryIdentifier, formatter.describeFailure(failure)))
	case primaryArgument == githubAuthSubcommandConstant && secondaryArgument == githubStatusSubcommandConstant:
		return formatter.formatStaged(stage,
			githubAuthStatusStartMessage,
			githubAuthStatusSuccessMessage,
			fmt.Sprintf(githubAuthStatusFailureTemplate, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(githubAuthStatusExecutionFailure, formatter.describeFailure(failure)))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeSSHAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments

	if containsArgument(arguments, sshAddListFlagConstant) {
		return formatter.formatStaged(stage,
			sshAddListStartMessage,
			sshAddListSuccessMessage,
			fmt.Sprintf(sshAddListFailureTemplate, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
			fmt.Sprintf(sshAddListExecutionFailure, formatter.describeFailure(failure)))
	}

	identityPath := formatter.ensureValue(formatter.lastArgument(arguments))
	return formatter.formatStaged(stage,
		fmt.Sprintf(sshAddIdentityStartTemplate, identityPath),
		fmt.Sprintf(sshAddIdentitySuccessTemplate, identityPath),
		fmt.Sprintf(sshAddIdentityFailureTemplate, identityPath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
		fmt.Sprintf(sshAddIdentityExecutionFailure, identityPath, formatter.describeFailure(failure)))
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	return formatter.formatStaged(stage,
		fmt.Sprintf(genericStartTemplateConstant, commandLabel),
		fmt.Sprintf(genericSuccessTemplateConstant, commandLabel),
		fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
		fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure)))
}

func (formatter CommandMessageFormatter) formatStaged(stage messageStage, startMessage string, successMessage string, failureMessage string, executionFailureMessage string) string {
	switch stage {
	case messageStageStart:
		return startMessage
	case messageStageSuccess:
		return successMessage
	case messageStageFailure:
		return failureMessage
	default:
		return executionFailureMessage
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, " "))
	}
	commandLabel := strings.Join(commandParts, " ")
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeStagedPath(arguments []string) string {
	stagedPath := formatter.lastArgument(arguments)
	if stagedPath == gitAddSubcommandNameConstant || stagedPath == "." || len(stagedPath) == 0 {
		return gitStageAllPathLabelConstant
	}
	return stagedPath
}

func (formatter CommandMessageFormatter) describeCommitMessage(arguments []string) string {
	for argumentIndex, argumentValue := range arguments {
		if argumentValue == gitMessageFlagConstant && argumentIndex+1 < len(arguments) {
			return arguments[argumentIndex+1]
		}
	}
	return gitCommitMessageFallbackLabelConstant
}

func (formatter CommandMessageFormatter) describeConfigurationKey(arguments []string) string {
	for _, argumentValue := range arguments[1:] {
		trimmedArgument := strings.TrimSpace(argumentValue)
		if len(trimmedArgument) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		if containsArgument(arguments, gitConfigScopeGlobalFlagConstant) {
			return fmt.Sprintf(gitConfigGlobalScopeLabelTemplateConst, trimmedArgument)
		}
		return trimmedArgument
	}
	return fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) describeRepositoryIdentifier(arguments []string) string {
	identifier := formatter.argumentAtIndex(arguments, githubRepositoryArgumentIndexNumber)
	trimmedIdentifier := strings.TrimSpace(identifier)
	if len(trimmedIdentifier) == 0 || strings.HasPrefix(trimmedIdentifier, "-") {
		return githubCurrentRepositoryLabel
	}
	return trimmedIdentifier
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return arguments[index]
}

func (formatter CommandMessageFormatter) argumentAfterFlags(arguments []string, position int) string {
	positionalIndex := 0
	for _, argumentValue := range arguments {
		if strings.HasPrefix(argumentValue, "-") {
			continue
		}
		if positionalIndex == position {
			return argumentValue
		}
		positionalIndex++
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) lastArgument(arguments []string) string {
	for argumentIndex := len(arguments) - 1; argumentIndex >= 0; argumentIndex-- {
		trimmedArgument := strings.TrimSpace(arguments[argumentIndex])
		if len(trimmedArgument) > 0 && !strings.HasPrefix(trimmedArgument, "-") {
			return trimmedArgument
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, expectedArgument string) bool {
	for _, argumentValue := range arguments {
		if strings.TrimSpace(argumentValue) == expectedArgument {
			return true
		}
	}
	return false
}
