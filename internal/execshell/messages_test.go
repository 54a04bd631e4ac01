package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	messagesTestInitCaseNameConstant       = "git_init"
	messagesTestPushCaseNameConstant       = "git_push_with_tracking"
	messagesTestPullCaseNameConstant       = "git_pull_unrelated"
	messagesTestConfigCaseNameConstant     = "git_config_global"
	messagesTestGPGExportCaseNameConstant  = "gpg_export"
	messagesTestKeyUploadCaseNameConstant  = "github_key_upload"
	messagesTestRepoCreateCaseNameConstant = "github_repo_create"
	messagesTestSSHIdentityCaseName        = "ssh_add_identity"
	messagesTestWorkingDirectoryConstant   = "/workspace/project"
)

func TestCommandMessageFormatterStartedMessages(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         ShellCommand
		expectedMessage string
	}{
		{
			name: messagesTestInitCaseNameConstant,
			command: ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: []string{"init"}, WorkingDirectory: messagesTestWorkingDirectoryConstant},
			},
			expectedMessage: "Initializing repository in /workspace/project",
		},
		{
			name: messagesTestPushCaseNameConstant,
			command: ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: []string{"push", "-u", "origin", "main"}, WorkingDirectory: messagesTestWorkingDirectoryConstant},
			},
			expectedMessage: "Pushing main to origin from /workspace/project with upstream tracking",
		},
		{
			name: messagesTestPullCaseNameConstant,
			command: ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: []string{"pull", "origin", "main", "--allow-unrelated-histories", "--no-rebase"}, WorkingDirectory: messagesTestWorkingDirectoryConstant},
			},
			expectedMessage: "Pulling main from origin into /workspace/project allowing unrelated histories",
		},
		{
			name: messagesTestConfigCaseNameConstant,
			command: ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: []string{"config", "--global", "user.signingkey", "3AA5C34371567BD2"}},
			},
			expectedMessage: "Updating git configuration user.signingkey (global)",
		},
		{
			name: messagesTestGPGExportCaseNameConstant,
			command: ShellCommand{
				Name:    CommandGPG,
				Details: CommandDetails{Arguments: []string{"--armor", "--export", "3AA5C34371567BD2"}},
			},
			expectedMessage: "Exporting armored public key 3AA5C34371567BD2",
		},
		{
			name: messagesTestKeyUploadCaseNameConstant,
			command: ShellCommand{
				Name:    CommandGitHub,
				Details: CommandDetails{Arguments: []string{"gpg-key", "add", "-", "--title", "workstation"}},
			},
			expectedMessage: "Uploading GPG public key to GitHub",
		},
		{
			name: messagesTestRepoCreateCaseNameConstant,
			command: ShellCommand{
				Name:    CommandGitHub,
				Details: CommandDetails{Arguments: []string{"repo", "create", "octocat/example", "--private"}},
			},
			expectedMessage: "Creating GitHub repository octocat/example",
		},
		{
			name: messagesTestSSHIdentityCaseName,
			command: ShellCommand{
				Name:    CommandSSHAdd,
				Details: CommandDetails{Arguments: []string{"/home/operator/.ssh/id_ed25519"}},
			},
			expectedMessage: "Adding SSH identity /home/operator/.ssh/id_ed25519 to the agent",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildStartedMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterFailureIncludesStandardError(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}

	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"push", "-u", "origin", "main"}, WorkingDirectory: messagesTestWorkingDirectoryConstant},
	}
	result := ExecutionResult{ExitCode: 128, StandardError: "Permission denied (publickey)"}

	failureMessage := formatter.BuildFailureMessage(command, result)
	require.Contains(testInstance, failureMessage, "exit code 128")
	require.Contains(testInstance, failureMessage, "Permission denied (publickey)")
}

func TestCommandMessageFormatterFailureOmitsEmptyStandardError(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}

	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"init"}, WorkingDirectory: messagesTestWorkingDirectoryConstant},
	}
	result := ExecutionResult{ExitCode: 1, StandardError: "   "}

	failureMessage := formatter.BuildFailureMessage(command, result)
	require.Equal(testInstance, "Failed to initialize repository in /workspace/project (exit code 1)", failureMessage)
}
