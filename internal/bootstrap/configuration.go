package bootstrap

import "strings"

const (
	defaultRepositoryPathConstant = "."
	defaultVisibilityConstant     = "private"
	defaultCommitMessageConstant  = "initial commit"
	defaultBranchNameConstant     = "main"
	defaultRemoteNameConstant     = "origin"
	defaultRemoteProtocolConstant = "ssh"
	defaultRemoteHostConstant     = "github.com"
	defaultIdentityFileConstant   = "~/.ssh/id_ed25519"
)

// CommandConfiguration captures configuration values for the bootstrap command.
type CommandConfiguration struct {
	RepositoryPath string `mapstructure:"path"`
	Owner          string `mapstructure:"owner"`
	RepositoryName string `mapstructure:"repository"`
	Visibility     string `mapstructure:"visibility"`
	CommitMessage  string `mapstructure:"commit_message"`
	BranchName     string `mapstructure:"branch"`
	RemoteName     string `mapstructure:"remote"`
	RemoteProtocol string `mapstructure:"remote_protocol"`
	RemoteHost     string `mapstructure:"remote_host"`
	IdentityFile   string `mapstructure:"identity_file"`
}

// DefaultCommandConfiguration provides baseline configuration values for bootstrap.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RepositoryPath: defaultRepositoryPathConstant,
		Visibility:     defaultVisibilityConstant,
		CommitMessage:  defaultCommitMessageConstant,
		BranchName:     defaultBranchNameConstant,
		RemoteName:     defaultRemoteNameConstant,
		RemoteProtocol: defaultRemoteProtocolConstant,
		RemoteHost:     defaultRemoteHostConstant,
		IdentityFile:   defaultIdentityFileConstant,
	}
}

// DefaultConfigurationValues exposes defaults keyed beneath the provided configuration prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + ".path":            defaults.RepositoryPath,
		configurationKeyPrefix + ".visibility":      defaults.Visibility,
		configurationKeyPrefix + ".commit_message":  defaults.CommitMessage,
		configurationKeyPrefix + ".branch":          defaults.BranchName,
		configurationKeyPrefix + ".remote":          defaults.RemoteName,
		configurationKeyPrefix + ".remote_protocol": defaults.RemoteProtocol,
		configurationKeyPrefix + ".remote_host":     defaults.RemoteHost,
		configurationKeyPrefix + ".identity_file":   defaults.IdentityFile,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.RepositoryPath = strings.TrimSpace(configuration.RepositoryPath)
	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.RepositoryName = strings.TrimSpace(configuration.RepositoryName)
	sanitized.Visibility = strings.TrimSpace(strings.ToLower(configuration.Visibility))
	sanitized.BranchName = strings.TrimSpace(configuration.BranchName)
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	sanitized.RemoteProtocol = strings.TrimSpace(strings.ToLower(configuration.RemoteProtocol))
	sanitized.RemoteHost = strings.TrimSpace(configuration.RemoteHost)
	sanitized.IdentityFile = strings.TrimSpace(configuration.IdentityFile)

	return sanitized
}
