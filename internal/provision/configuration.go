package provision

import "strings"

const (
	defaultKeyTitleConstant   = "gitprep signing key"
	defaultExpirationConstant = "0"
)

// CommandConfiguration captures configuration values for the signing-setup command.
type CommandConfiguration struct {
	RealName       string `mapstructure:"name"`
	Email          string `mapstructure:"email"`
	Expiration     string `mapstructure:"expiration"`
	Passphrase     string `mapstructure:"passphrase"`
	KeyID          string `mapstructure:"key_id"`
	KeyTitle       string `mapstructure:"key_title"`
	SkipUpload     bool   `mapstructure:"skip_upload"`
	ExportPath     string `mapstructure:"export_path"`
	TerminalDevice string `mapstructure:"terminal_device"`
	AssumeYes      bool   `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration provides baseline configuration values for signing setup.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Expiration: defaultExpirationConstant,
		KeyTitle:   defaultKeyTitleConstant,
	}
}

// DefaultConfigurationValues exposes defaults keyed beneath the provided configuration prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + ".expiration": defaults.Expiration,
		configurationKeyPrefix + ".key_title":  defaults.KeyTitle,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.RealName = strings.TrimSpace(configuration.RealName)
	sanitized.Email = strings.TrimSpace(configuration.Email)
	sanitized.Expiration = strings.TrimSpace(configuration.Expiration)
	sanitized.KeyID = strings.TrimSpace(configuration.KeyID)
	sanitized.KeyTitle = strings.TrimSpace(configuration.KeyTitle)
	sanitized.ExportPath = strings.TrimSpace(configuration.ExportPath)
	sanitized.TerminalDevice = strings.TrimSpace(configuration.TerminalDevice)

	return sanitized
}
