package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gitprep/gitprep/internal/gpg"
	pathutils "github.com/gitprep/gitprep/internal/utils/path"
)

const (
	keyManagerMissingMessageConstant           = "gpg key manager not configured"
	gitConfigWriterMissingMessageConstant      = "git configuration writer not configured"
	keyRegistrarMissingMessageConstant         = "github key registrar not configured"
	realNameRequiredMessageConstant            = "real name must be provided"
	emailRequiredMessageConstant               = "email must be provided"
	generatedKeyMissingMessageConstant         = "generated key did not appear in the secret keyring"
	uploadDeclinedMessageConstant              = "key upload declined"
	armorValidationFailureTemplateConstant     = "exported key failed validation: %w"
	exportWriteFailureTemplateConstant         = "failed to write armored key to %s: %w"
	uploadFailureTemplateConstant              = "key upload failed: %w"
	configurationVerificationTemplateConstant  = "git configuration %s reads back %q, expected %q"
	signingKeyConfigurationKeyConstant         = "user.signingkey"
	commitSigningConfigurationKeyConstant      = "commit.gpgsign"
	commitSigningEnabledValueConstant          = "true"
	uploadConfirmationPromptTemplateConstant   = "Upload GPG key %s to your GitHub account? [y/N]: "
	exportedKeyNoticeTemplateConstant          = "Armored public key written to %s\n"
	provisioningCompleteNoticeTemplateConstant = "Signing configured with key %s\n"
	exportFilePermissionsConstant              = os.FileMode(0o600)
)

// ErrKeyManagerNotConfigured indicates the gpg key manager dependency was missing.
var ErrKeyManagerNotConfigured = errors.New(keyManagerMissingMessageConstant)

// ErrGitConfigurationWriterNotConfigured indicates the git configuration dependency was missing.
var ErrGitConfigurationWriterNotConfigured = errors.New(gitConfigWriterMissingMessageConstant)

// ErrKeyRegistrarNotConfigured indicates the github key registrar dependency was missing.
var ErrKeyRegistrarNotConfigured = errors.New(keyRegistrarMissingMessageConstant)

// ErrRealNameRequired indicates key generation was requested without a real name.
var ErrRealNameRequired = errors.New(realNameRequiredMessageConstant)

// ErrEmailRequired indicates key generation was requested without an email.
var ErrEmailRequired = errors.New(emailRequiredMessageConstant)

// ErrGeneratedKeyNotFound indicates generation reported success but no new key was listed.
var ErrGeneratedKeyNotFound = errors.New(generatedKeyMissingMessageConstant)

// ErrUploadDeclined indicates the operator rejected the upload confirmation.
var ErrUploadDeclined = errors.New(uploadDeclinedMessageConstant)

// KeyProvisioner enumerates gpg operations required by the workflow.
type KeyProvisioner interface {
	EnsureAvailable(executionContext context.Context) error
	GenerateKeyPair(executionContext context.Context, request gpg.KeyGenerationRequest) error
	ListSecretKeys(executionContext context.Context) ([]gpg.KeyDetails, error)
	ResolveKeyByID(executionContext context.Context, keyIdentifier string) (gpg.KeyDetails, error)
	ResolveKeyByEmail(executionContext context.Context, email string) (gpg.KeyDetails, error)
	ExportArmoredPublicKey(executionContext context.Context, keyIdentifier string) (string, error)
}

// KeyRegistrar registers armored keys with the hosting account.
type KeyRegistrar interface {
	CheckAuthStatus(executionContext context.Context) error
	AddGPGKey(executionContext context.Context, armoredKey string, keyTitle string) error
}

// GitConfigurationWriter persists and reads back global git configuration values.
type GitConfigurationWriter interface {
	SetGlobalConfiguration(executionContext context.Context, configurationKey string, configurationValue string) error
	GetGlobalConfiguration(executionContext context.Context, configurationKey string) (string, error)
}

// ConfirmationPrompter asks the operator before outward-facing actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// FileWriter persists exported armor to disk.
type FileWriter interface {
	WriteFile(filePath string, contents []byte, permissions os.FileMode) error
}

// OSFileWriter writes files through the standard library.
type OSFileWriter struct{}

// WriteFile delegates to os.WriteFile.
func (OSFileWriter) WriteFile(filePath string, contents []byte, permissions os.FileMode) error {
	return os.WriteFile(filePath, contents, permissions)
}

// Dependencies enumerates external collaborators required for provisioning.
type Dependencies struct {
	KeyManager   KeyProvisioner
	Registrar    KeyRegistrar
	GitConfig    GitConfigurationWriter
	Prompter     ConfirmationPrompter
	FileWriter   FileWriter
	HomeExpander *pathutils.HomeExpander
	OutputWriter io.Writer
}

// Options configures a provisioning run.
type Options struct {
	RealName   string
	Email      string
	Expiration string
	Passphrase string
	KeyID      string
	KeyTitle   string
	SkipUpload bool
	ExportPath string
	AssumeYes  bool
}

// Result captures the observable outcomes of a provisioning run.
type Result struct {
	KeyID         string
	Fingerprint   string
	KeyGenerated  bool
	KeyUploaded   bool
	ExportPath    string
	GitConfigured bool
}

// Service coordinates the signing-setup workflow.
type Service struct {
	keyManager   KeyProvisioner
	registrar    KeyRegistrar
	gitConfig    GitConfigurationWriter
	prompter     ConfirmationPrompter
	fileWriter   FileWriter
	homeExpander *pathutils.HomeExpander
	outputWriter io.Writer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.KeyManager == nil {
		return nil, ErrKeyManagerNotConfigured
	}
	if dependencies.GitConfig == nil {
		return nil, ErrGitConfigurationWriterNotConfigured
	}

	fileWriter := dependencies.FileWriter
	if fileWriter == nil {
		fileWriter = OSFileWriter{}
	}
	homeExpander := dependencies.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	outputWriter := dependencies.OutputWriter
	if outputWriter == nil {
		outputWriter = io.Discard
	}

	return &Service{
		keyManager:   dependencies.KeyManager,
		registrar:    dependencies.Registrar,
		gitConfig:    dependencies.GitConfig,
		prompter:     dependencies.Prompter,
		fileWriter:   fileWriter,
		homeExpander: homeExpander,
		outputWriter: outputWriter,
	}, nil
}

// Provision executes the ordered key provisioning steps.
func (service *Service) Provision(executionContext context.Context, options Options) (Result, error) {
	if availabilityError := service.keyManager.EnsureAvailable(executionContext); availabilityError != nil {
		return Result{}, availabilityError
	}

	keyDetails, keyGenerated, resolutionError := service.resolveKey(executionContext, options)
	if resolutionError != nil {
		return Result{}, resolutionError
	}

	armoredKey, exportError := service.keyManager.ExportArmoredPublicKey(executionContext, keyDetails.KeyID)
	if exportError != nil {
		return Result{}, exportError
	}

	if validationError := gpg.ValidateArmoredPublicKey(armoredKey, keyDetails.KeyID); validationError != nil {
		return Result{}, fmt.Errorf(armorValidationFailureTemplateConstant, validationError)
	}

	result := Result{KeyID: keyDetails.KeyID, Fingerprint: keyDetails.Fingerprint, KeyGenerated: keyGenerated}

	if len(options.ExportPath) > 0 {
		expandedExportPath := service.homeExpander.Expand(options.ExportPath)
		if writeError := service.fileWriter.WriteFile(expandedExportPath, []byte(armoredKey), exportFilePermissionsConstant); writeError != nil {
			return result, fmt.Errorf(exportWriteFailureTemplateConstant, expandedExportPath, writeError)
		}
		result.ExportPath = expandedExportPath
		fmt.Fprintf(service.outputWriter, exportedKeyNoticeTemplateConstant, expandedExportPath)
	}

	if !options.SkipUpload {
		if uploadError := service.uploadKey(executionContext, armoredKey, keyDetails.KeyID, options); uploadError != nil {
			return result, uploadError
		}
		result.KeyUploaded = true
	}

	if configurationError := service.enableCommitSigning(executionContext, keyDetails.KeyID); configurationError != nil {
		return result, configurationError
	}
	result.GitConfigured = true

	fmt.Fprintf(service.outputWriter, provisioningCompleteNoticeTemplateConstant, keyDetails.KeyID)
	return result, nil
}

func (service *Service) resolveKey(executionContext context.Context, options Options) (gpg.KeyDetails, bool, error) {
	if len(options.KeyID) > 0 {
		keyDetails, resolutionError := service.keyManager.ResolveKeyByID(executionContext, options.KeyID)
		if resolutionError != nil {
			return gpg.KeyDetails{}, false, resolutionError
		}
		return keyDetails, false, nil
	}

	if len(strings.TrimSpace(options.RealName)) == 0 {
		return gpg.KeyDetails{}, false, ErrRealNameRequired
	}
	if len(strings.TrimSpace(options.Email)) == 0 {
		return gpg.KeyDetails{}, false, ErrEmailRequired
	}

	existingKeys, listingError := service.keyManager.ListSecretKeys(executionContext)
	if listingError != nil {
		return gpg.KeyDetails{}, false, listingError
	}
	existingKeyIdentifiers := make(map[string]struct{}, len(existingKeys))
	for _, existingKey := range existingKeys {
		existingKeyIdentifiers[existingKey.KeyID] = struct{}{}
	}

	generationRequest := gpg.KeyGenerationRequest{
		RealName:   options.RealName,
		Email:      options.Email,
		Expiration: options.Expiration,
		Passphrase: options.Passphrase,
	}
	if generationError := service.keyManager.GenerateKeyPair(executionContext, generationRequest); generationError != nil {
		return gpg.KeyDetails{}, false, generationError
	}

	keyDetails, resolutionError := service.keyManager.ResolveKeyByEmail(executionContext, options.Email)
	if resolutionError != nil {
		return gpg.KeyDetails{}, false, resolutionError
	}
	if _, alreadyExisted := existingKeyIdentifiers[keyDetails.KeyID]; alreadyExisted {
		return gpg.KeyDetails{}, false, ErrGeneratedKeyNotFound
	}

	return keyDetails, true, nil
}

func (service *Service) uploadKey(executionContext context.Context, armoredKey string, keyIdentifier string, options Options) error {
	if service.registrar == nil {
		return ErrKeyRegistrarNotConfigured
	}

	if !options.AssumeYes && service.prompter != nil {
		confirmed, promptError := service.prompter.Confirm(fmt.Sprintf(uploadConfirmationPromptTemplateConstant, keyIdentifier))
		if promptError != nil {
			return promptError
		}
		if !confirmed {
			return ErrUploadDeclined
		}
	}

	if authenticationError := service.registrar.CheckAuthStatus(executionContext); authenticationError != nil {
		return authenticationError
	}

	keyTitle := options.KeyTitle
	if len(strings.TrimSpace(keyTitle)) == 0 {
		keyTitle = defaultKeyTitleConstant
	}

	if uploadError := service.registrar.AddGPGKey(executionContext, armoredKey, keyTitle); uploadError != nil {
		return fmt.Errorf(uploadFailureTemplateConstant, uploadError)
	}
	return nil
}

func (service *Service) enableCommitSigning(executionContext context.Context, keyIdentifier string) error {
	expectedConfiguration := []struct {
		configurationKey   string
		configurationValue string
	}{
		{configurationKey: signingKeyConfigurationKeyConstant, configurationValue: keyIdentifier},
		{configurationKey: commitSigningConfigurationKeyConstant, configurationValue: commitSigningEnabledValueConstant},
	}

	for _, configurationEntry := range expectedConfiguration {
		if writeError := service.gitConfig.SetGlobalConfiguration(executionContext, configurationEntry.configurationKey, configurationEntry.configurationValue); writeError != nil {
			return writeError
		}
	}

	for _, configurationEntry := range expectedConfiguration {
		storedValue, readError := service.gitConfig.GetGlobalConfiguration(executionContext, configurationEntry.configurationKey)
		if readError != nil {
			return readError
		}
		if storedValue != configurationEntry.configurationValue {
			return fmt.Errorf(configurationVerificationTemplateConstant, configurationEntry.configurationKey, storedValue, configurationEntry.configurationValue)
		}
	}

	return nil
}
