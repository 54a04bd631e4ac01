package gpg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gitprep/gitprep/internal/execshell"
)

const (
	gpgVersionFlagConstant             = "--version"
	gpgBatchFlagConstant               = "--batch"
	gpgFullGenerateKeyFlagConstant     = "--full-generate-key"
	gpgListSecretKeysFlagConstant      = "--list-secret-keys"
	gpgWithColonsFlagConstant          = "--with-colons"
	gpgKeyIDFormatLongFlagConstant     = "--keyid-format=long"
	gpgArmorFlagConstant               = "--armor"
	gpgExportFlagConstant              = "--export"
	gpgPinentryLoopbackFlagConstant    = "--pinentry-mode=loopback"
	gpgTTYEnvironmentVariableConstant  = "GPG_TTY"
	parameterKeyTypeLineConstant       = "Key-Type: RSA"
	parameterKeyLengthLineConstant     = "Key-Length: 4096"
	parameterSubkeyTypeLineConstant    = "Subkey-Type: RSA"
	parameterSubkeyLengthLineConstant  = "Subkey-Length: 4096"
	parameterNameRealTemplateConstant  = "Name-Real: %s"
	parameterNameEmailTemplate         = "Name-Email: %s"
	parameterExpireDateTemplate        = "Expire-Date: %s"
	parameterPassphraseTemplate        = "Passphrase: %s"
	parameterNoProtectionLineConstant  = "%no-protection"
	parameterCommitLineConstant        = "%commit"
	defaultExpirationValueConstant     = "0"
	gpgUnavailableMessageConstant      = "gpg is not installed or not on PATH"
	missingGPGExecutorMessageConstant  = "gpg executor is required"
	realNameRequiredMessageConstant    = "real name is required for key generation"
	emailRequiredMessageConstant       = "email is required for key generation"
	keyIdentifierRequiredMessage       = "key id is required"
	keyNotFoundTemplateConstant        = "key %s not found in secret keyring"
	keyForEmailNotFoundTemplate        = "no secret key found for %s"
	generationErrorTemplateConstant    = "key generation failed: %w"
	listingErrorTemplateConstant       = "secret key listing failed: %w"
	exportErrorTemplateConstant        = "armored export failed: %w"
	availabilityErrorTemplateConstant  = "%s: %w"
	emptyArmorExportMessageConstant    = "armored export produced no output"
	parameterBlockLineSeparatorNewline = "\n"
)

// GPGExecutor runs gpg commands on behalf of the key manager.
type GPGExecutor interface {
	ExecuteGPG(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// KeyGenerationRequest describes the key pair to generate.
type KeyGenerationRequest struct {
	RealName   string
	Email      string
	Expiration string
	Passphrase string
}

// KeyManager orchestrates gpg invocations for provisioning workflows.
type KeyManager struct {
	executor            GPGExecutor
	terminalDeviceValue string
}

// NewKeyManager constructs a KeyManager backed by the provided executor.
// The terminal device value becomes GPG_TTY when the environment does not already define one.
func NewKeyManager(executor GPGExecutor, terminalDeviceValue string) (*KeyManager, error) {
	if executor == nil {
		return nil, fmt.Errorf("%s", missingGPGExecutorMessageConstant)
	}
	return &KeyManager{executor: executor, terminalDeviceValue: terminalDeviceValue}, nil
}

// EnsureAvailable verifies the gpg binary responds to a version query.
func (manager *KeyManager) EnsureAvailable(executionContext context.Context) error {
	_, executionError := manager.executor.ExecuteGPG(executionContext, execshell.CommandDetails{
		Arguments:            []string{gpgVersionFlagConstant},
		EnvironmentVariables: manager.terminalEnvironment(),
	})
	if executionError != nil {
		return fmt.Errorf(availabilityErrorTemplateConstant, gpgUnavailableMessageConstant, executionError)
	}
	return nil
}

// GenerateKeyPair creates an RSA 4096 key pair driven by a batch parameter block.
func (manager *KeyManager) GenerateKeyPair(executionContext context.Context, request KeyGenerationRequest) error {
	if len(strings.TrimSpace(request.RealName)) == 0 {
		return fmt.Errorf("%s", realNameRequiredMessageConstant)
	}
	if len(strings.TrimSpace(request.Email)) == 0 {
		return fmt.Errorf("%s", emailRequiredMessageConstant)
	}

	arguments := []string{gpgBatchFlagConstant}
	if len(request.Passphrase) > 0 {
		arguments = append(arguments, gpgPinentryLoopbackFlagConstant)
	}
	arguments = append(arguments, gpgFullGenerateKeyFlagConstant)

	_, executionError := manager.executor.ExecuteGPG(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		StandardInput:        []byte(buildParameterBlock(request)),
		EnvironmentVariables: manager.terminalEnvironment(),
	})
	if executionError != nil {
		return fmt.Errorf(generationErrorTemplateConstant, executionError)
	}
	return nil
}

// ListSecretKeys returns the structured secret key listing.
func (manager *KeyManager) ListSecretKeys(executionContext context.Context) ([]KeyDetails, error) {
	executionResult, executionError := manager.executor.ExecuteGPG(executionContext, execshell.CommandDetails{
		Arguments:            []string{gpgListSecretKeysFlagConstant, gpgWithColonsFlagConstant, gpgKeyIDFormatLongFlagConstant},
		EnvironmentVariables: manager.terminalEnvironment(),
	})
	if executionError != nil {
		return nil, fmt.Errorf(listingErrorTemplateConstant, executionError)
	}

	return ParseSecretKeyListing(executionResult.StandardOutput), nil
}

// ResolveKeyByID locates a secret key by its long key identifier.
func (manager *KeyManager) ResolveKeyByID(executionContext context.Context, keyIdentifier string) (KeyDetails, error) {
	trimmedIdentifier := strings.TrimSpace(keyIdentifier)
	if len(trimmedIdentifier) == 0 {
		return KeyDetails{}, fmt.Errorf("%s", keyIdentifierRequiredMessage)
	}

	secretKeys, listingError := manager.ListSecretKeys(executionContext)
	if listingError != nil {
		return KeyDetails{}, listingError
	}

	for _, keyDetails := range secretKeys {
		if strings.EqualFold(keyDetails.KeyID, trimmedIdentifier) {
			return keyDetails, nil
		}
	}

	return KeyDetails{}, fmt.Errorf(keyNotFoundTemplateConstant, trimmedIdentifier)
}

// ResolveKeyByEmail locates the newest secret key whose user identity carries the email.
func (manager *KeyManager) ResolveKeyByEmail(executionContext context.Context, email string) (KeyDetails, error) {
	trimmedEmail := strings.TrimSpace(email)
	if len(trimmedEmail) == 0 {
		return KeyDetails{}, fmt.Errorf("%s", emailRequiredMessageConstant)
	}

	secretKeys, listingError := manager.ListSecretKeys(executionContext)
	if listingError != nil {
		return KeyDetails{}, listingError
	}

	var newestMatch *KeyDetails
	for keyIndex := range secretKeys {
		keyDetails := secretKeys[keyIndex]
		if !strings.EqualFold(keyDetails.UserEmail, trimmedEmail) {
			continue
		}
		if newestMatch == nil || keyDetails.CreatedAt.After(newestMatch.CreatedAt) {
			newestMatch = &secretKeys[keyIndex]
		}
	}

	if newestMatch == nil {
		return KeyDetails{}, fmt.Errorf(keyForEmailNotFoundTemplate, trimmedEmail)
	}
	return *newestMatch, nil
}

// ExportArmoredPublicKey exports the public half of the key in ASCII armor.
func (manager *KeyManager) ExportArmoredPublicKey(executionContext context.Context, keyIdentifier string) (string, error) {
	trimmedIdentifier := strings.TrimSpace(keyIdentifier)
	if len(trimmedIdentifier) == 0 {
		return "", fmt.Errorf("%s", keyIdentifierRequiredMessage)
	}

	executionResult, executionError := manager.executor.ExecuteGPG(executionContext, execshell.CommandDetails{
		Arguments:            []string{gpgArmorFlagConstant, gpgExportFlagConstant, trimmedIdentifier},
		EnvironmentVariables: manager.terminalEnvironment(),
	})
	if executionError != nil {
		return "", fmt.Errorf(exportErrorTemplateConstant, executionError)
	}

	if len(strings.TrimSpace(executionResult.StandardOutput)) == 0 {
		return "", fmt.Errorf("%s", emptyArmorExportMessageConstant)
	}

	return executionResult.StandardOutput, nil
}

func (manager *KeyManager) terminalEnvironment() map[string]string {
	if existingValue, defined := os.LookupEnv(gpgTTYEnvironmentVariableConstant); defined && len(existingValue) > 0 {
		return map[string]string{gpgTTYEnvironmentVariableConstant: existingValue}
	}
	if len(manager.terminalDeviceValue) == 0 {
		return nil
	}
	return map[string]string{gpgTTYEnvironmentVariableConstant: manager.terminalDeviceValue}
}

func buildParameterBlock(request KeyGenerationRequest) string {
	expiration := strings.TrimSpace(request.Expiration)
	if len(expiration) == 0 {
		expiration = defaultExpirationValueConstant
	}

	parameterLines := []string{
		parameterKeyTypeLineConstant,
		parameterKeyLengthLineConstant,
		parameterSubkeyTypeLineConstant,
		parameterSubkeyLengthLineConstant,
		fmt.Sprintf(parameterNameRealTemplateConstant, request.RealName),
		fmt.Sprintf(parameterNameEmailTemplate, request.Email),
		fmt.Sprintf(parameterExpireDateTemplate, expiration),
	}

	if len(request.Passphrase) > 0 {
		parameterLines = append(parameterLines, fmt.Sprintf(parameterPassphraseTemplate, request.Passphrase))
	} else {
		parameterLines = append(parameterLines, parameterNoProtectionLineConstant)
	}

	parameterLines = append(parameterLines, parameterCommitLineConstant)
	return strings.Join(parameterLines, parameterBlockLineSeparatorNewline) + parameterBlockLineSeparatorNewline
}
