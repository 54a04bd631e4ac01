package gpg

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/openpgp"
)

const (
	armorRequiredMessageConstant      = "armored key material is required"
	armorParseErrorTemplateConstant   = "armored key did not parse: %w"
	armorEmptyKeyRingMessageConstant  = "armored key contained no public keys"
	armorKeyMismatchTemplateConstant  = "armored key does not contain key %s"
	armorPrivateKeyPresentMessagePart = "armored export contains private key material"
)

// ValidateArmoredPublicKey parses the armored export and confirms it carries the expected key.
//
// The export must decode as an OpenPGP key ring, contain no private key
// material, and include an entity whose primary key matches the expected long
// key identifier.
func ValidateArmoredPublicKey(armoredKey string, expectedKeyIdentifier string) error {
	if len(strings.TrimSpace(armoredKey)) == 0 {
		return fmt.Errorf("%s", armorRequiredMessageConstant)
	}
	trimmedIdentifier := strings.TrimSpace(expectedKeyIdentifier)
	if len(trimmedIdentifier) == 0 {
		return fmt.Errorf("%s", keyIdentifierRequiredMessage)
	}

	keyRing, parseError := openpgp.ReadArmoredKeyRing(strings.NewReader(armoredKey))
	if parseError != nil {
		return fmt.Errorf(armorParseErrorTemplateConstant, parseError)
	}
	if len(keyRing) == 0 {
		return fmt.Errorf("%s", armorEmptyKeyRingMessageConstant)
	}

	for _, keyEntity := range keyRing {
		if keyEntity.PrivateKey != nil {
			return fmt.Errorf("%s", armorPrivateKeyPresentMessagePart)
		}
	}

	for _, keyEntity := range keyRing {
		if keyEntity.PrimaryKey == nil {
			continue
		}
		if strings.EqualFold(keyEntity.PrimaryKey.KeyIdString(), trimmedIdentifier) {
			return nil
		}
	}

	return fmt.Errorf(armorKeyMismatchTemplateConstant, trimmedIdentifier)
}
