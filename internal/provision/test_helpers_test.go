package provision_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
)

const armorFixtureBlockTypeConstant = "PGP PUBLIC KEY BLOCK"

// buildArmoredKeyFixture produces a real armored public key and its long key identifier.
func buildArmoredKeyFixture(testInstance *testing.T) (string, string) {
	keyEntity, entityError := openpgp.NewEntity(serviceTestRealNameConstant, "", serviceTestEmailConstant, nil)
	require.NoError(testInstance, entityError)

	var armoredBuffer bytes.Buffer
	armorEncoder, encoderError := armor.Encode(&armoredBuffer, armorFixtureBlockTypeConstant, nil)
	require.NoError(testInstance, encoderError)
	require.NoError(testInstance, keyEntity.Serialize(armorEncoder))
	require.NoError(testInstance, armorEncoder.Close())

	return armoredBuffer.String(), keyEntity.PrimaryKey.KeyIdString()
}
