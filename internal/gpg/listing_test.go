package gpg_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitprep/gitprep/internal/gpg"
)

const secretKeyListingFixtureConstant = `sec:u:4096:1:3AA5C34371567BD2:1550000000:::u:::scESC:::+:::23::0:
fpr:::::::::343F00DC6D0B3B5F8D63C656C1D82BE631E31F68:
grp:::::::::D81A1B0B7C6B0F2A9E8F1A2B3C4D5E6F7A8B9C0D:
uid:u::::1550000000::0123456789ABCDEF0123456789ABCDEF01234567::Hubot <hubot@example.com>::::::::::0:
ssb:u:4096:1:42B317FD4BA89E7A:1550000000::::::e:::+:::23:
fpr:::::::::AAAA00DC6D0B3B5F8D63C656C1D82BE631E3BBBB:
sec:u:4096:1:C1D82BE631E31F68:1660000000:::u:::scESC:::+:::23::0:
fpr:::::::::111F00DC6D0B3B5F8D63C656C1D82BE631E31111:
uid:u::::1660000000::FEDCBA9876543210FEDCBA9876543210FEDCBA98::Deploy Bot <hubot@example.com>::::::::::0:
`

func TestParseSecretKeyListing(testInstance *testing.T) {
	parsedKeys := gpg.ParseSecretKeyListing(secretKeyListingFixtureConstant)
	require.Len(testInstance, parsedKeys, 2)

	firstKey := parsedKeys[0]
	require.Equal(testInstance, "3AA5C34371567BD2", firstKey.KeyID)
	require.Equal(testInstance, "343F00DC6D0B3B5F8D63C656C1D82BE631E31F68", firstKey.Fingerprint)
	require.Equal(testInstance, "RSA", firstKey.Algorithm)
	require.Equal(testInstance, 4096, firstKey.BitLength)
	require.Equal(testInstance, time.Unix(1550000000, 0).UTC(), firstKey.CreatedAt)
	require.True(testInstance, firstKey.ExpiresAt.IsZero())
	require.Equal(testInstance, "Hubot", firstKey.UserName)
	require.Equal(testInstance, "hubot@example.com", firstKey.UserEmail)

	secondKey := parsedKeys[1]
	require.Equal(testInstance, "C1D82BE631E31F68", secondKey.KeyID)
	require.Equal(testInstance, "111F00DC6D0B3B5F8D63C656C1D82BE631E31111", secondKey.Fingerprint)
	require.Equal(testInstance, "Deploy Bot", secondKey.UserName)
	require.Equal(testInstance, "hubot@example.com", secondKey.UserEmail)
}

func TestParseSecretKeyListingIgnoresSubkeyFingerprints(testInstance *testing.T) {
	parsedKeys := gpg.ParseSecretKeyListing(secretKeyListingFixtureConstant)
	require.Len(testInstance, parsedKeys, 2)
	require.NotEqual(testInstance, "AAAA00DC6D0B3B5F8D63C656C1D82BE631E3BBBB", parsedKeys[0].Fingerprint)
}

func TestParseSecretKeyListingEmptyOutput(testInstance *testing.T) {
	require.Empty(testInstance, gpg.ParseSecretKeyListing(""))
	require.Empty(testInstance, gpg.ParseSecretKeyListing("\n\n"))
}
