package gpg

import (
	"strconv"
	"strings"
	"time"
)

const (
	colonFieldSeparatorConstant        = ":"
	secretKeyRecordTypeConstant        = "sec"
	fingerprintRecordTypeConstant      = "fpr"
	userIdentityRecordTypeConstant     = "uid"
	recordTypeFieldIndexConstant       = 0
	keyLengthFieldIndexConstant        = 2
	algorithmFieldIndexConstant        = 3
	keyIDFieldIndexConstant            = 4
	creationDateFieldIndexConstant     = 5
	expirationDateFieldIndexConstant   = 6
	userIdentityFieldIndexConstant     = 9
	fingerprintFieldIndexConstant      = 9
	emailOpeningDelimiterConstant      = "<"
	emailClosingDelimiterConstant      = ">"
	rsaAlgorithmIdentifierConstant     = "1"
	rsaAlgorithmNameConstant           = "RSA"
	decimalBaseConstant                = 10
	sixtyFourBitSizeConstant           = 64
	minimumSecretRecordFieldsConstant  = 7
	minimumDetailRecordFieldsConstant  = 10
	isoDateLayoutWithColonsConstant    = "2006-01-02"
	unknownAlgorithmTemplatePartPrefix = "algo "
)

// KeyDetails captures one secret key from the colon-format listing.
type KeyDetails struct {
	KeyID       string
	Fingerprint string
	Algorithm   string
	BitLength   int
	CreatedAt   time.Time
	ExpiresAt   time.Time
	UserName    string
	UserEmail   string
}

// ParseSecretKeyListing converts gpg --with-colons output into structured key details.
//
// The listing interleaves sec, fpr, and uid records. A fpr or uid record
// applies to the most recent sec record; subkey records (ssb) and their
// fingerprints are ignored.
func ParseSecretKeyListing(listingOutput string) []KeyDetails {
	var parsedKeys []KeyDetails
	var currentKey *KeyDetails
	expectingPrimaryDetails := false

	for _, listingLine := range strings.Split(listingOutput, "\n") {
		fields := strings.Split(listingLine, colonFieldSeparatorConstant)
		if len(fields) <= recordTypeFieldIndexConstant {
			continue
		}

		switch fields[recordTypeFieldIndexConstant] {
		case secretKeyRecordTypeConstant:
			if currentKey != nil {
				parsedKeys = append(parsedKeys, *currentKey)
			}
			currentKey = parseSecretKeyRecord(fields)
			expectingPrimaryDetails = currentKey != nil
		case fingerprintRecordTypeConstant:
			if currentKey == nil || !expectingPrimaryDetails {
				continue
			}
			if len(fields) >= minimumDetailRecordFieldsConstant && len(currentKey.Fingerprint) == 0 {
				currentKey.Fingerprint = fields[fingerprintFieldIndexConstant]
			}
		case userIdentityRecordTypeConstant:
			if currentKey == nil || !expectingPrimaryDetails {
				continue
			}
			if len(fields) >= minimumDetailRecordFieldsConstant && len(currentKey.UserEmail) == 0 {
				currentKey.UserName, currentKey.UserEmail = parseUserIdentity(fields[userIdentityFieldIndexConstant])
			}
		default:
			if fields[recordTypeFieldIndexConstant] == "ssb" {
				expectingPrimaryDetails = false
			}
		}
	}

	if currentKey != nil {
		parsedKeys = append(parsedKeys, *currentKey)
	}

	return parsedKeys
}

func parseSecretKeyRecord(fields []string) *KeyDetails {
	if len(fields) < minimumSecretRecordFieldsConstant {
		return nil
	}

	bitLength, _ := strconv.Atoi(fields[keyLengthFieldIndexConstant])

	return &KeyDetails{
		KeyID:     fields[keyIDFieldIndexConstant],
		Algorithm: algorithmName(fields[algorithmFieldIndexConstant]),
		BitLength: bitLength,
		CreatedAt: parseListingTimestamp(fields[creationDateFieldIndexConstant]),
		ExpiresAt: parseListingTimestamp(fields[expirationDateFieldIndexConstant]),
	}
}

func algorithmName(algorithmIdentifier string) string {
	if algorithmIdentifier == rsaAlgorithmIdentifierConstant {
		return rsaAlgorithmNameConstant
	}
	return unknownAlgorithmTemplatePartPrefix + algorithmIdentifier
}

func parseListingTimestamp(rawValue string) time.Time {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return time.Time{}
	}

	if epochSeconds, parseError := strconv.ParseInt(trimmedValue, decimalBaseConstant, sixtyFourBitSizeConstant); parseError == nil {
		return time.Unix(epochSeconds, 0).UTC()
	}

	if isoTimestamp, parseError := time.Parse(isoDateLayoutWithColonsConstant, trimmedValue); parseError == nil {
		return isoTimestamp
	}

	return time.Time{}
}

func parseUserIdentity(rawIdentity string) (string, string) {
	openingIndex := strings.LastIndex(rawIdentity, emailOpeningDelimiterConstant)
	closingIndex := strings.LastIndex(rawIdentity, emailClosingDelimiterConstant)
	if openingIndex == -1 || closingIndex == -1 || closingIndex < openingIndex {
		return strings.TrimSpace(rawIdentity), ""
	}

	identityName := strings.TrimSpace(rawIdentity[:openingIndex])
	identityEmail := strings.TrimSpace(rawIdentity[openingIndex+1 : closingIndex])
	return identityName, identityEmail
}
