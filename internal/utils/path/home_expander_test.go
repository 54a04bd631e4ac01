package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/gitprep/gitprep/internal/utils/path"
)

const (
	homeExpanderTestHomeDirectoryConstant    = "/home/operator"
	homeExpanderTestTildeOnlyCaseName        = "tilde_only"
	homeExpanderTestTildeSlashCaseName       = "tilde_with_relative_path"
	homeExpanderTestAbsolutePathCaseName     = "absolute_path_unchanged"
	homeExpanderTestEmptyPathCaseName        = "empty_path_unchanged"
	homeExpanderTestTildeUserCaseName        = "tilde_user_unchanged"
	homeExpanderTestProviderFailureCaseName  = "provider_failure_returns_input"
	homeExpanderTestRelativeSegmentConstant  = ".ssh/id_ed25519"
	homeExpanderTestAbsoluteInputConstant    = "/var/tmp/export.asc"
	homeExpanderTestTildeUserInputConstant   = "~operator/export.asc"
	homeExpanderTestProviderFailureMessage   = "home lookup failed"
	homeExpanderTestProviderFailureInputPath = "~/keys/export.asc"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		inputPath     string
		providerError error
		expectedPath  string
	}{
		{
			name:         homeExpanderTestTildeOnlyCaseName,
			inputPath:    "~",
			expectedPath: homeExpanderTestHomeDirectoryConstant,
		},
		{
			name:         homeExpanderTestTildeSlashCaseName,
			inputPath:    "~/" + homeExpanderTestRelativeSegmentConstant,
			expectedPath: filepath.Join(homeExpanderTestHomeDirectoryConstant, homeExpanderTestRelativeSegmentConstant),
		},
		{
			name:         homeExpanderTestAbsolutePathCaseName,
			inputPath:    homeExpanderTestAbsoluteInputConstant,
			expectedPath: homeExpanderTestAbsoluteInputConstant,
		},
		{
			name:         homeExpanderTestEmptyPathCaseName,
			inputPath:    "",
			expectedPath: "",
		},
		{
			name:         homeExpanderTestTildeUserCaseName,
			inputPath:    homeExpanderTestTildeUserInputConstant,
			expectedPath: homeExpanderTestTildeUserInputConstant,
		},
		{
			name:          homeExpanderTestProviderFailureCaseName,
			inputPath:     homeExpanderTestProviderFailureInputPath,
			providerError: errors.New(homeExpanderTestProviderFailureMessage),
			expectedPath:  homeExpanderTestProviderFailureInputPath,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			homeDirectoryProvider := func() (string, error) {
				if testCase.providerError != nil {
					return "", testCase.providerError
				}
				return homeExpanderTestHomeDirectoryConstant, nil
			}

			homeExpander := pathutils.NewHomeExpanderWithProvider(homeDirectoryProvider)
			expandedPath := homeExpander.Expand(testCase.inputPath)
			require.Equal(testInstance, testCase.expectedPath, expandedPath)
		})
	}
}
