package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitprep/gitprep/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    gitrepo.RemoteURL
		expectError bool
	}{
		{
			name:  "scp_style_ssh_remote",
			input: "git@github.com:operator/project.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "operator",
				Repository: "project",
			},
		},
		{
			name:  "ssh_protocol_prefix",
			input: "ssh://git@github.com/operator/project.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "operator",
				Repository: "project",
			},
		},
		{
			name:  "https_remote",
			input: "https://github.com/operator/project.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "operator",
				Repository: "project",
			},
		},
		{
			name:  "https_remote_without_suffix",
			input: "https://github.com/operator/project",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "operator",
				Repository: "project",
			},
		},
		{
			name:        "empty_remote",
			input:       "  ",
			expectError: true,
		},
		{
			name:        "unsupported_protocol",
			input:       "ftp://github.com/operator/project",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.input)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expected, parsedRemote)
		})
	}
}

func TestFormatRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name        string
		input       gitrepo.RemoteURL
		expected    string
		expectError bool
	}{
		{
			name: "ssh_format",
			input: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "operator",
				Repository: "project",
			},
			expected: "git@github.com:operator/project.git",
		},
		{
			name: "https_format",
			input: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "operator",
				Repository: "project",
			},
			expected: "https://github.com/operator/project.git",
		},
		{
			name: "missing_owner",
			input: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Repository: "project",
			},
			expectError: true,
		},
		{
			name: "unknown_protocol",
			input: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocol("ftp"),
				Host:       "github.com",
				Owner:      "operator",
				Repository: "project",
			},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			formattedRemote, formatError := gitrepo.FormatRemoteURL(testCase.input)
			if testCase.expectError {
				require.Error(testInstance, formatError)
				return
			}
			require.NoError(testInstance, formatError)
			require.Equal(testInstance, testCase.expected, formattedRemote)
		})
	}
}
