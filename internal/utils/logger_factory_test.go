package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitprep/gitprep/internal/utils"
)

const (
	loggerFactoryTestStructuredCaseName      = "structured_info"
	loggerFactoryTestConsoleCaseName         = "console_debug"
	loggerFactoryTestUnsupportedLevelName    = "unsupported_level"
	loggerFactoryTestUnsupportedFormatName   = "unsupported_format"
	loggerFactoryTestUnsupportedLevelValue   = utils.LogLevel("verbose")
	loggerFactoryTestUnsupportedFormatValue  = utils.LogFormat("plain")
	loggerFactoryTestUnsupportedLevelMessage = "unsupported log level"
	loggerFactoryTestUnsupportedFormatText   = "unsupported log format"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logLevel      utils.LogLevel
		logFormat     utils.LogFormat
		expectError   bool
		errorFragment string
	}{
		{
			name:      loggerFactoryTestStructuredCaseName,
			logLevel:  utils.LogLevelInfo,
			logFormat: utils.LogFormatStructured,
		},
		{
			name:      loggerFactoryTestConsoleCaseName,
			logLevel:  utils.LogLevelDebug,
			logFormat: utils.LogFormatConsole,
		},
		{
			name:          loggerFactoryTestUnsupportedLevelName,
			logLevel:      loggerFactoryTestUnsupportedLevelValue,
			logFormat:     utils.LogFormatStructured,
			expectError:   true,
			errorFragment: loggerFactoryTestUnsupportedLevelMessage,
		},
		{
			name:          loggerFactoryTestUnsupportedFormatName,
			logLevel:      utils.LogLevelInfo,
			logFormat:     loggerFactoryTestUnsupportedFormatValue,
			expectError:   true,
			errorFragment: loggerFactoryTestUnsupportedFormatText,
		},
	}

	loggerFactory := utils.NewLoggerFactory()

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			logger, creationError := loggerFactory.CreateLogger(testCase.logLevel, testCase.logFormat)
			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Contains(testInstance, creationError.Error(), testCase.errorFragment)
				require.Nil(testInstance, logger)
				return
			}

			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)
		})
	}
}
