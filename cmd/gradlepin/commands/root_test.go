package commands_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/gradlepin/cmd/gradlepin/commands"
)

func TestRootCmdArgs(t *testing.T) {
	tcs := map[string]struct {
		wantErr   error
		logLevel  string
		logFormat string
	}{
		"default config": {
			logLevel:  "warn",
			logFormat: "text",
		},
		"json format": {
			logLevel:  "info",
			logFormat: "json",
		},
		"logfmt format": {
			logLevel:  "error",
			logFormat: "logfmt",
		},
		"debug level": {
			logLevel:  "debug",
			logFormat: "text",
		},
		"invalid log level": {
			logLevel:  "invalid",
			logFormat: "text",
			wantErr:   commands.ErrLogHandlerFailed,
		},
		"invalid log format": {
			logLevel:  "warn",
			logFormat: "invalid",
			wantErr:   commands.ErrLogHandlerFailed,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			rootCmd := commands.NewRootCmd("test_logger", "", "")
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			rootCmd.SetArgs([]string{
				"--log_level", tc.logLevel,
				"--log_format", tc.logFormat,
				"version",
			})
			rootCmd.SetOut(stdout)
			rootCmd.SetErr(stderr)

			err := rootCmd.Execute()

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Regexp(t, `\d+\.\d+\.\d+`, stdout.String())
			}
		})
	}
}

func TestRootCmdArgPointers(t *testing.T) {
	args := commands.NewRootArgs()

	// Test default values
	assert.Empty(t, args.GetLogLevel())
	assert.Empty(t, args.GetLogFormat())
	assert.Empty(t, args.GetCPUProfile())
	assert.Zero(t, args.GetMemProfileRate())
}

func TestConvergeCmdArgPointers(t *testing.T) {
	args := commands.NewConvergeArgs()

	assert.Empty(t, args.GetPolicy())
	assert.Empty(t, args.GetOnly())
	assert.False(t, args.GetDryRun())
	assert.False(t, args.GetQuiet())
}
