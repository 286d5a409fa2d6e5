package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		expectedOut  string
		expectedErr  string
		expectedExit int
	}{
		{
			name:         "version",
			args:         []string{"version"},
			expectedOut:  "blogstore version " + cliVersion,
			expectedExit: 0,
		},
		{
			name:         "help",
			args:         []string{"--help"},
			expectedOut:  "Available Commands:",
			expectedExit: 0,
		},
		{
			name:         "unknown command",
			args:         []string{"bogus"},
			expectedErr:  `unknown command "bogus"`,
			expectedExit: 1,
		},
		{
			name:         "serve rejects arguments",
			args:         []string{"serve", "extra"},
			expectedErr:  "unknown command",
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			assert.Equal(t, tt.expectedExit, code)
			assert.Contains(t, stdout.String(), tt.expectedOut)
			assert.Contains(t, stderr.String(), tt.expectedErr)
		})
	}
}

func TestMainExitCode(t *testing.T) {
	var got int
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) { got = code }

	var stdout bytes.Buffer
	exit(run([]string{"version"}, &stdout, &stdout))
	assert.Equal(t, 0, got)
}
