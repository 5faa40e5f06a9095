package occli

import (
	"context"
	"testing"

	"ocictl/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_CapturesStdout(t *testing.T) {
	runner := NewRunner(config.CLISettings{Binary: "echo"})

	out, err := runner.Run(context.Background(), `{"data": []}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data": []}`, string(out))
}

func TestRunner_NonZeroExitIsFailure(t *testing.T) {
	runner := NewRunner(config.CLISettings{Binary: "false"})

	_, err := runner.Run(context.Background())
	assert.Error(t, err)
}

func TestRunner_EmptyOutputIsFailure(t *testing.T) {
	runner := NewRunner(config.CLISettings{Binary: "true"})

	_, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output")
}

func TestRunner_DefaultsToOCIBinary(t *testing.T) {
	runner := NewRunner(config.CLISettings{})
	assert.Equal(t, "oci", runner.binary)
}

func TestRunner_MissingBinaryIsFailure(t *testing.T) {
	runner := NewRunner(config.CLISettings{Binary: "definitely-not-a-real-binary-ocictl"})

	_, err := runner.Run(context.Background(), "compute", "instance", "list")
	assert.Error(t, err)
}
