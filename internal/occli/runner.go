// Package occli implements the fallback path of the dual-path accessor:
// when the SDK is unavailable, listings are served by shelling out to the
// oci CLI and remapping its JSON output into the same normalized shapes the
// SDK path produces.
package occli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"ocictl/internal/config"
	"ocictl/pkg/logging"
)

const logSubsystem = "OCICLI"

// Runner executes the oci CLI and returns its stdout. Non-zero exit or empty
// output is treated as failure.
type Runner struct {
	binary string
	env    map[string]string
}

// NewRunner creates a runner for the configured CLI binary.
func NewRunner(settings config.CLISettings) *Runner {
	binary := settings.Binary
	if binary == "" {
		binary = "oci"
	}
	return &Runner{binary: binary, env: settings.Env}
}

// Run invokes the CLI with the given arguments and returns trimmed stdout.
func (r *Runner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)

	cmd.Env = append(os.Environ(), "SUPPRESS_LABEL_WARNING=True")
	for k, v := range r.env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Debug(logSubsystem, "Running: %s %s", r.binary, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s command failed: %w: %s", r.binary, err, detail)
		}
		return nil, fmt.Errorf("%s command failed: %w", r.binary, err)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil, errors.New("oci CLI produced no output")
	}
	return out, nil
}
