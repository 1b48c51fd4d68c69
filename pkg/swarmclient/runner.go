package swarmclient

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/rshzrh/sitrep/pkg/sitreperr"
)

// run executes `docker` with args, capturing stdout. Non-zero exit or a
// missing binary becomes a typed backend-unavailable/transient-io error;
// stderr is folded into the error message for diagnosis.
func run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "docker", args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return nil, sitreperr.Wrap(sitreperr.KindBackendUnavailable, "docker binary not found on PATH", err)
		}

		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}

		return nil, sitreperr.Wrap(sitreperr.KindTransientIO, "docker "+strings.Join(args, " ")+": "+msg, err)
	}

	return stdout.Bytes(), nil
}
