package transport

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Curl shells out to curl. ESPN intermittently rejects Go's TLS fingerprint
// while curl gets through.
type Curl struct {
	timeout time.Duration
	logger  *zap.Logger
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewCurl creates a curl-backed fetcher.
func NewCurl(timeout time.Duration, logger *zap.Logger) *Curl {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Curl{
		timeout: timeout,
		logger:  logger.Named("curl-fetch"),
		command: exec.CommandContext,
	}
}

// Fetch runs curl and returns stdout. --fail turns HTTP errors into a non-zero exit.
func (c *Curl) Fetch(ctx context.Context, url string) ([]byte, error) {
	secs := strconv.Itoa(int(c.timeout.Seconds()))
	cmd := c.command(ctx, "curl", "-s", "-L", "--fail", "-A", UserAgent, "-m", secs, url)

	c.logger.Debug("running curl", zap.String("url", url))

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("curl failed: %s (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("curl execution failed: %w", err)
	}

	return output, nil
}
