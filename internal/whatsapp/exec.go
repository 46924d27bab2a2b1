package whatsapp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/arkawidia/lisensia-backend/pkg/config"
)

const defaultSendTimeout = 30 * time.Second

// ExecChannel shells out to the WhatsApp worker binary for each message. The
// worker holds a stateful messaging session that can hang indefinitely on
// connectivity problems, so every attempt runs under a hard deadline that
// kills the process.
type ExecChannel struct {
	binaryPath    string
	timeout       time.Duration
	successMarker string

	runCommand commandRunner
}

// commandRunner executes the worker and returns its stdout, stderr and run error.
type commandRunner func(ctx context.Context, binary string, args ...string) (stdout, stderr string, err error)

// NewExecChannel builds a channel from the WhatsApp worker configuration.
func NewExecChannel(cfg config.WhatsAppConfig) (*ExecChannel, error) {
	if cfg.BinaryPath == "" {
		return nil, errors.New("whatsapp worker binary path required")
	}
	if cfg.SuccessMarker == "" {
		return nil, errors.New("whatsapp success marker required")
	}
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &ExecChannel{
		binaryPath:    cfg.BinaryPath,
		timeout:       timeout,
		successMarker: cfg.SuccessMarker,
		runCommand:    runWorker,
	}, nil
}

// Send spawns the worker with the recipient and message as arguments and
// waits for it to finish. Success requires both a zero exit code and the
// success marker on stdout; everything else, including a timeout kill, is a
// failure.
func (c *ExecChannel) Send(ctx context.Context, phone, message string) error {
	if phone == "" {
		return errors.New("recipient phone required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stdout, stderr, err := c.runCommand(ctx, c.binaryPath, "-send", "-phone="+phone, "-message="+message)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("whatsapp worker timed out after %s", c.timeout)
	}
	if err != nil {
		detail := strings.TrimSpace(stderr)
		if detail == "" {
			detail = strings.TrimSpace(stdout)
		}
		return fmt.Errorf("whatsapp worker failed: %w (%s)", err, detail)
	}
	if !strings.Contains(stdout, c.successMarker) {
		return fmt.Errorf("whatsapp worker exited without success marker: %s", strings.TrimSpace(stdout))
	}
	return nil
}

func runWorker(ctx context.Context, binary string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
