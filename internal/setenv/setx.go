package setenv

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var execCommand = exec.CommandContext

const setxTimeout = 10 * time.Second

// SetxSetter stores user environment variables with the Windows setx tool.
type SetxSetter struct{}

func (SetxSetter) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), setxTimeout)
	defer cancel()

	out, err := execCommand(ctx, "setx", key, value).CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("setx timeout: %w", ctx.Err())
		}
		return fmt.Errorf("setx %s: %s", key, strings.TrimSpace(string(out)))
	}
	return nil
}

func (SetxSetter) Target() string {
	return "User Environment Variables"
}

func (SetxSetter) ApplyHint() string {
	return "Restart your terminal or log out and in for changes to take effect."
}
