package flow

import (
	"context"
	"log/slog"

	"github.com/aretw0/reddisetgo/internal/logging"
	"github.com/aretw0/reddisetgo/pkg/domain"
)

// ClassifyProbe treats any failure of the version command, or any stderr output, as an unusable tool.
func ClassifyProbe(res domain.CommandResult) domain.ToolStatus {
	if res.Failed() || res.HasStderr() {
		return domain.ToolAbsent
	}
	return domain.ToolPresent
}

// Probe checks whether the tool is installed and usable.
type Probe struct {
	runner  Runner
	command string
	logger  *slog.Logger
}

// NewProbe creates a Probe running the given version command.
func NewProbe(runner Runner, command string, logger *slog.Logger) *Probe {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Probe{runner: runner, command: command, logger: logger}
}

// Check runs the version command and classifies the result.
func (p *Probe) Check(ctx context.Context) domain.ToolStatus {
	res := p.runner.Run(ctx, p.command)
	status := ClassifyProbe(res)
	p.logger.Debug("Probe", "command", p.command, "status", status, "err", res.Err)
	return status
}
