package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// PlanPrinter renders a plan before the confirmation prompt
type PlanPrinter interface {
	RenderPlan(plan *usecase.DeploymentPlan) error
}

// ConfirmAdapter asks the operator to approve a deployment plan
type ConfirmAdapter struct {
	config  *config.RuntimeConfig
	printer PlanPrinter
	in      io.ReadCloser
	out     io.WriteCloser
}

// NewConfirmAdapter creates a new confirm adapter reading from the terminal
func NewConfirmAdapter(cfg *config.RuntimeConfig, printer PlanPrinter) *ConfirmAdapter {
	return &ConfirmAdapter{
		config:  cfg,
		printer: printer,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// Confirm shows the plan and asks for a yes. Non-interactive mode approves
// without prompting.
func (c *ConfirmAdapter) Confirm(ctx context.Context, plan *usecase.DeploymentPlan) (bool, error) {
	if err := c.printer.RenderPlan(plan); err != nil {
		return false, err
	}

	if c.config.NonInteractive {
		fmt.Fprintln(c.out, color.New(color.FgYellow).Sprint("⚠️  Running in non-interactive mode. Proceeding with deployment..."))
		return true, nil
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Broadcast %d transactions", len(plan.Steps)),
		IsConfirm: true,
		Stdin:     c.in,
		Stdout:    c.out,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return true, nil
}

// Ensure ConfirmAdapter implements BroadcastConfirmer
var _ usecase.BroadcastConfirmer = (*ConfirmAdapter)(nil)
