package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// DeployProgress reports deployment progress, with a spinner while a
// transaction is awaiting finality in interactive mode
type DeployProgress struct {
	out         io.Writer
	interactive bool
	spinner     *spinner.Spinner
	stepStart   time.Time
	mu          sync.Mutex
}

// NewDeployProgress creates a new deployment progress reporter
func NewDeployProgress(out io.Writer, interactive bool) *DeployProgress {
	return &DeployProgress{
		out:         out,
		interactive: interactive,
	}
}

// ProvideProgressSink picks the spinner or plain reporter from configuration.
// JSON output keeps stdout machine readable, so progress moves to stderr.
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.JSON {
		return NewDeployProgress(os.Stderr, false)
	}
	return NewDeployProgress(os.Stdout, !cfg.NonInteractive && !cfg.Debug)
}

// OnProgress handles progress events
func (p *DeployProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.interactive {
		if event.Message != "" {
			if event.Total > 0 {
				fmt.Fprintf(p.out, "[%d/%d] %s\n", event.Current, event.Total, event.Message)
			} else {
				fmt.Fprintln(p.out, event.Message)
			}
		}
		return
	}

	if event.Spinner {
		if p.spinner == nil {
			p.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			p.spinner.Writer = p.out
			_ = p.spinner.Color("cyan", "bold")
		}

		suffix := event.Message
		if event.Total > 0 {
			suffix = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message)
		}
		p.spinner.Suffix = " " + suffix

		if !p.spinner.Active() {
			p.stepStart = time.Now()
			p.spinner.Start()
		}
		return
	}

	if p.spinner != nil && p.spinner.Active() {
		p.spinner.Stop()
	}
}

// Info prints an info message, pausing the spinner around it
func (p *DeployProgress) Info(message string) {
	p.print(color.New(color.FgGreen), message)
}

// Error prints an error message, pausing the spinner around it
func (p *DeployProgress) Error(message string) {
	p.print(color.New(color.FgRed), message)
}

func (p *DeployProgress) print(c *color.Color, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	wasActive := p.spinner != nil && p.spinner.Active()
	if wasActive {
		p.spinner.Stop()
	}

	if p.interactive && !p.stepStart.IsZero() {
		c.Fprintf(p.out, "%s %s\n", message, color.New(color.Faint).Sprintf("(%s)", time.Since(p.stepStart).Round(time.Millisecond)))
	} else {
		c.Fprintln(p.out, message)
	}

	if wasActive {
		p.spinner.Start()
	}
}

// Ensure DeployProgress implements ProgressSink
var _ usecase.ProgressSink = (*DeployProgress)(nil)
