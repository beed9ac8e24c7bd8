package interactive

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPrinter struct {
	plans []*usecase.DeploymentPlan
	err   error
}

func (p *recordingPrinter) RenderPlan(plan *usecase.DeploymentPlan) error {
	p.plans = append(p.plans, plan)
	return p.err
}

type bufferCloser struct{ bytes.Buffer }

func (*bufferCloser) Close() error { return nil }

func TestConfirmAdapter(t *testing.T) {
	color.NoColor = true
	plan := &usecase.DeploymentPlan{Steps: make([]usecase.PlannedStep, 5)}

	t.Run("non-interactive approves after rendering the plan", func(t *testing.T) {
		printer := &recordingPrinter{}
		out := &bufferCloser{}
		c := NewConfirmAdapter(&config.RuntimeConfig{NonInteractive: true}, printer)
		c.out = out

		ok, err := c.Confirm(context.Background(), plan)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []*usecase.DeploymentPlan{plan}, printer.plans)
		assert.Contains(t, out.String(), "non-interactive mode")
	})

	t.Run("render failure stops before prompting", func(t *testing.T) {
		printer := &recordingPrinter{err: errors.New("broken pipe")}
		c := NewConfirmAdapter(&config.RuntimeConfig{NonInteractive: true}, printer)
		c.out = &bufferCloser{}

		ok, err := c.Confirm(context.Background(), plan)
		assert.EqualError(t, err, "broken pipe")
		assert.False(t, ok)
	})
}
