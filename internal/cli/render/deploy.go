package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeployRenderer renders deployment plans and results
type DeployRenderer struct {
	out  io.Writer
	json bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, jsonOutput bool) *DeployRenderer {
	return &DeployRenderer{out: out, json: jsonOutput}
}

// ProvideDeployRenderer creates the stdout renderer for Wire dependency injection
func ProvideDeployRenderer(cfg *config.RuntimeConfig) *DeployRenderer {
	return NewDeployRenderer(os.Stdout, cfg.JSON)
}

// RenderPlan prints the transactions a deployment would send
func (r *DeployRenderer) RenderPlan(plan *usecase.DeploymentPlan) error {
	if r.json {
		return r.writeJSON(planJSON(plan))
	}

	fmt.Fprintln(r.out, "🔮 Deployment Plan")
	fmt.Fprintf(r.out, "👤 Deployer: %s\n", plan.Deployer)
	if plan.Network != nil {
		name := plan.Network.Name
		if name == "" {
			name = plan.Network.RPCURL
		}
		fmt.Fprintf(r.out, "🌐 Network:  %s", name)
		if plan.Network.ChainID != 0 {
			fmt.Fprintf(r.out, " (Chain ID: %d)", plan.Network.ChainID)
		}
		fmt.Fprintln(r.out)
	}
	fmt.Fprintf(r.out, "🔢 Nonce:    %d\n", plan.BaseNonce)
	fmt.Fprintf(r.out, "📁 Record:   %s\n\n", getRelativePath(plan.RecordPath))

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"#", "Nonce", "Contract", "Action", "Address", "Args"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
	})
	for i, step := range plan.Steps {
		action := "deploy"
		if step.Component == "" {
			action = step.Method
		}
		t.AppendRow(table.Row{
			i + 1,
			step.Nonce,
			color.New(color.Bold).Sprint(step.Artifact),
			action,
			color.New(color.FgCyan).Sprint(step.Address.Hex()),
			strings.Join(step.Args, ", "),
		})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)
	return nil
}

// RenderResult prints the summary of a deployment run, complete or not
func (r *DeployRenderer) RenderResult(result *usecase.DeployProtocolResult) error {
	if result == nil {
		return nil
	}
	if r.json {
		return r.writeJSON(resultJSON(result))
	}

	if result.Cancelled {
		fmt.Fprintln(r.out, "❌ Deployment cancelled.")
		return nil
	}
	if result.Sequence == nil || len(result.Sequence.Deployed) == 0 {
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "📍 Stage reached: %s\n", stageTitle(result.Stage()))

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"Key", "Contract", "Address", "Tx"})
	for _, c := range models.Components {
		dep := result.Sequence.Component(c)
		if dep == nil {
			continue
		}
		t.AppendRow(table.Row{
			string(c.RecordKey()),
			dep.Artifact,
			color.New(color.FgGreen).Sprint(dep.Address.Hex()),
			dep.TxHash.Hex(),
		})
	}
	fmt.Fprintln(r.out, t.Render())

	if result.Stage() == models.StagePersisted {
		fmt.Fprintf(r.out, "\n%s\n", FormatSuccess("Address record updated: "+getRelativePath(result.RecordPath)))
	} else {
		fmt.Fprintf(r.out, "\n%s\n", FormatWarning("Address record was NOT updated. The addresses above are deployed on-chain."))
	}
	return nil
}

// RenderPrediction prints a single prediction
func (r *DeployRenderer) RenderPrediction(p *models.Prediction) error {
	if r.json {
		return r.writeJSON(map[string]any{
			"deployer":  p.Deployer.String(),
			"baseNonce": p.BaseNonce,
			"offset":    p.Offset,
			"nonce":     p.Nonce,
			"address":   p.Address.Hex(),
		})
	}

	fmt.Fprintln(r.out, "🔮 Address Prediction")
	fmt.Fprintf(r.out, "👤 Deployer: %s\n", p.Deployer)
	fmt.Fprintf(r.out, "🔢 Nonce:    %d (current %d + offset %d)\n", p.Nonce, p.BaseNonce, p.Offset)
	fmt.Fprintf(r.out, "📍 Predicted Address: %s\n", color.New(color.FgCyan, color.Bold).Sprint(p.Address.Hex()))
	return nil
}

func (r *DeployRenderer) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func stageTitle(s models.Stage) string {
	return cases.Title(language.English).String(string(s))
}

type stepJSON struct {
	Component string   `json:"component,omitempty"`
	Artifact  string   `json:"artifact"`
	Method    string   `json:"method"`
	Nonce     uint64   `json:"nonce"`
	Address   string   `json:"address"`
	Args      []string `json:"args"`
}

func planJSON(plan *usecase.DeploymentPlan) map[string]any {
	steps := make([]stepJSON, 0, len(plan.Steps))
	for _, s := range plan.Steps {
		steps = append(steps, stepJSON{
			Component: string(s.Component),
			Artifact:  s.Artifact,
			Method:    s.Method,
			Nonce:     s.Nonce,
			Address:   s.Address.Hex(),
			Args:      s.Args,
		})
	}
	return map[string]any{
		"deployer":  plan.Deployer.String(),
		"baseNonce": plan.BaseNonce,
		"steps":     steps,
	}
}

func resultJSON(result *usecase.DeployProtocolResult) map[string]any {
	addresses := map[string]string{}
	if result.Sequence != nil {
		for key, addr := range result.Sequence.Addresses() {
			addresses[string(key)] = addr
		}
	}
	return map[string]any{
		"deployer":  result.Deployer.String(),
		"stage":     string(result.Stage()),
		"cancelled": result.Cancelled,
		"addresses": addresses,
		"record":    result.RecordPath,
	}
}
