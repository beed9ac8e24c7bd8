package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats for the addresses command
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// AddressesRenderer renders the address record
type AddressesRenderer struct {
	out    io.Writer
	format string
}

// NewAddressesRenderer creates a new addresses renderer
func NewAddressesRenderer(out io.Writer, format string) *AddressesRenderer {
	if format == "" {
		format = FormatTable
	}
	return &AddressesRenderer{out: out, format: format}
}

// Render prints every key of the record in the configured format
func (r *AddressesRenderer) Render(result *usecase.ShowAddressesResult) error {
	switch r.format {
	case FormatJSON:
		data, err := json.MarshalIndent(result.Record, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case FormatYAML:
		return r.renderYAML(result.Record)
	case FormatTable:
		return r.renderTable(result)
	default:
		return fmt.Errorf("unknown format %q (expected table, json or yaml)", r.format)
	}
}

// RenderLookup prints a single value, bare so it can be used in scripts
func (r *AddressesRenderer) RenderLookup(result *usecase.LookupAddressResult) error {
	if r.format == FormatJSON {
		data, err := json.Marshal(map[string]string{result.Key: result.Value})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	}
	_, err := fmt.Fprintln(r.out, result.Value)
	return err
}

// RenderVerification prints the on-chain check of each owned key
func (r *AddressesRenderer) RenderVerification(result *usecase.VerifyAddressesResult) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		type checkOut struct {
			Key     string `json:"key" yaml:"key"`
			Address string `json:"address" yaml:"address"`
			Exists  bool   `json:"exists" yaml:"exists"`
			Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
		}
		checks := make([]checkOut, 0, len(result.Checks))
		for _, c := range result.Checks {
			checks = append(checks, checkOut{Key: string(c.Key), Address: c.Address, Exists: c.Exists, Reason: c.Reason})
		}
		if r.format == FormatYAML {
			enc := yaml.NewEncoder(r.out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(checks)
		}
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case FormatTable:
	default:
		return fmt.Errorf("unknown format %q (expected table, json or yaml)", r.format)
	}

	if len(result.Checks) == 0 {
		fmt.Fprintf(r.out, "No deployed addresses recorded in %s\n", getRelativePath(result.Path))
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"", "Key", "Address", "Status"})
	for _, c := range result.Checks {
		mark := color.New(color.FgGreen).Sprint("✓")
		status := "code found"
		if !c.Exists {
			mark = color.New(color.FgRed).Sprint("✗")
			status = c.Reason
		}
		t.AppendRow(table.Row{mark, string(c.Key), c.Address, status})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

func (r *AddressesRenderer) renderTable(result *usecase.ShowAddressesResult) error {
	record := result.Record
	if record.Len() == 0 {
		fmt.Fprintf(r.out, "No addresses recorded in %s\n", getRelativePath(result.Path))
		return nil
	}

	fmt.Fprintf(r.out, "📁 %s\n\n", getRelativePath(result.Path))

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})

	for _, key := range record.Keys() {
		value, _ := record.Get(key)
		name := key
		if models.IsRecordKey(key) {
			name = color.New(color.FgCyan, color.Bold).Sprint(key)
		}
		t.AppendRow(table.Row{name, value})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// renderYAML re-decodes the record as plain JSON values so nested
// passthrough entries come out as YAML structures rather than strings
func (r *AddressesRenderer) renderYAML(record *models.AddressRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var plain map[string]any
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(plain)
}
