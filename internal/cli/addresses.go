package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spirit-dao/algebra-deploy/internal/cli/render"
)

// NewAddressesCmd creates the addresses command
func NewAddressesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "addresses",
		Short: "Show the address record",
		Long: `Print every entry of the address record. Keys written by deploy are
highlighted.

Examples:
  algebra-deploy addresses
  algebra-deploy addresses --format yaml
  algebra-deploy addresses get poolDeployer
  algebra-deploy addresses verify --rpc-url http://localhost:8545`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowAddresses.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewAddressesRenderer(os.Stdout, outputFormat(format, app.Config.JSON)).Render(result)
		},
	}

	cmd.PersistentFlags().StringVarP(&format, "format", "f", render.FormatTable, "Output format (table, json, yaml)")
	cmd.AddCommand(newAddressesGetCmd(&format))
	cmd.AddCommand(newAddressesVerifyCmd(&format))

	return cmd
}

func newAddressesGetCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a single address from the record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowAddresses.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render.NewAddressesRenderer(os.Stdout, outputFormat(*format, app.Config.JSON)).RenderLookup(result)
		},
	}
}

func newAddressesVerifyCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every recorded address has code on-chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.VerifyAddresses.Run(cmd.Context())
			if err != nil {
				return err
			}
			if err := render.NewAddressesRenderer(os.Stdout, outputFormat(*format, app.Config.JSON)).RenderVerification(result); err != nil {
				return err
			}

			if missing := result.Missing(); len(missing) > 0 {
				return fmt.Errorf("%d of %d recorded addresses failed verification", len(missing), len(result.Checks))
			}
			return nil
		},
	}
}

// outputFormat lets the global --json flag override the default table format
func outputFormat(format string, jsonOutput bool) string {
	if jsonOutput && format == render.FormatTable {
		return render.FormatJSON
	}
	return format
}
