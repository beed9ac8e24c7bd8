package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spirit-dao/algebra-deploy/internal/app"
	"github.com/spirit-dao/algebra-deploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "algebra-deploy",
		Short: "Deploy the Algebra factory, pool deployer and community vault",
		Long: `algebra-deploy deploys the Algebra core contracts from one account in a
fixed nonce order, wires the vault factory into the factory and records the
resulting addresses in the project's address record (deploys.json).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				projectRoot, err = os.Getwd()
				if err != nil {
					return err
				}
			}

			v, err := config.SetupViper(projectRoot, cmd)
			if err != nil {
				return err
			}

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Released with the parent context, which Execute cancels even when RunE fails
			if appInstance.Config.Timeout > 0 {
				parent := ctx
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(parent, appInstance.Config.Timeout)
				context.AfterFunc(parent, cancel)
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output machine readable JSON")
	rootCmd.PersistentFlags().String("rpc-url", "", "JSON-RPC endpoint of the target network")
	rootCmd.PersistentFlags().Uint64("chain-id", 0, "Expected chain ID; the run aborts if the RPC reports another")
	rootCmd.PersistentFlags().String("record", "", "Path of the address record (default deploys.json in the project root)")
	rootCmd.PersistentFlags().String("artifacts", "", "Directory of compiled artifacts (default artifacts)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this long (0 disables)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	planCmd := NewPlanCmd()
	planCmd.GroupID = "main"
	rootCmd.AddCommand(planCmd)

	predictCmd := NewPredictCmd()
	predictCmd.GroupID = "main"
	rootCmd.AddCommand(predictCmd)

	addressesCmd := NewAddressesCmd()
	addressesCmd.GroupID = "management"
	rootCmd.AddCommand(addressesCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command. The context handed to commands is
// cancelled once it returns.
func Execute(ctx context.Context) error {
	return execute(ctx, NewRootCmd())
}

func execute(ctx context.Context, rootCmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

// needsApp reports whether the command runs against the wired application
func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return true
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
