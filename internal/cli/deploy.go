package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy and wire the Algebra core contracts",
		Long: `Deploy AlgebraFactory, AlgebraPoolDeployer, AlgebraCommunityVault and
AlgebraVaultFactoryStub from the configured account, point the factory at the
vault factory stub and record the four addresses in the address record.

The address record must already exist. Keys other than poolDeployer, factory,
vault and vaultFactory are left untouched.

The deployer key is read from ALGEBRA_PRIVATE_KEY (or PRIVATE_KEY).

Examples:
  algebra-deploy deploy --rpc-url http://localhost:8545
  algebra-deploy deploy --yes --build
  ALGEBRA_RPC_URL=https://rpc.example algebra-deploy deploy --chain-id 1 --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if app.Config.JSON && !app.Config.NonInteractive {
				return fmt.Errorf("--json requires --yes or --non-interactive")
			}

			params := usecase.DeployProtocolParams{
				SkipConfirmation: app.Config.JSON,
			}

			result, runErr := app.DeployProtocol.Run(cmd.Context(), params)
			if err := app.DeployRenderer.RenderResult(result); err != nil && runErr == nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt (same as --non-interactive)")
	cmd.Flags().Bool("build", false, "Compile contracts before deploying")

	return cmd
}
