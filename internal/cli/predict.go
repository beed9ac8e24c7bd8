package cli

import (
	"github.com/spf13/cobra"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// NewPredictCmd creates the predict command
func NewPredictCmd() *cobra.Command {
	var offset uint64

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the address of an upcoming contract creation",
		Long: `Predict the address the deployer's contract creation will receive when it
is sent offset transactions from now. Offset 0 is the next transaction.

The default offset of 1 gives the AlgebraPoolDeployer address of a deploy run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			prediction, err := app.PredictAddress.Run(cmd.Context(), usecase.PredictAddressParams{Offset: offset})
			if err != nil {
				return err
			}
			return app.DeployRenderer.RenderPrediction(prediction)
		},
	}

	cmd.Flags().Uint64Var(&offset, "offset", usecase.PoolDeployerOffset, "Transactions between now and the creation")

	return cmd
}
