package cli

import (
	"github.com/spf13/cobra"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the transactions a deploy would send, without sending them",
		Long: `Read the deployer's current nonce and print every transaction of a
deployment with its nonce and predicted address. Nothing is signed or sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			plan, err := app.PlanDeployment.Run(cmd.Context())
			if err != nil {
				return err
			}
			return app.DeployRenderer.RenderPlan(plan)
		},
	}
}
