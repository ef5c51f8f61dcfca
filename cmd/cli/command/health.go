package command

import (
	"fmt"

	"restaurantscorer/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkReady bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is alive",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := client.NewHTTPClient(apiURL)
		out := cmd.OutOrStdout()

		status, err := httpClient.Health()
		if err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}
		color.New(color.FgGreen).Fprintf(out, "health: %s\n", status.Status)

		if !checkReady {
			return nil
		}
		ready, err := httpClient.Ready()
		if err != nil {
			return fmt.Errorf("readiness check failed: %w", err)
		}
		if ready.Status != "ready" {
			color.New(color.FgRed).Fprintf(out, "storage: %s\n", ready.Status)
			return fmt.Errorf("storage is not ready")
		}
		color.New(color.FgGreen).Fprintf(out, "storage: %s\n", ready.Status)
		return nil
	},
}

func init() {
	healthCmd.Flags().BoolVar(&checkReady, "ready", false, "also check storage readiness")
}
