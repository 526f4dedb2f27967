package cluster

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/services"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bring the control plane up (install, configure, bootstrap, start)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := bringUp(context.Background()); err != nil {
			logger.Fatal(err)
		}
	},
}

/**
 * Bring the full control plane up
 * @param {context.Context} ctx - Context for request cancellation
 * @returns {error} First fatal failure of the sequence
 * @description
 * - Resolves the enabled-service topology (configuration conflicts abort
 *   here, before any process is touched)
 * - Runs install, configure, bootstrap, then starts stores and controllers
 * - On failure, already-started daemons stay running; run 'cluster down'
 */
func bringUp(ctx context.Context) error {
	manager, err := services.NewClusterManager(&config.Config)
	if err != nil {
		return err
	}
	if err := manager.Up(ctx); err != nil {
		return err
	}
	fmt.Println("Control plane is up")
	return nil
}

func init() {
	clusterCmd.AddCommand(upCmd)
}
